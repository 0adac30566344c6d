package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout - формат дат API
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "02.01.2006", "02.01.06"}

// DefaultGuests используется когда количество гостей не указано
const DefaultGuests = 2

// MaxGuests ограничивает ввод количества гостей
const MaxGuests = 10

var (
	ErrDatesRequired       = errors.New("check-in and check-out dates are required")
	ErrCheckoutNotAfter    = errors.New("check-out must be after check-in")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidGuests       = errors.New("invalid guests count")
	ErrUnexpectedDateInput = errors.New("unexpected stay dates input")
)

// Date - календарная дата без времени и часового пояса
type Date struct {
	t time.Time
}

// NewDate создаёт дату
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf отбрасывает время суток
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate разбирает дату в формате API или в формате ДД.ММ.ГГГГ
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Time возвращает полночь UTC этой даты
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// DaysBetween возвращает число ночей между датами
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	// Сервер иногда отдаёт полный timestamp
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// StayDates - выбранные пользователем даты проживания
type StayDates struct {
	CheckIn  Date
	CheckOut Date
	Guests   int
}

// Validate проверяет даты без обращения к API
func (s StayDates) Validate() error {
	if s.CheckIn.IsZero() || s.CheckOut.IsZero() {
		return ErrDatesRequired
	}
	if !s.CheckOut.After(s.CheckIn) {
		return ErrCheckoutNotAfter
	}
	if s.Guests < 1 || s.Guests > MaxGuests {
		return ErrInvalidGuests
	}
	return nil
}

// Nights возвращает количество ночей
func (s StayDates) Nights() int {
	return DaysBetween(s.CheckIn, s.CheckOut)
}

// ParseStayDates разбирает ввод вида "2026-10-20 2026-10-23 3"
// Количество гостей необязательно, по умолчанию DefaultGuests
func ParseStayDates(text string) (StayDates, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '—' || r == '–'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "-" {
			continue
		}
		tokens = append(tokens, f)
	}

	if len(tokens) < 2 || len(tokens) > 3 {
		return StayDates{}, ErrUnexpectedDateInput
	}

	checkIn, err := ParseDate(tokens[0])
	if err != nil {
		return StayDates{}, err
	}
	checkOut, err := ParseDate(tokens[1])
	if err != nil {
		return StayDates{}, err
	}

	guests := DefaultGuests
	if len(tokens) == 3 {
		guests, err = strconv.Atoi(tokens[2])
		if err != nil {
			return StayDates{}, fmt.Errorf("%w: %q", ErrInvalidGuests, tokens[2])
		}
	}

	return StayDates{CheckIn: checkIn, CheckOut: checkOut, Guests: guests}, nil
}

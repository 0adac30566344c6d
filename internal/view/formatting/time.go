package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.Time().Format("02.01.2006")
}

// FormatStay форматирует период проживания с количеством ночей
func FormatStay(checkIn, checkOut model.Date) string {
	nights := model.DaysBetween(checkIn, checkOut)
	if nights <= 0 {
		return fmt.Sprintf("%s → %s", FormatDate(checkIn), FormatDate(checkOut))
	}
	return fmt.Sprintf("%s → %s (%d %s)", FormatDate(checkIn), FormatDate(checkOut), nights, PluralizeNights(nights))
}

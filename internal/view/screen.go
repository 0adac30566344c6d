package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
)

// Маркеры пустого списка и ошибки загрузки различаются
const (
	EmptyMarker = "📭"
	ErrorMarker = "⚠️"
)

// Screen - текст сообщения (HTML) и его клавиатура
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// Section - данные раздела экрана вместе с ошибкой загрузки
type Section[T any] struct {
	Items []T
	Err   error
}

// SectionOf собирает раздел из результата загрузки
func SectionOf[T any](items []T, err error) Section[T] {
	if err != nil {
		return Section[T]{Err: err}
	}
	return Section[T]{Items: items}
}

// Failed - раздел не удалось загрузить
func (s Section[T]) Failed() bool {
	return s.Err != nil
}

// Empty - раздел загружен, но пуст
func (s Section[T]) Empty() bool {
	return s.Err == nil && len(s.Items) == 0
}

func emptyState(text string) string {
	return EmptyMarker + " " + text
}

func errorState(what string) string {
	return fmt.Sprintf("%s Не удалось загрузить %s. Попробуйте обновить.", ErrorMarker, what)
}

func esc(s string) string {
	return html.EscapeString(s)
}

// roomTitle - "101 · Deluxe"
func roomTitle(room model.Room) string {
	if room.RoomNumber == "" {
		return esc(room.Name)
	}
	return fmt.Sprintf("%s · %s", esc(room.RoomNumber), esc(room.Name))
}

// roomCard - краткая карточка номера для списков
func roomCard(room model.Room) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>", roomTitle(room))
	if room.Type != "" {
		fmt.Fprintf(&b, " <i>(%s)</i>", esc(room.Type))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s · 👥 до %d · %s",
		formatting.GetRoomStatusDisplay(room.Status),
		room.Capacity,
		formatting.FormatPricePerNight(room.Price),
	)
	if badge := formatting.CleaningBadge(room); badge != "" {
		b.WriteString(" · " + badge)
	}

	if amenities := firstAmenities(room.Amenities, 3); amenities != "" {
		b.WriteString("\n✨ " + amenities)
	}
	return b.String()
}

func firstAmenities(amenities []string, limit int) string {
	if len(amenities) == 0 {
		return ""
	}
	shown := amenities
	if len(shown) > limit {
		shown = shown[:limit]
	}
	escaped := make([]string, len(shown))
	for i, a := range shown {
		escaped[i] = esc(a)
	}
	text := strings.Join(escaped, ", ")
	if extra := len(amenities) - len(shown); extra > 0 {
		text += fmt.Sprintf(" +%d", extra)
	}
	return text
}

// bookingLine - строка брони для списков
func bookingLine(booking model.Booking, showGuest bool) string {
	var b strings.Builder
	status := formatting.GetBookingStatusDisplay(booking.Status)

	title := esc(booking.DisplayRoomName())
	if number := booking.DisplayRoomNumber(); number != "" {
		title = fmt.Sprintf("%s · %s", esc(number), title)
	}

	fmt.Fprintf(&b, "%s <b>%s</b>\n", status.Emoji, title)
	fmt.Fprintf(&b, "📅 %s\n", formatting.FormatStay(booking.CheckIn, booking.CheckOut))
	if showGuest {
		fmt.Fprintf(&b, "👤 %s\n", esc(booking.DisplayGuestName()))
	}
	fmt.Fprintf(&b, "💰 %s · %s", formatting.FormatPrice(booking.TotalPrice), status.Text)
	return b.String()
}

func roomButtonLabel(room model.Room) string {
	label := room.Name
	if room.RoomNumber != "" {
		label = room.RoomNumber + " · " + room.Name
	}
	return formatting.GetRoomStatusDisplay(room.Status).Emoji + " " + label
}

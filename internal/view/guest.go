package view

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

const homeBookingsPreview = 3

// GuestHome - главный экран гостя: свободные номера и свои брони
func GuestHome(session *model.Session, rooms Section[model.Room], bookings Section[model.Booking]) Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 Здравствуйте, <b>%s</b>!\n\n", esc(session.DisplayName))

	b.WriteString("🛏 <b>Номера</b>\n")
	switch {
	case rooms.Failed():
		b.WriteString(errorState("номера"))
	case rooms.Empty():
		b.WriteString(emptyState("Свободных номеров нет"))
	default:
		fmt.Fprintf(&b, "Свободно %d %s, от %s",
			len(rooms.Items), formatting.PluralizeRooms(len(rooms.Items)),
			formatting.FormatPricePerNight(minPrice(rooms.Items)))
	}

	b.WriteString("\n\n📋 <b>Мои брони</b>\n")
	writeBookingsPreview(&b, bookings, false)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔍 Найти номер на даты", CallbackBook)).
		Row(
			keyboard.Button("🛏 Номера", CallbackRoomsPage+"0"),
			keyboard.Button("📋 Мои брони", CallbackMyBookings+"0"),
		).
		Row(
			keyboard.Button("⭐ Оставить отзыв", CallbackFeedback),
			keyboard.RefreshButton(CallbackRefresh),
		).
		Row(keyboard.Button("🚪 Выйти", CallbackLogout))

	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

func writeBookingsPreview(b *strings.Builder, bookings Section[model.Booking], showGuest bool) {
	switch {
	case bookings.Failed():
		b.WriteString(errorState("брони"))
	case bookings.Empty():
		b.WriteString(emptyState("Броней пока нет"))
	default:
		fmt.Fprintf(b, "Всего: %d %s\n\n", len(bookings.Items), formatting.PluralizeBookings(len(bookings.Items)))
		shown := bookings.Items
		if len(shown) > homeBookingsPreview {
			shown = shown[:homeBookingsPreview]
		}
		lines := make([]string, len(shown))
		for i, booking := range shown {
			lines[i] = bookingLine(booking, showGuest)
		}
		b.WriteString(strings.Join(lines, "\n\n"))
	}
}

// DatesPrompt - запрос дат проживания
func DatesPrompt(retryMessage string) Screen {
	var b strings.Builder
	if retryMessage != "" {
		fmt.Fprintf(&b, "❌ %s\n\n", esc(retryMessage))
	}
	b.WriteString("📅 <b>Даты проживания</b>\n\n")
	b.WriteString("Отправьте дату заезда, дату выезда и число гостей:\n")
	b.WriteString("<code>20.10.2026 23.10.2026 2</code>\n\n")
	fmt.Fprintf(&b, "Число гостей можно не указывать (по умолчанию %d).", model.DefaultGuests)

	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(CallbackAbandonBooking))
	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

// CheckingAvailability - промежуточный экран проверки
func CheckingAvailability(dates model.StayDates) Screen {
	return Screen{
		Text: fmt.Sprintf("⏳ Проверяем свободные номера на %s…", formatting.FormatStay(dates.CheckIn, dates.CheckOut)),
	}
}

// AvailabilityResult - свободные на даты номера
func AvailabilityResult(dates model.StayDates, rooms []model.Room, page int) Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 <b>Свободные номера</b>\n📅 %s\n👥 %d %s\n\n",
		formatting.FormatStay(dates.CheckIn, dates.CheckOut), dates.Guests, formatting.PluralizeGuests(dates.Guests))

	kb := keyboard.NewBuilder()
	if len(rooms) == 0 {
		b.WriteString(emptyState("На эти даты свободных номеров нет"))
	} else {
		start, end, current, pages := keyboard.Page(len(rooms), RoomsPageSize, page)
		for _, room := range rooms[start:end] {
			b.WriteString(roomCard(room))
			b.WriteString("\n\n")
			kb.Row(keyboard.Button(fmt.Sprintf("✅ %s · %s", roomButtonLabel(room), formatting.FormatPrice(room.Price)), CallbackBookRoom+room.ID))
		}
		kb.AddPagination(CallbackAvailablePage, current, pages)
		b.WriteString("Выберите номер:")
	}

	kb.Row(
		keyboard.Button("📅 Другие даты", CallbackBook),
		keyboard.CancelButton(CallbackAbandonBooking),
	)
	return Screen{Text: strings.TrimRight(b.String(), "\n"), Keyboard: kb.Build()}
}

// BookingConfirm - подтверждение перед созданием брони
func BookingConfirm(attempt service.BookingAttempt) Screen {
	var b strings.Builder
	b.WriteString("📝 <b>Подтверждение брони</b>\n\n")
	if attempt.Room != nil {
		fmt.Fprintf(&b, "🛏 %s\n", roomTitle(*attempt.Room))
		fmt.Fprintf(&b, "💰 %s\n", formatting.FormatPricePerNight(attempt.Room.Price))
	}
	nights := attempt.Dates.Nights()
	fmt.Fprintf(&b, "📅 %s\n", formatting.FormatStay(attempt.Dates.CheckIn, attempt.Dates.CheckOut))
	fmt.Fprintf(&b, "👥 %d %s\n", attempt.Dates.Guests, formatting.PluralizeGuests(attempt.Dates.Guests))
	if attempt.Room != nil && nights > 0 {
		fmt.Fprintf(&b, "\nОриентировочно: <b>%s</b> за %d %s\n",
			formatting.FormatPrice(attempt.Room.Price*float64(nights)), nights, formatting.PluralizeNights(nights))
		b.WriteString("Итоговую сумму рассчитает отель.")
	}

	kb := keyboard.NewBuilder().AddRows(keyboard.ConfirmCancelButtons(CallbackConfirmBooking, CallbackAbandonBooking))
	return Screen{Text: strings.TrimRight(b.String(), "\n"), Keyboard: kb.Build()}
}

// PaymentSummary - бронь создана, ожидает оплаты
func PaymentSummary(booking model.Booking) Screen {
	var b strings.Builder
	b.WriteString("💳 <b>Оплата брони</b>\n\n")
	b.WriteString(bookingLine(booking, false))
	fmt.Fprintf(&b, "\n\nК оплате: <b>%s</b>", formatting.FormatPrice(booking.TotalPrice))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("💳 Оплатить "+formatting.FormatPrice(booking.TotalPrice), CallbackPay)).
		Row(keyboard.CancelButton(CallbackAbandonBooking))
	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

// PaymentDone - оплата прошла
func PaymentDone(result service.PaymentResult) Screen {
	var b strings.Builder
	b.WriteString("✅ <b>Оплата прошла успешно!</b>\n\n")
	b.WriteString(bookingLine(result.Booking, false))
	if result.Payment != nil {
		fmt.Fprintf(&b, "\n\n💳 Списано: %s", formatting.FormatPrice(result.Payment.Amount))
	}

	kb := keyboard.NewBuilder()
	if result.ReloadErr != nil {
		b.WriteString("\n\n" + errorState("обновлённый список броней"))
	}
	kb.Row(keyboard.Button("📋 Мои брони", CallbackMyBookings+"0")).AddHomeButton()
	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

// BookingsListOptions - настройки списка броней
type BookingsListOptions struct {
	Title       string
	PagePrefix  string
	ShowGuest   bool
	AllowDelete bool
	DeleteAny   bool // администратор удаляет брони в любом статусе
}

// BookingsList - список броней с пагинацией. Гость удаляет только неоплаченные.
func BookingsList(bookings Section[model.Booking], page int, opts BookingsListOptions) Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>%s</b>", opts.Title)

	kb := keyboard.NewBuilder()
	switch {
	case bookings.Failed():
		b.WriteString("\n\n" + errorState("брони"))
		kb.Row(keyboard.RefreshButton(opts.PagePrefix + "0"))
	case bookings.Empty():
		b.WriteString("\n\n" + emptyState("Броней не найдено"))
	default:
		start, end, current, pages := keyboard.Page(len(bookings.Items), BookingsPageSize, page)
		fmt.Fprintf(&b, " (всего: %d)\n\n", len(bookings.Items))

		lines := make([]string, 0, end-start)
		for _, booking := range bookings.Items[start:end] {
			lines = append(lines, bookingLine(booking, opts.ShowGuest))
			if opts.AllowDelete && (opts.DeleteAny || booking.IsDeletable()) {
				label := fmt.Sprintf("🗑 Удалить: %s", booking.DisplayRoomName())
				if number := booking.DisplayRoomNumber(); number != "" {
					label = fmt.Sprintf("🗑 Удалить: %s, %s", number, formatting.FormatDate(booking.CheckIn))
				}
				kb.Row(keyboard.Button(label, CallbackDeleteBooking+booking.ID))
			}
		}
		b.WriteString(strings.Join(lines, "\n\n"))
		kb.AddPagination(opts.PagePrefix, current, pages)
	}

	kb.AddHomeButton()
	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

// DeleteBookingConfirm - подтверждение удаления брони
func DeleteBookingConfirm(booking model.Booking, backCallback string) Screen {
	text := "🗑 <b>Удалить бронь?</b>\n\n" + bookingLine(booking, booking.UserDetails != nil)
	kb := keyboard.NewBuilder().AddRows(keyboard.YesNoButtons(CallbackDeleteConfirm+booking.ID, backCallback))
	return Screen{Text: text, Keyboard: kb.Build()}
}

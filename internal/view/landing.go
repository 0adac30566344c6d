package view

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

// Landing - публичный экран для пользователя без сессии
func Landing(rooms Section[model.Room]) Screen {
	var b strings.Builder
	b.WriteString("🏨 <b>EaseStay</b>\n\n")
	b.WriteString("Бронирование номеров прямо в Telegram.\n\n")

	switch {
	case rooms.Failed():
		b.WriteString(errorState("номера"))
	case rooms.Empty():
		b.WriteString(emptyState("Сейчас нет свободных номеров"))
	default:
		fmt.Fprintf(&b, "🛏 Сейчас свободно: <b>%d</b> %s\n", len(rooms.Items), formatting.PluralizeRooms(len(rooms.Items)))
		fmt.Fprintf(&b, "💰 От %s", formatting.FormatPricePerNight(minPrice(rooms.Items)))
	}

	b.WriteString("\n\nВойдите, чтобы забронировать номер.")

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🛏 Смотреть номера", CallbackRoomsPage+"0")).
		Row(
			keyboard.Button("🔑 Войти", CallbackLogin),
			keyboard.Button("📝 Регистрация", CallbackRegister),
		).
		Row(
			keyboard.Button("⭐ Отзывы гостей", CallbackFeedbackList),
			keyboard.Button("❓ Помощь", CallbackHelp),
		)

	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

// RoomsList - список номеров, видимых гостям, с пагинацией
func RoomsList(rooms Section[model.Room], page int) Screen {
	var b strings.Builder
	kb := keyboard.NewBuilder()

	switch {
	case rooms.Failed():
		b.WriteString("🛏 <b>Номера</b>\n\n")
		b.WriteString(errorState("номера"))
		kb.Row(keyboard.RefreshButton(CallbackRoomsPage + "0"))
	case rooms.Empty():
		b.WriteString("🛏 <b>Номера</b>\n\n")
		b.WriteString(emptyState("Свободных номеров нет"))
	default:
		start, end, current, pages := keyboard.Page(len(rooms.Items), RoomsPageSize, page)
		fmt.Fprintf(&b, "🛏 <b>Свободные номера</b> (всего: %d)\n\n", len(rooms.Items))
		for _, room := range rooms.Items[start:end] {
			b.WriteString(roomCard(room))
			b.WriteString("\n\n")
			kb.Row(keyboard.Button(roomButtonLabel(room), CallbackRoom+room.ID))
		}
		kb.AddPagination(CallbackRoomsPage, current, pages)
	}

	kb.AddHomeButton()
	return Screen{Text: strings.TrimRight(b.String(), "\n"), Keyboard: kb.Build()}
}

// RoomDetails - полная карточка номера. Кнопка бронирования только для свободного номера.
func RoomDetails(room model.Room, canBook bool) Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "🛏 <b>%s</b>\n\n", roomTitle(room))
	if room.Type != "" {
		fmt.Fprintf(&b, "🏷 Тип: %s\n", esc(room.Type))
	}
	fmt.Fprintf(&b, "📊 Статус: %s\n", formatting.GetRoomStatusDisplay(room.Status))
	if badge := formatting.CleaningBadge(room); badge != "" {
		b.WriteString(badge + "\n")
	}
	fmt.Fprintf(&b, "👥 Вместимость: до %d %s\n", room.Capacity, formatting.PluralizeGuests(room.Capacity))
	fmt.Fprintf(&b, "💰 Цена: %s\n", formatting.FormatPricePerNight(room.Price))

	if len(room.Amenities) > 0 {
		amenities := make([]string, len(room.Amenities))
		for i, a := range room.Amenities {
			amenities[i] = esc(a)
		}
		fmt.Fprintf(&b, "✨ Удобства: %s\n", strings.Join(amenities, ", "))
	}
	if room.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", esc(room.Description))
	}

	kb := keyboard.NewBuilder()
	if canBook && room.Status == model.RoomStatusAvailable {
		kb.Row(keyboard.Button("📅 Выбрать даты", CallbackBook))
	} else if canBook {
		b.WriteString("\n🚫 Номер сейчас недоступен для бронирования")
	}
	kb.Row(keyboard.BackButton(CallbackRoomsPage + "0"))

	return Screen{Text: strings.TrimRight(b.String(), "\n"), Keyboard: kb.Build()}
}

// LoginRolePrompt - выбор роли перед входом
func LoginRolePrompt() Screen {
	text := "🔑 <b>Вход</b>\n\nВыберите, как вы входите:"

	buttons := make([]models.InlineKeyboardButton, 0, len(model.Roles))
	for _, role := range model.Roles {
		buttons = append(buttons, keyboard.Button(formatting.GetRoleDisplay(role).String(), CallbackLoginRole+string(role)))
	}

	kb := keyboard.NewBuilder().
		Grid(1, buttons...).
		Row(keyboard.CancelButton(CallbackHome))

	return Screen{Text: text, Keyboard: kb.Build()}
}

// Help - справка по командам для текущей роли
func Help(session *model.Session) Screen {
	var b strings.Builder
	b.WriteString("❓ <b>Помощь</b>\n\n")
	b.WriteString("/start - главное меню\n")
	b.WriteString("/rooms - свободные номера\n")

	switch {
	case session == nil:
		b.WriteString("/login - войти\n")
		b.WriteString("/register - зарегистрироваться\n")
	case session.Role == model.RoleAdmin:
		b.WriteString("/admin - панель администратора\n")
		b.WriteString("/book - забронировать номер\n")
	case session.Role == model.RoleStaff:
		b.WriteString("/staff - задачи на уборку\n")
	default:
		b.WriteString("/book - забронировать номер\n")
		b.WriteString("/mybookings - мои брони\n")
	}

	b.WriteString("/feedback - оставить отзыв\n")
	if session != nil {
		b.WriteString("/logout - выйти\n")
	}
	b.WriteString("/cancel - отменить текущее действие")

	return Screen{
		Text:     b.String(),
		Keyboard: keyboard.NewBuilder().AddHomeButton().Build(),
	}
}

func minPrice(rooms []model.Room) float64 {
	if len(rooms) == 0 {
		return 0
	}
	lowest := rooms[0].Price
	for _, r := range rooms[1:] {
		if r.Price < lowest {
			lowest = r.Price
		}
	}
	return lowest
}

package view

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

// AdminFilters - фильтры списка номеров в порядке отображения
var AdminFilters = []string{
	service.FilterAll,
	string(model.RoomStatusAvailable),
	string(model.RoomStatusOccupied),
	string(model.RoomStatusMaintenance),
}

// FilterLabel возвращает подпись фильтра
func FilterLabel(filter string) string {
	switch filter {
	case string(model.RoomStatusAvailable):
		return "Свободные"
	case string(model.RoomStatusOccupied):
		return "Занятые"
	case string(model.RoomStatusMaintenance):
		return "Обслуживание"
	default:
		return "Все"
	}
}

// AdminHomeData - всё, что нужно панели администратора
type AdminHomeData struct {
	Session  *model.Session
	Filter   string
	Rooms    Section[model.Room] // уже отфильтрованные
	Stats    service.RoomStats
	Bookings Section[model.Booking]
	Page     int
}

// AdminHome - панель администратора: статистика, номера по фильтру, все брони
func AdminHome(data AdminHomeData) Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "🛡 <b>Панель администратора</b>\n%s\n\n", esc(data.Session.DisplayName))

	s := data.Stats
	fmt.Fprintf(&b, "📊 Всего: <b>%d</b> · 🟢 %d · 🔴 %d · 🛠 %d\n", s.Total, s.Available, s.Occupied, s.Maintenance)
	fmt.Fprintf(&b, "🧽 Требуют уборки: %d\n", s.NeedsCleaning)
	fmt.Fprintf(&b, "📈 Заполняемость: <b>%d%%</b>\n\n", s.OccupancyRate)

	fmt.Fprintf(&b, "🛏 <b>Номера: %s</b>\n", FilterLabel(data.Filter))

	kb := keyboard.NewBuilder()
	kb.Row(filterButtons(data.Filter)...)

	switch {
	case data.Rooms.Failed():
		b.WriteString(errorState("номера"))
	case data.Rooms.Empty():
		b.WriteString(emptyState("Номеров не найдено"))
	default:
		start, end, current, pages := keyboard.Page(len(data.Rooms.Items), RoomsPageSize, data.Page)
		lines := make([]string, 0, end-start)
		for _, room := range data.Rooms.Items[start:end] {
			line := fmt.Sprintf("%s %s", formatting.GetRoomStatusDisplay(room.Status).Emoji, roomTitle(room))
			if room.NeedsCleaning {
				line += " 🧽"
			}
			lines = append(lines, line)
		}
		buttons := make([]models.InlineKeyboardButton, 0, end-start)
		for _, room := range data.Rooms.Items[start:end] {
			buttons = append(buttons, keyboard.Button(roomButtonLabel(room), CallbackAdminRoom+room.ID))
		}
		b.WriteString(strings.Join(lines, "\n"))
		kb.Grid(1, buttons...)
		kb.AddPagination(CallbackAdminPage, current, pages)
	}

	b.WriteString("\n\n📋 <b>Брони</b>\n")
	writeBookingsPreview(&b, data.Bookings, true)

	kb.Row(
		keyboard.Button("📋 Все брони", CallbackAdminBookings+"0"),
		keyboard.Button("🗺 Доска номеров", CallbackAdminBoard),
	).
		Row(
			keyboard.Button("📅 Забронировать", CallbackBook),
			keyboard.RefreshButton(CallbackRefresh),
		).
		Row(keyboard.Button("🚪 Выйти", CallbackLogout))

	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

func filterButtons(current string) []models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(AdminFilters))
	for _, filter := range AdminFilters {
		label := FilterLabel(filter)
		if filter == current {
			label = "• " + label
		}
		buttons = append(buttons, keyboard.Button(label, CallbackAdminFilter+filter))
	}
	return buttons
}

// AdminRoom - карточка номера с действиями администратора
func AdminRoom(room model.Room) Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "🛏 <b>%s</b>\n\n", roomTitle(room))
	fmt.Fprintf(&b, "📊 Статус: %s\n", formatting.GetRoomStatusDisplay(room.Status))
	if room.NeedsCleaning {
		b.WriteString(formatting.CleaningBadge(room) + "\n")
	}
	fmt.Fprintf(&b, "💰 %s · 👥 до %d\n", formatting.FormatPricePerNight(room.Price), room.Capacity)
	b.WriteString("\nВыберите новый статус:")

	kb := keyboard.NewBuilder()
	var statusButtons []models.InlineKeyboardButton
	for _, status := range model.RoomStatuses {
		if status == room.Status {
			continue
		}
		statusButtons = append(statusButtons, keyboard.Button(
			formatting.GetRoomStatusDisplay(status).String(),
			fmt.Sprintf("%s%s:%s", CallbackAdminStatus, room.ID, status),
		))
	}
	kb.Row(statusButtons...)
	if !room.NeedsCleaning {
		kb.Row(keyboard.Button("🧽 Отправить на уборку", CallbackAdminCleaning+room.ID))
	}
	kb.Row(keyboard.BackButton(CallbackAdminPage + "0"))

	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

// StatusChangeConfirm - подтверждение изменения номера
func StatusChangeConfirm(change model.PendingStatusChange) Screen {
	return Screen{
		Text:     "❓ <b>Подтвердите изменение</b>\n\n" + describeChange(change),
		Keyboard: keyboard.NewBuilder().AddRows(keyboard.ConfirmCancelButtons(CallbackStatusConfirm, CallbackStatusCancel)).Build(),
	}
}

// StatusChangeApplying - изменение отправлено, кнопки скрыты до ответа
func StatusChangeApplying(change model.PendingStatusChange) Screen {
	return Screen{
		Text:     "⏳ <b>Применяем изменение…</b>\n\n" + describeChange(change),
		Keyboard: keyboard.Empty(),
	}
}

func describeChange(change model.PendingStatusChange) string {
	title := esc(change.RoomName)
	if change.RoomNumber != "" {
		title = fmt.Sprintf("%s · %s", esc(change.RoomNumber), title)
	}

	if change.Intent == model.IntentCleaning {
		return fmt.Sprintf("🛏 %s\n🧽 Отметить номер как требующий уборки", title)
	}
	return fmt.Sprintf("🛏 %s\n%s → %s",
		title,
		formatting.GetRoomStatusDisplay(change.CurrentStatus),
		formatting.GetRoomStatusDisplay(change.NewStatus),
	)
}

package view

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view/formatting"
	"github.com/Freeeeeet/easestay_bot/internal/view/keyboard"
)

// StaffHome - экран персонала: задачи на уборку и занятые по броням номера
func StaffHome(session *model.Session, tasks Section[model.Room], booked Section[model.Booking]) Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "🧹 <b>Персонал</b>\n%s\n\n", esc(session.DisplayName))

	kb := keyboard.NewBuilder()

	b.WriteString("🧽 <b>Уборка</b>\n")
	switch {
	case tasks.Failed():
		b.WriteString(errorState("задачи на уборку"))
	case tasks.Empty():
		b.WriteString(emptyState("Все номера убраны"))
	default:
		lines := make([]string, 0, len(tasks.Items))
		for _, room := range tasks.Items {
			lines = append(lines, fmt.Sprintf("• %s · %s", roomTitle(room), formatting.GetRoomStatusDisplay(room.Status)))
			label := "✅ Убрано: " + room.Name
			if room.RoomNumber != "" {
				label = "✅ Убрано: " + room.RoomNumber
			}
			kb.Row(keyboard.Button(label, CallbackStaffClean+room.ID))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\n🔑 <b>Заселённые номера</b>\n")
	switch {
	case booked.Failed():
		b.WriteString(errorState("брони"))
	case booked.Empty():
		b.WriteString(emptyState("Подтверждённых броней нет"))
	default:
		lines := make([]string, 0, len(booked.Items))
		for _, booking := range booked.Items {
			title := esc(booking.DisplayRoomName())
			if number := booking.DisplayRoomNumber(); number != "" {
				title = esc(number) + " · " + title
			}
			lines = append(lines, fmt.Sprintf("• %s\n  📅 %s", title, formatting.FormatStay(booking.CheckIn, booking.CheckOut)))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	kb.Row(keyboard.RefreshButton(CallbackRefresh)).
		Row(keyboard.Button("🚪 Выйти", CallbackLogout))

	return Screen{Text: b.String(), Keyboard: kb.Build()}
}

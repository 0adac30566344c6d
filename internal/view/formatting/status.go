package formatting

import "github.com/Freeeeeet/easestay_bot/internal/model"

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// String возвращает emoji и текст через пробел
func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

var unknownStatus = StatusDisplay{"❓", "Неизвестно"}

// GetRoomStatusDisplay возвращает emoji и текст для статуса номера
func GetRoomStatusDisplay(status model.RoomStatus) StatusDisplay {
	displays := map[model.RoomStatus]StatusDisplay{
		model.RoomStatusAvailable:   {"🟢", "Свободен"},
		model.RoomStatusOccupied:    {"🔴", "Занят"},
		model.RoomStatusMaintenance: {"🛠", "На обслуживании"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return unknownStatus
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) StatusDisplay {
	displays := map[model.BookingStatus]StatusDisplay{
		model.BookingStatusPending:   {"⏳", "Ожидает оплаты"},
		model.BookingStatusConfirmed: {"✅", "Подтверждена"},
		model.BookingStatusCancelled: {"❌", "Отменена"},
		model.BookingStatusCompleted: {"✔️", "Завершена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return unknownStatus
}

// GetRoleDisplay возвращает emoji и название роли
func GetRoleDisplay(role model.Role) StatusDisplay {
	displays := map[model.Role]StatusDisplay{
		model.RoleGuest: {"🧳", "Гость"},
		model.RoleAdmin: {"🛡", "Администратор"},
		model.RoleStaff: {"🧹", "Персонал"},
	}

	if display, ok := displays[role]; ok {
		return display
	}

	return unknownStatus
}

// CleaningBadge возвращает отметку об уборке или пустую строку
func CleaningBadge(room model.Room) string {
	if room.NeedsCleaning {
		return "🧽 Требует уборки"
	}
	return ""
}

// Stars рисует оценку звёздами
func Stars(rating int) string {
	rating = max(0, min(rating, model.FeedbackMaxRating))
	out := ""
	for i := 0; i < model.FeedbackMaxRating; i++ {
		if i < rating {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}

package model

// StatusIntent - что именно меняется в номере
type StatusIntent string

const (
	IntentStatus   StatusIntent = "status"   // смена статуса
	IntentCleaning StatusIntent = "cleaning" // пометка "нужна уборка"
)

// PendingStatusChange - изменение номера, ожидающее подтверждения
type PendingStatusChange struct {
	RoomID        string
	RoomName      string
	RoomNumber    string
	CurrentStatus RoomStatus
	Intent        StatusIntent
	NewStatus     RoomStatus // пусто для IntentCleaning
}

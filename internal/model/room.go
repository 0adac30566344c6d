package model

import "strings"

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// RoomStatuses перечисляет статусы в порядке отображения
var RoomStatuses = []RoomStatus{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusMaintenance,
}

// ParseRoomStatus разбирает статус номера из строки
func ParseRoomStatus(s string) (RoomStatus, bool) {
	status := RoomStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range RoomStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

type Room struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Price         float64    `json:"price"`
	Image         string     `json:"image"`
	Description   string     `json:"description"`
	Capacity      int        `json:"capacity"`
	Amenities     []string   `json:"amenities"` // порядок важен для отображения
	Status        RoomStatus `json:"status"`
	RoomNumber    string     `json:"roomNumber"`
	NeedsCleaning bool       `json:"needs_cleaning"`
}

// VisibleToGuests - номер свободен и не ждёт уборки
func (r *Room) VisibleToGuests() bool {
	return r.Status == RoomStatusAvailable && !r.NeedsCleaning
}

// IsCleaningTask не зависит от статуса номера
func (r *Room) IsCleaningTask() bool {
	return r.NeedsCleaning
}

// Clone возвращает копию номера с собственным срезом удобств
func (r Room) Clone() Room {
	if r.Amenities != nil {
		r.Amenities = append([]string(nil), r.Amenities...)
	}
	return r
}

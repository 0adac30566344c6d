package model

type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Roles в порядке отображения на экране входа
var Roles = []Role{RoleGuest, RoleAdmin, RoleStaff}

type Capability string

const (
	CapBook              Capability = "book"
	CapViewOwnBookings   Capability = "view_own_bookings"
	CapViewAllBookings   Capability = "view_all_bookings"
	CapChangeStatus      Capability = "change_status"
	CapViewCleaningQueue Capability = "view_cleaning_queue"
	CapCompleteCleaning  Capability = "complete_cleaning"
	CapViewBookedRooms   Capability = "view_booked_rooms"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleGuest: {
		CapBook:            true,
		CapViewOwnBookings: true,
	},
	RoleAdmin: {
		CapBook:            true,
		CapViewAllBookings: true,
		CapChangeStatus:    true,
	},
	RoleStaff: {
		CapViewCleaningQueue: true,
		CapCompleteCleaning:  true,
		CapViewBookedRooms:   true,
	},
}

// Can проверяет право роли по таблице возможностей
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Valid проверяет что роль известна
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

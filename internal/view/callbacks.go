package view

import "github.com/Freeeeeet/easestay_bot/internal/view/keyboard"

// ========================
// Callback Data Patterns
// ========================

// Общие callbacks
const (
	CallbackHome     = keyboard.HomeCallback
	CallbackNoop     = keyboard.NoopCallback
	CallbackHelp     = "help"
	CallbackRefresh  = "refresh"
	CallbackLogin    = "login"
	CallbackRegister = "register"
	CallbackLogout   = "logout"

	CallbackLoginRole = "login_role:" // login_role:guest
)

// Номера
const (
	CallbackRoomsPage = "rooms_page:" // rooms_page:0
	CallbackRoom      = "room:"       // room:<room_id>
)

// Бронирование
const (
	CallbackBook           = "book"
	CallbackBookRoom       = "book_room:"      // book_room:<room_id>
	CallbackAvailablePage  = "available_page:" // available_page:0
	CallbackConfirmBooking = "booking_confirm"
	CallbackPay            = "booking_pay"
	CallbackAbandonBooking = "booking_abandon"

	CallbackMyBookings    = "my_bookings:"        // my_bookings:0
	CallbackDeleteBooking = "booking_delete:"     // booking_delete:<booking_id>
	CallbackDeleteConfirm = "booking_delete_yes:" // booking_delete_yes:<booking_id>
)

// Администратор
const (
	CallbackAdminFilter   = "admin_filter:"   // admin_filter:occupied
	CallbackAdminPage     = "admin_page:"     // admin_page:0
	CallbackAdminRoom     = "admin_room:"     // admin_room:<room_id>
	CallbackAdminStatus   = "admin_status:"   // admin_status:<room_id>:<status>
	CallbackAdminCleaning = "admin_cleaning:" // admin_cleaning:<room_id>
	CallbackAdminBookings = "admin_bookings:" // admin_bookings:0
	CallbackAdminBoard    = "admin_board"
	CallbackStatusConfirm = "status_confirm"
	CallbackStatusCancel  = "status_cancel"
)

// Персонал
const (
	CallbackStaffClean = "staff_clean:" // staff_clean:<room_id>
)

// Отзывы
const (
	CallbackFeedback     = "feedback"
	CallbackFeedbackRate = "feedback_rate:" // feedback_rate:5
	CallbackFeedbackList = "feedback_list"
)

// Размеры страниц
const (
	RoomsPageSize    = 5
	BookingsPageSize = 5
)

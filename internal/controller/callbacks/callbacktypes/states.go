package callbacktypes

// Состояния диалогов, которые запускаются из callbacks
const (
	StateNone UserState = ""

	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	StateRegisterFirstName UserState = "register_first_name"
	StateRegisterLastName  UserState = "register_last_name"
	StateRegisterEmail     UserState = "register_email"
	StateRegisterPhone     UserState = "register_phone"
	StateRegisterPassword  UserState = "register_password"
	StateRegisterConfirm   UserState = "register_confirm"

	StateBookingDates    UserState = "booking_dates"
	StateFeedbackComment UserState = "feedback_comment"
)

// Ключи временных данных диалогов
const (
	DataRole      = "role"
	DataEmail     = "email"
	DataFirstName = "first_name"
	DataLastName  = "last_name"
	DataPhone     = "phone"
	DataPassword  = "password"
	DataRating    = "rating"
)

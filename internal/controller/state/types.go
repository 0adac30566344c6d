package state

import "github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Вход
	StateLoginEmail    = UserState(callbacktypes.StateLoginEmail)
	StateLoginPassword = UserState(callbacktypes.StateLoginPassword)

	// Регистрация
	StateRegisterFirstName = UserState(callbacktypes.StateRegisterFirstName)
	StateRegisterLastName  = UserState(callbacktypes.StateRegisterLastName)
	StateRegisterEmail     = UserState(callbacktypes.StateRegisterEmail)
	StateRegisterPhone     = UserState(callbacktypes.StateRegisterPhone)
	StateRegisterPassword  = UserState(callbacktypes.StateRegisterPassword)
	StateRegisterConfirm   = UserState(callbacktypes.StateRegisterConfirm)

	// Бронирование
	StateBookingDates = UserState(callbacktypes.StateBookingDates)

	// Отзыв
	StateFeedbackComment = UserState(callbacktypes.StateFeedbackComment)
)

// Ключи временных данных диалогов
const (
	DataRole      = callbacktypes.DataRole
	DataEmail     = callbacktypes.DataEmail
	DataFirstName = callbacktypes.DataFirstName
	DataLastName  = callbacktypes.DataLastName
	DataPhone     = callbacktypes.DataPhone
	DataPassword  = callbacktypes.DataPassword
	DataRating    = callbacktypes.DataRating
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}

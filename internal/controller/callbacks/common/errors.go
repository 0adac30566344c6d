package common

import (
	"errors"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidFormat   = errors.New("invalid callback format")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNoSession):
		return "🔑 Войдите в аккаунт: /login"
	case errors.Is(err, service.ErrStatusChangeInProgress):
		return "⏳ Изменение уже применяется, дождитесь ответа"
	case errors.Is(err, service.ErrBookingInProgress):
		return "⏳ Запрос уже выполняется, дождитесь ответа"
	case errors.Is(err, service.ErrNoPendingChange):
		return "❌ Нет изменения для подтверждения"
	case errors.Is(err, service.ErrNoActiveBooking):
		return "❌ Нет активного бронирования. Начните заново: /book"
	case errors.Is(err, service.ErrAttemptSuperseded):
		return "ℹ️ Этот шаг устарел: начат новый поиск"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrRoomNotFound):
		return "❌ Номер не найден"
	case errors.Is(err, ErrBookingNotFound):
		return "❌ Бронирование не найдено"
	}

	switch apiclient.KindOf(err) {
	case apiclient.KindConnectivity:
		return "📡 " + apiclient.MessageOf(err)
	case apiclient.KindAuth:
		return "🔑 Сессия истекла, войдите снова: /login"
	case apiclient.KindAuthorization:
		return "🚫 " + apiclient.MessageOf(err)
	case apiclient.KindValidation, apiclient.KindNotFound, apiclient.KindBooking,
		apiclient.KindPayment, apiclient.KindRemote:
		return "❌ " + apiclient.MessageOf(err)
	default:
		return "❌ Произошла ошибка"
	}
}

// IsInProgress - повторное нажатие, пока первый запрос не завершён
func IsInProgress(err error) bool {
	return errors.Is(err, service.ErrStatusChangeInProgress) || errors.Is(err, service.ErrBookingInProgress)
}

// IsSessionRejected - сервер отклонил токен, сессию нужно завершить
func IsSessionRejected(err error) bool {
	return apiclient.IsKind(err, apiclient.KindAuth) && !errors.Is(err, service.ErrNoSession)
}

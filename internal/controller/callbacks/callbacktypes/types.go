package callbacktypes

import (
	"github.com/Freeeeeet/easestay_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetFilter(telegramID int64) string
	SetFilter(telegramID int64, filter string)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	SessionService    *service.SessionService
	RoomCache         *service.RoomCache
	BookingService    *service.BookingService
	RoomStatusService *service.RoomStatusService
	FeedbackService   *service.FeedbackService
	StateManager      StateManager
	Logger            *zap.Logger
}

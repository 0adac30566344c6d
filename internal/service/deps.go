package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"go.uber.org/zap"
)

// Локальные ошибки сценариев
var (
	ErrNoSession              = errors.New("no active session")
	ErrStatusChangeInProgress = errors.New("status change is already in progress")
	ErrNoPendingChange        = errors.New("no pending status change")
	ErrNoActiveBooking        = errors.New("no active booking attempt")
	ErrAttemptSuperseded      = errors.New("booking attempt was superseded")
	ErrBookingInProgress      = errors.New("booking step is already in progress")
)

// RoomsAPI - чтение номеров
type RoomsAPI interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
}

type SessionAPI interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.AuthResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error)
	LogLogin(ctx context.Context, token string, entry apiclient.LoginLog) error
}

type BookingAPI interface {
	AvailableRooms(ctx context.Context, checkIn, checkOut model.Date) ([]model.Room, error)
	SavePreferences(ctx context.Context, token string, prefs apiclient.Preferences) error
	CreateBooking(ctx context.Context, token string, req apiclient.CreateBookingRequest) (*model.Booking, error)
	Pay(ctx context.Context, token string, req apiclient.PaymentRequest) (*model.Payment, error)
	ListBookings(ctx context.Context, token string) ([]model.Booking, error)
	ListAllBookings(ctx context.Context, token string) ([]model.Booking, error)
	DeleteBooking(ctx context.Context, token, bookingID string) error
	CleaningQueue(ctx context.Context, token string) ([]model.Room, error)
}

type RoomStatusAPI interface {
	SetRoomStatus(ctx context.Context, token, roomID string, status model.RoomStatus) error
	FlagForCleaning(ctx context.Context, token, roomID string) error
	MarkCleaned(ctx context.Context, token, roomID string) error
}

type FeedbackAPI interface {
	SubmitFeedback(ctx context.Context, token string, req apiclient.FeedbackRequest) (*model.Feedback, error)
	ListFeedback(ctx context.Context) ([]model.Feedback, error)
}

// SessionRepository - постоянный слот сессии (Postgres или Redis)
type SessionRepository interface {
	Save(ctx context.Context, telegramID int64, payload []byte) error
	Load(ctx context.Context, telegramID int64) ([]byte, error)
	Delete(ctx context.Context, telegramID int64) error
}

// Наблюдатели для метрик, nil допустим

type RefreshObserver interface {
	ObserveRefresh(err error, byStatus map[string]int)
}

type BookingObserver interface {
	ObserveBookingStep(step string, err error)
}

type StatusObserver interface {
	ObserveStatusChange(intent string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveRefresh(error, map[string]int) {}
func (nopObserver) ObserveBookingStep(string, error)     {}
func (nopObserver) ObserveStatusChange(string, error)    {}

// Background выполняет необязательные запросы (аудит, предпочтения, события)
// на отдельном контексте. Ошибки только логируются.
type Background struct {
	wg      sync.WaitGroup
	timeout time.Duration
	logger  *zap.Logger
}

func NewBackground(timeout time.Duration, logger *zap.Logger) *Background {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Background{timeout: timeout, logger: logger}
}

// Go запускает вызов в фоне
func (b *Background) Go(name string, fn func(ctx context.Context) error) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			b.logger.Warn("Best-effort call failed",
				zap.String("call", name),
				zap.Error(err))
		}
	}()
}

// Wait ждёт завершения всех фоновых вызовов
func (b *Background) Wait() {
	b.wg.Wait()
}

// requireSession проверяет что пользователь вошёл
func requireSession(session *model.Session) error {
	if session == nil || session.Token == "" {
		return &apiclient.Error{
			Kind:    apiclient.KindAuth,
			Message: "Войдите в аккаунт, чтобы продолжить",
			Err:     ErrNoSession,
		}
	}
	return nil
}

// requireCapability проверяет право роли
func requireCapability(session *model.Session, c model.Capability) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !session.Can(c) {
		return apiclient.Authorization("Это действие недоступно для вашей роли")
	}
	return nil
}

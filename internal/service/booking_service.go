package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingStage - этап сценария бронирования
type BookingStage string

const (
	StageSelectingDates         BookingStage = "selecting_dates"
	StageCheckingAvailability   BookingStage = "checking_availability"
	StageAwaitingBookingConfirm BookingStage = "awaiting_booking_confirm"
	StageAwaitingPayment        BookingStage = "awaiting_payment"
	StageCompleted              BookingStage = "completed"
)

// BookingAttempt - одна попытка бронирования пользователя
type BookingAttempt struct {
	ID        string
	Stage     BookingStage
	Dates     model.StayDates
	Available []model.Room
	Room      *model.Room
	Booking   *model.Booking // бронь, ожидающая оплаты
	InFlight  bool           // запрос создания или оплаты ещё выполняется
}

// PaymentResult - итог оплаты и перезагруженный список для роли
type PaymentResult struct {
	Booking       model.Booking
	Payment       *model.Payment
	Bookings      []model.Booking
	CleaningQueue []model.Room
	ReloadErr     error
}

// BookingService ведёт сценарий: даты -> доступность -> подтверждение -> оплата
type BookingService struct {
	api        BookingAPI
	cache      *RoomCache
	events     EventPublisher
	background *Background
	observer   BookingObserver
	logger     *zap.Logger

	mu       sync.Mutex
	attempts map[int64]*BookingAttempt
}

func NewBookingService(
	api BookingAPI,
	cache *RoomCache,
	events EventPublisher,
	background *Background,
	observer BookingObserver,
	logger *zap.Logger,
) *BookingService {
	if observer == nil {
		observer = nopObserver{}
	}
	if events == nil {
		events = NopPublisher{}
	}
	return &BookingService{
		api:        api,
		cache:      cache,
		events:     events,
		background: background,
		observer:   observer,
		logger:     logger,
		attempts:   make(map[int64]*BookingAttempt),
	}
}

// Current возвращает копию текущей попытки
func (s *BookingService) Current(telegramID int64) (BookingAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[telegramID]
	if !ok {
		return BookingAttempt{}, false
	}
	return copyAttempt(a), true
}

// Abandon сбрасывает попытку (выход, отмена)
func (s *BookingService) Abandon(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, telegramID)
}

// CheckAvailability начинает новую попытку. Даты проверяются локально до обращения к API.
func (s *BookingService) CheckAvailability(ctx context.Context, telegramID int64, session *model.Session, dates model.StayDates) ([]model.Room, error) {
	if dates.Guests == 0 {
		dates.Guests = model.DefaultGuests
	}
	if err := dates.Validate(); err != nil {
		s.failAttempt(telegramID, "")
		return nil, apiclient.WrapValidation(datesMessage(err), err)
	}

	attemptID := uuid.NewString()
	s.mu.Lock()
	s.attempts[telegramID] = &BookingAttempt{
		ID:    attemptID,
		Stage: StageCheckingAvailability,
		Dates: dates,
	}
	s.mu.Unlock()

	rooms, err := s.api.AvailableRooms(ctx, dates.CheckIn, dates.CheckOut)
	s.observer.ObserveBookingStep("availability", err)
	if err != nil {
		s.failAttempt(telegramID, attemptID)
		return nil, err
	}

	if session != nil && session.Token != "" {
		token := session.Token
		prefs := apiclient.Preferences{CheckIn: dates.CheckIn, CheckOut: dates.CheckOut}
		s.background.Go("save_preferences", func(ctx context.Context) error {
			return s.api.SavePreferences(ctx, token, prefs)
		})
	}

	// Номера, которые кэш считает недоступными (уборка), не предлагаем
	if s.cache.Loaded() {
		rooms = intersectByID(rooms, s.cache.VisibleToGuests())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[telegramID]
	if !ok || a.ID != attemptID {
		return nil, ErrAttemptSuperseded
	}
	a.Available = cloneRooms(rooms)

	return rooms, nil
}

// SelectRoom выбирает номер для бронирования. Статус проверяется по кэшу.
func (s *BookingService) SelectRoom(telegramID int64, session *model.Session, roomID string) (*model.Room, error) {
	if err := requireCapability(session, model.CapBook); err != nil {
		return nil, err
	}

	room, ok := s.cache.Find(roomID)
	if !ok {
		return nil, apiclient.NotFound("Номер не найден")
	}
	if room.Status != model.RoomStatusAvailable {
		return nil, apiclient.NewError(apiclient.KindBooking, "Номер сейчас недоступен для бронирования")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[telegramID]
	if !ok || (a.Stage != StageCheckingAvailability && a.Stage != StageAwaitingBookingConfirm) {
		return nil, ErrNoActiveBooking
	}
	if a.InFlight {
		return nil, ErrBookingInProgress
	}

	a.Room = &room
	a.Stage = StageAwaitingBookingConfirm

	return &room, nil
}

// ConfirmBooking создаёт бронь на сервере и обновляет кэш
func (s *BookingService) ConfirmBooking(ctx context.Context, telegramID int64, session *model.Session) (*model.Booking, error) {
	if err := requireCapability(session, model.CapBook); err != nil {
		return nil, err
	}

	s.mu.Lock()
	a, ok := s.attempts[telegramID]
	if !ok || a.Stage != StageAwaitingBookingConfirm || a.Room == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveBooking
	}
	if a.InFlight {
		s.mu.Unlock()
		return nil, ErrBookingInProgress
	}
	a.InFlight = true
	attemptID := a.ID
	req := apiclient.CreateBookingRequest{
		RoomID:   a.Room.ID,
		CheckIn:  a.Dates.CheckIn,
		CheckOut: a.Dates.CheckOut,
		Guests:   a.Dates.Guests,
		Rooms:    1,
	}
	s.mu.Unlock()

	booking, err := s.api.CreateBooking(ctx, session.Token, req)
	s.observer.ObserveBookingStep("create", err)
	if err != nil {
		s.logger.Info("Booking rejected",
			zap.Int64("telegram_id", telegramID),
			zap.String("room_id", req.RoomID),
			zap.Error(err))
		s.failAttempt(telegramID, attemptID)
		return nil, err
	}

	// Кэш обновляется даже для устаревшей попытки: замена снимка идемпотентна
	s.refresh(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok = s.attempts[telegramID]
	if !ok || a.ID != attemptID {
		s.logger.Warn("Booking created for superseded attempt",
			zap.Int64("telegram_id", telegramID),
			zap.String("booking_id", booking.ID))
		return nil, ErrAttemptSuperseded
	}

	if booking.RoomName == "" {
		booking.RoomName = a.Room.Name
	}
	if booking.RoomNumber == "" {
		booking.RoomNumber = a.Room.RoomNumber
	}
	a.Booking = booking
	a.Stage = StageAwaitingPayment
	a.InFlight = false

	s.logger.Info("Booking created",
		zap.Int64("telegram_id", telegramID),
		zap.String("booking_id", booking.ID),
		zap.Float64("total_price", booking.TotalPrice))

	out := *booking
	return &out, nil
}

// Pay оплачивает бронь, обновляет кэш и перезагружает список для роли
func (s *BookingService) Pay(ctx context.Context, telegramID int64, session *model.Session) (*PaymentResult, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	a, ok := s.attempts[telegramID]
	if !ok || a.Stage != StageAwaitingPayment || a.Booking == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveBooking
	}
	if a.InFlight {
		s.mu.Unlock()
		return nil, ErrBookingInProgress
	}
	a.InFlight = true
	attemptID := a.ID
	booking := *a.Booking
	s.mu.Unlock()

	payment, err := s.api.Pay(ctx, session.Token, apiclient.PaymentRequest{
		BookingID:     booking.ID,
		Amount:        booking.TotalPrice,
		PaymentMethod: model.PaymentMethodCard,
	})
	s.observer.ObserveBookingStep("pay", err)
	if err != nil {
		s.logger.Info("Payment rejected",
			zap.Int64("telegram_id", telegramID),
			zap.String("booking_id", booking.ID),
			zap.Error(err))
		s.failAttempt(telegramID, attemptID)
		return nil, err
	}

	s.mu.Lock()
	if a, ok := s.attempts[telegramID]; ok && a.ID == attemptID {
		delete(s.attempts, telegramID)
	}
	s.mu.Unlock()

	s.refresh(ctx)

	booking.Status = model.BookingStatusConfirmed
	result := &PaymentResult{Booking: booking, Payment: payment}

	switch {
	case session.Can(model.CapViewAllBookings):
		result.Bookings, result.ReloadErr = s.api.ListAllBookings(ctx, session.Token)
	case session.Can(model.CapViewOwnBookings):
		result.Bookings, result.ReloadErr = s.api.ListBookings(ctx, session.Token)
	case session.Can(model.CapViewCleaningQueue):
		result.CleaningQueue, result.ReloadErr = s.api.CleaningQueue(ctx, session.Token)
	}
	if result.ReloadErr != nil {
		s.logger.Warn("Failed to reload list after payment",
			zap.Int64("telegram_id", telegramID),
			zap.Error(result.ReloadErr))
	}

	event := BookingConfirmedEvent{
		BookingID:  booking.ID,
		UserID:     session.UserID,
		Email:      session.Email,
		RoomID:     booking.RoomID,
		RoomNumber: booking.DisplayRoomNumber(),
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		TotalPrice: booking.TotalPrice,
		PaidAt:     time.Now().UTC(),
	}
	s.background.Go("publish_booking_confirmed", func(ctx context.Context) error {
		return s.events.PublishBookingConfirmed(ctx, event)
	})

	s.logger.Info("Booking paid",
		zap.Int64("telegram_id", telegramID),
		zap.String("booking_id", booking.ID))

	return result, nil
}

// ListOwn - брони гостя
func (s *BookingService) ListOwn(ctx context.Context, session *model.Session) ([]model.Booking, error) {
	if err := requireCapability(session, model.CapViewOwnBookings); err != nil {
		return nil, err
	}
	return s.api.ListBookings(ctx, session.Token)
}

// ListAll - все брони (администратор)
func (s *BookingService) ListAll(ctx context.Context, session *model.Session) ([]model.Booking, error) {
	if err := requireCapability(session, model.CapViewAllBookings); err != nil {
		return nil, err
	}
	return s.api.ListAllBookings(ctx, session.Token)
}

// ListBookedRooms - оплаченные брони для персонала
func (s *BookingService) ListBookedRooms(ctx context.Context, session *model.Session) ([]model.Booking, error) {
	if err := requireCapability(session, model.CapViewBookedRooms); err != nil {
		return nil, err
	}
	all, err := s.api.ListAllBookings(ctx, session.Token)
	if err != nil {
		return nil, err
	}

	confirmed := make([]model.Booking, 0, len(all))
	for _, b := range all {
		if b.Status == model.BookingStatusConfirmed {
			confirmed = append(confirmed, b)
		}
	}
	return confirmed, nil
}

// Delete удаляет неоплаченную бронь и обновляет кэш
func (s *BookingService) Delete(ctx context.Context, telegramID int64, session *model.Session, bookingID string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !session.Can(model.CapViewOwnBookings) && !session.Can(model.CapViewAllBookings) {
		return apiclient.Authorization("Это действие недоступно для вашей роли")
	}

	if err := s.api.DeleteBooking(ctx, session.Token, bookingID); err != nil {
		return err
	}

	s.mu.Lock()
	if a, ok := s.attempts[telegramID]; ok && a.Booking != nil && a.Booking.ID == bookingID {
		delete(s.attempts, telegramID)
	}
	s.mu.Unlock()

	s.refresh(ctx)

	s.logger.Info("Booking deleted",
		zap.Int64("telegram_id", telegramID),
		zap.String("booking_id", bookingID))
	return nil
}

// failAttempt возвращает попытку к выбору дат. Пустой attemptID - любая попытка.
func (s *BookingService) failAttempt(telegramID int64, attemptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[telegramID]
	if !ok {
		s.attempts[telegramID] = &BookingAttempt{ID: uuid.NewString(), Stage: StageSelectingDates}
		return
	}
	if attemptID != "" && a.ID != attemptID {
		return
	}
	a.Stage = StageSelectingDates
	a.Available = nil
	a.Room = nil
	a.Booking = nil
	a.InFlight = false
}

func (s *BookingService) refresh(ctx context.Context) {
	if _, err := s.cache.Refresh(ctx); err != nil {
		s.logger.Warn("Failed to refresh rooms after mutation", zap.Error(err))
	}
}

func datesMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrDatesRequired):
		return "Укажите даты заезда и выезда"
	case errors.Is(err, model.ErrCheckoutNotAfter):
		return "Дата выезда должна быть позже даты заезда"
	case errors.Is(err, model.ErrInvalidGuests):
		return fmt.Sprintf("Количество гостей должно быть от 1 до %d", model.MaxGuests)
	default:
		return "Некорректные даты"
	}
}

func intersectByID(rooms, allowed []model.Room) []model.Room {
	ids := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		ids[r.ID] = struct{}{}
	}
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if _, ok := ids[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

func copyAttempt(a *BookingAttempt) BookingAttempt {
	c := *a
	c.Available = cloneRooms(a.Available)
	if a.Room != nil {
		room := a.Room.Clone()
		c.Room = &room
	}
	if a.Booking != nil {
		b := *a.Booking
		c.Booking = &b
	}
	return c
}

package service

import (
	"context"
	"sync"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"go.uber.org/zap"
)

// RoomStatusService - изменение номера в два шага: Begin, затем Confirm или Cancel
type RoomStatusService struct {
	api      RoomStatusAPI
	cache    *RoomCache
	observer StatusObserver
	logger   *zap.Logger

	mu       sync.Mutex
	pending  map[int64]*model.PendingStatusChange
	inFlight map[int64]bool
}

func NewRoomStatusService(api RoomStatusAPI, cache *RoomCache, observer StatusObserver, logger *zap.Logger) *RoomStatusService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &RoomStatusService{
		api:      api,
		cache:    cache,
		observer: observer,
		logger:   logger,
		pending:  make(map[int64]*model.PendingStatusChange),
		inFlight: make(map[int64]bool),
	}
}

// Begin сохраняет изменение, ожидающее подтверждения (заменяет предыдущее)
func (s *RoomStatusService) Begin(
	telegramID int64,
	session *model.Session,
	roomID string,
	intent model.StatusIntent,
	newStatus model.RoomStatus,
) (*model.PendingStatusChange, error) {
	if err := requireCapability(session, model.CapChangeStatus); err != nil {
		return nil, err
	}

	room, ok := s.cache.Find(roomID)
	if !ok {
		return nil, apiclient.NotFound("Номер не найден")
	}

	change := &model.PendingStatusChange{
		RoomID:        room.ID,
		RoomName:      room.Name,
		RoomNumber:    room.RoomNumber,
		CurrentStatus: room.Status,
		Intent:        intent,
	}

	switch intent {
	case model.IntentStatus:
		if _, ok := model.ParseRoomStatus(string(newStatus)); !ok {
			return nil, apiclient.Validation("Неизвестный статус номера")
		}
		change.NewStatus = newStatus
	case model.IntentCleaning:
	default:
		return nil, apiclient.Validation("Неизвестное действие")
	}

	s.mu.Lock()
	s.pending[telegramID] = change
	s.mu.Unlock()

	out := *change
	return &out, nil
}

// Pending возвращает изменение, ожидающее подтверждения
func (s *RoomStatusService) Pending(telegramID int64) (model.PendingStatusChange, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[telegramID]
	if !ok {
		return model.PendingStatusChange{}, false
	}
	return *p, true
}

// Confirm выполняет ровно один запрос к API.
// Повторное подтверждение во время выполнения отклоняется без запроса.
// Ожидающее изменение очищается и при успехе, и при ошибке.
func (s *RoomStatusService) Confirm(ctx context.Context, telegramID int64, session *model.Session) (*model.PendingStatusChange, error) {
	if err := requireCapability(session, model.CapChangeStatus); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.inFlight[telegramID] {
		s.mu.Unlock()
		return nil, ErrStatusChangeInProgress
	}
	change, ok := s.pending[telegramID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoPendingChange
	}
	s.inFlight[telegramID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, telegramID)
		if s.pending[telegramID] == change {
			delete(s.pending, telegramID)
		}
		s.mu.Unlock()
	}()

	var err error
	switch change.Intent {
	case model.IntentCleaning:
		err = s.api.FlagForCleaning(ctx, session.Token, change.RoomID)
	default:
		err = s.api.SetRoomStatus(ctx, session.Token, change.RoomID, change.NewStatus)
	}
	s.observer.ObserveStatusChange(string(change.Intent), err)

	if err != nil {
		s.logger.Info("Room change rejected",
			zap.Int64("telegram_id", telegramID),
			zap.String("room_id", change.RoomID),
			zap.String("intent", string(change.Intent)),
			zap.Error(err))
		return nil, err
	}

	if _, refreshErr := s.cache.Refresh(ctx); refreshErr != nil {
		s.logger.Warn("Failed to refresh rooms after status change", zap.Error(refreshErr))
	}

	s.logger.Info("Room changed",
		zap.Int64("telegram_id", telegramID),
		zap.String("room_id", change.RoomID),
		zap.String("intent", string(change.Intent)),
		zap.String("new_status", string(change.NewStatus)))

	out := *change
	return &out, nil
}

// Cancel отбрасывает изменение без запроса к API
func (s *RoomStatusService) Cancel(telegramID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.pending[telegramID]
	delete(s.pending, telegramID)
	return ok
}

// CompleteCleaning снимает пометку уборки (персонал)
func (s *RoomStatusService) CompleteCleaning(ctx context.Context, session *model.Session, roomID string) (*model.Room, error) {
	if err := requireCapability(session, model.CapCompleteCleaning); err != nil {
		return nil, err
	}

	room, ok := s.cache.Find(roomID)
	if !ok {
		return nil, apiclient.NotFound("Номер не найден")
	}

	err := s.api.MarkCleaned(ctx, session.Token, roomID)
	s.observer.ObserveStatusChange("clean", err)
	if err != nil {
		return nil, err
	}

	if _, refreshErr := s.cache.Refresh(ctx); refreshErr != nil {
		s.logger.Warn("Failed to refresh rooms after cleaning", zap.Error(refreshErr))
	}

	s.logger.Info("Room cleaned", zap.String("room_id", roomID))
	return &room, nil
}

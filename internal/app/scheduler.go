package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

// HealthChecker - проверка доступности API перед первой загрузкой
type HealthChecker interface {
	Health(ctx context.Context) (*apiclient.HealthStatus, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	rooms    *service.RoomCache
	health   HealthChecker
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик.
// interval <= 0 отключает периодическое обновление, остаётся только первая загрузка.
func NewScheduler(rooms *service.RoomCache, health HealthChecker, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		rooms:    rooms,
		health:   health,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("room_refresh_interval", s.interval))

	go s.runRoomRefreshTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runRoomRefreshTask загружает номера при старте и затем периодически
func (s *Scheduler) runRoomRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.initialLoad(ctx)

	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshRooms(ctx)
		case <-s.stopChan:
			s.logger.Info("Room refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Room refresh task cancelled")
			return
		}
	}
}

// initialLoad загружает номера, только если API отвечает.
// При недоступном API кэш остаётся пустым, экраны покажут ошибку загрузки.
func (s *Scheduler) initialLoad(ctx context.Context) {
	status, err := s.health.Health(ctx)
	if err != nil {
		s.logger.Warn("API health check failed, rooms not loaded", zap.Error(err))
		return
	}

	s.logger.Info("API is healthy",
		zap.String("status", status.Status),
		zap.String("database", status.Database))

	s.refreshRooms(ctx)
}

func (s *Scheduler) refreshRooms(ctx context.Context) {
	rooms, err := s.rooms.Refresh(ctx)
	if err != nil {
		s.logger.Error("Failed to refresh rooms", zap.Error(err))
		return
	}

	s.logger.Debug("Rooms refreshed", zap.Int("count", len(rooms)))
}

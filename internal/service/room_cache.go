package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"go.uber.org/zap"
)

// FilterAll - значение фильтра администратора "все номера"
const FilterAll = "all"

// RoomStats - сводка для панели администратора
type RoomStats struct {
	Total         int
	Available     int
	Occupied      int
	Maintenance   int
	NeedsCleaning int
	OccupancyRate int
}

// RoomCache хранит снимок номеров после последней успешной загрузки.
// Снимок заменяется целиком, запросы работают с копией.
type RoomCache struct {
	api      RoomsAPI
	observer RefreshObserver
	logger   *zap.Logger

	mu          sync.RWMutex
	rooms       []model.Room
	loaded      bool
	refreshedAt time.Time
}

func NewRoomCache(api RoomsAPI, observer RefreshObserver, logger *zap.Logger) *RoomCache {
	if observer == nil {
		observer = nopObserver{}
	}
	return &RoomCache{
		api:      api,
		observer: observer,
		logger:   logger,
	}
}

// Refresh загружает все номера и заменяет снимок.
// При ошибке предыдущий снимок остаётся нетронутым.
func (c *RoomCache) Refresh(ctx context.Context) ([]model.Room, error) {
	rooms, err := c.api.ListRooms(ctx)
	if err != nil {
		c.observer.ObserveRefresh(err, nil)
		return nil, fmt.Errorf("refresh rooms: %w", err)
	}

	snapshot := cloneRooms(rooms)

	c.mu.Lock()
	c.rooms = snapshot
	c.loaded = true
	c.refreshedAt = time.Now()
	c.mu.Unlock()

	c.observer.ObserveRefresh(nil, countByStatus(snapshot))
	c.logger.Debug("Room cache refreshed", zap.Int("rooms", len(snapshot)))

	return cloneRooms(snapshot), nil
}

// Loaded показывает была ли хоть одна успешная загрузка
func (c *RoomCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// LastRefreshed возвращает время последней успешной загрузки
func (c *RoomCache) LastRefreshed() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}

func (c *RoomCache) snapshot() []model.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneRooms(c.rooms)
}

// All возвращает все номера в порядке сервера
func (c *RoomCache) All() []model.Room {
	return c.snapshot()
}

// VisibleToGuests - свободные номера без пометки уборки
func (c *RoomCache) VisibleToGuests() []model.Room {
	return VisibleToGuests(c.snapshot())
}

// CleaningTasks - номера с пометкой уборки независимо от статуса
func (c *RoomCache) CleaningTasks() []model.Room {
	return CleaningTasks(c.snapshot())
}

// ByStatus фильтрует номера для администратора
func (c *RoomCache) ByStatus(filter string) []model.Room {
	return ByStatus(c.snapshot(), filter)
}

func (c *RoomCache) OccupancyRate() int {
	return OccupancyRate(c.snapshot())
}

func (c *RoomCache) Stats() RoomStats {
	return Stats(c.snapshot())
}

// Find ищет номер в снимке
func (c *RoomCache) Find(roomID string) (model.Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.rooms {
		if r.ID == roomID {
			return r.Clone(), true
		}
	}
	return model.Room{}, false
}

// Чистые функции над набором номеров

func VisibleToGuests(rooms []model.Room) []model.Room {
	out := make([]model.Room, 0, len(rooms))
	for i := range rooms {
		if rooms[i].VisibleToGuests() {
			out = append(out, rooms[i])
		}
	}
	return out
}

func CleaningTasks(rooms []model.Room) []model.Room {
	out := make([]model.Room, 0)
	for i := range rooms {
		if rooms[i].IsCleaningTask() {
			out = append(out, rooms[i])
		}
	}
	return out
}

func ByStatus(rooms []model.Room, filter string) []model.Room {
	if filter == "" || filter == FilterAll {
		return rooms
	}
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if string(r.Status) == filter {
			out = append(out, r)
		}
	}
	return out
}

// OccupancyRate - процент занятых номеров, 0 для пустого набора
func OccupancyRate(rooms []model.Room) int {
	if len(rooms) == 0 {
		return 0
	}
	occupied := 0
	for _, r := range rooms {
		if r.Status == model.RoomStatusOccupied {
			occupied++
		}
	}
	return int(math.Round(100 * float64(occupied) / float64(len(rooms))))
}

func Stats(rooms []model.Room) RoomStats {
	stats := RoomStats{Total: len(rooms), OccupancyRate: OccupancyRate(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case model.RoomStatusAvailable:
			stats.Available++
		case model.RoomStatusOccupied:
			stats.Occupied++
		case model.RoomStatusMaintenance:
			stats.Maintenance++
		}
		if r.NeedsCleaning {
			stats.NeedsCleaning++
		}
	}
	return stats
}

func countByStatus(rooms []model.Room) map[string]int {
	counts := make(map[string]int, len(model.RoomStatuses))
	for _, s := range model.RoomStatuses {
		counts[string(s)] = 0
	}
	for _, r := range rooms {
		counts[string(r.Status)]++
	}
	return counts
}

func cloneRooms(rooms []model.Room) []model.Room {
	if rooms == nil {
		return nil
	}
	out := make([]model.Room, len(rooms))
	for i := range rooms {
		out[i] = rooms[i].Clone()
	}
	return out
}

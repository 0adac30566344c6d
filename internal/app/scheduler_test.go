package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

type fakeRoomsAPI struct {
	calls atomic.Int32
}

func (f *fakeRoomsAPI) ListRooms(context.Context) ([]model.Room, error) {
	f.calls.Add(1)
	return []model.Room{{ID: "r1", Status: model.RoomStatusAvailable}}, nil
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) Health(context.Context) (*apiclient.HealthStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &apiclient.HealthStatus{Status: "ok", Database: "connected"}, nil
}

func TestScheduler_InitialLoad(t *testing.T) {
	api := &fakeRoomsAPI{}
	cache := service.NewRoomCache(api, nil, zap.NewNop())

	s := NewScheduler(cache, fakeHealth{}, 0, zap.NewNop())
	s.initialLoad(context.Background())

	assert.True(t, cache.Loaded())
	assert.Equal(t, int32(1), api.calls.Load())
}

func TestScheduler_UnhealthyAPISkipsLoad(t *testing.T) {
	api := &fakeRoomsAPI{}
	cache := service.NewRoomCache(api, nil, zap.NewNop())

	s := NewScheduler(cache, fakeHealth{err: errors.New("connection refused")}, 0, zap.NewNop())
	s.initialLoad(context.Background())

	assert.False(t, cache.Loaded())
	assert.Zero(t, api.calls.Load())
}

func TestScheduler_PeriodicRefresh(t *testing.T) {
	api := &fakeRoomsAPI{}
	cache := service.NewRoomCache(api, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(cache, fakeHealth{}, 10*time.Millisecond, zap.NewNop())
	s.Start(ctx)
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return api.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

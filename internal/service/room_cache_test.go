package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func roomIDs(rooms []model.Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRoomCacheScenario(t *testing.T) {
	api := &fakeAPI{rooms: scenarioRooms()}
	cache := NewRoomCache(api, nil, zap.NewNop())

	_, err := cache.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, roomIDs(cache.VisibleToGuests()))
	assert.Equal(t, []string{"2"}, roomIDs(cache.CleaningTasks()))
	assert.Equal(t, 33, cache.OccupancyRate())

	assert.Equal(t, []string{"1", "2", "3"}, roomIDs(cache.ByStatus(FilterAll)))
	assert.Equal(t, []string{"1", "2"}, roomIDs(cache.ByStatus("available")))
	assert.Empty(t, cache.ByStatus("maintenance"))

	stats := cache.Stats()
	assert.Equal(t, RoomStats{Total: 3, Available: 2, Occupied: 1, NeedsCleaning: 1, OccupancyRate: 33}, stats)
}

func TestVisibleToGuestsNeverIncludesBusyRooms(t *testing.T) {
	var rooms []model.Room
	for _, status := range model.RoomStatuses {
		for _, dirty := range []bool{false, true} {
			rooms = append(rooms, model.Room{
				ID:            fmt.Sprintf("%s-%t", status, dirty),
				Status:        status,
				NeedsCleaning: dirty,
			})
		}
	}

	visible := VisibleToGuests(rooms)
	require.Len(t, visible, 1)
	assert.Equal(t, "available-false", visible[0].ID)

	assert.Len(t, CleaningTasks(rooms), 3)
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0, OccupancyRate(nil))

	tests := []struct {
		occupied, total, want int
	}{
		{0, 1, 0},
		{1, 1, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, tt := range tests {
		rooms := make([]model.Room, tt.total)
		for i := range rooms {
			rooms[i].Status = model.RoomStatusAvailable
			if i < tt.occupied {
				rooms[i].Status = model.RoomStatusOccupied
			}
		}
		assert.Equal(t, tt.want, OccupancyRate(rooms), "%d of %d", tt.occupied, tt.total)
	}
}

func TestRoomCacheRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent", func(t *testing.T) {
		api := &fakeAPI{rooms: scenarioRooms()}
		cache := NewRoomCache(api, nil, zap.NewNop())

		_, err := cache.Refresh(ctx)
		require.NoError(t, err)
		first := cache.All()

		_, err = cache.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, cache.All())
		assert.Equal(t, 2, api.listRoomsCalls)
	})

	t.Run("failure keeps previous snapshot", func(t *testing.T) {
		api := &fakeAPI{rooms: scenarioRooms()}
		cache := NewRoomCache(api, nil, zap.NewNop())

		_, err := cache.Refresh(ctx)
		require.NoError(t, err)

		api.listRoomsErr = errors.New("down")
		_, err = cache.Refresh(ctx)
		require.Error(t, err)
		assert.Len(t, cache.All(), 3)
	})

	t.Run("queries return copies", func(t *testing.T) {
		api := &fakeAPI{rooms: []model.Room{{ID: "1", Status: model.RoomStatusAvailable, Amenities: []string{"WiFi"}}}}
		cache := NewRoomCache(api, nil, zap.NewNop())
		_, err := cache.Refresh(ctx)
		require.NoError(t, err)

		rooms := cache.All()
		rooms[0].Status = model.RoomStatusOccupied
		rooms[0].Amenities[0] = "Pool"

		r, ok := cache.Find("1")
		require.True(t, ok)
		assert.Equal(t, model.RoomStatusAvailable, r.Status)
		assert.Equal(t, "WiFi", r.Amenities[0])
	})

	t.Run("empty cache", func(t *testing.T) {
		cache := NewRoomCache(&fakeAPI{}, nil, zap.NewNop())
		assert.False(t, cache.Loaded())
		assert.Equal(t, 0, cache.OccupancyRate())
		assert.Empty(t, cache.VisibleToGuests())
	})
}

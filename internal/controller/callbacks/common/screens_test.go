package common

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/apiclient"
	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

type memorySessions struct {
	mu   sync.Mutex
	data map[int64][]byte
}

func (m *memorySessions) Save(_ context.Context, id int64, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = payload
	return nil
}

func (m *memorySessions) Load(_ context.Context, id int64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[id], nil
}

func (m *memorySessions) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type stubState struct{}

func (stubState) ClearState(int64) {}
func (stubState) GetState(int64) callbacktypes.UserState { return "" }
func (stubState) SetState(int64, callbacktypes.UserState) {}
func (stubState) SetData(int64, string, interface{}) {}
func (stubState) GetData(int64, string) (interface{}, bool) { return nil, false }
func (stubState) GetFilter(int64) string { return "" }
func (stubState) SetFilter(int64, string) {}

// newExpiredTokenHandler - API отдаёт номера, но отклоняет токен на списках броней
func newExpiredTokenHandler(t *testing.T, session model.Session) (*callbacktypes.Handler, *memorySessions) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"rooms": []any{}})
	})
	expired := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Token has expired"})
	}
	mux.HandleFunc("/api/bookings", expired)
	mux.HandleFunc("/api/bookings/all", expired)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := apiclient.New(srv.URL+"/api", time.Second, logger)
	bg := service.NewBackground(time.Second, logger)
	t.Cleanup(bg.Wait)

	payload, err := json.Marshal(session)
	require.NoError(t, err)
	repo := &memorySessions{data: map[int64][]byte{7: payload}}

	cache := service.NewRoomCache(client, nil, logger)
	h := &callbacktypes.Handler{
		SessionService:    service.NewSessionService(client, repo, bg, logger),
		RoomCache:         cache,
		BookingService:    service.NewBookingService(client, cache, nil, bg, nil, logger),
		RoomStatusService: service.NewRoomStatusService(client, cache, nil, logger),
		StateManager:      stubState{},
		Logger:            logger,
	}

	restored, err := h.SessionService.Restore(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, restored)

	return h, repo
}

func TestHomeScreenDropsRejectedSession(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
	}{
		{"guest", model.RoleGuest},
		{"admin", model.RoleAdmin},
		{"staff", model.RoleStaff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			session := model.Session{UserID: "u7", Email: "u7@example.com", Role: tt.role, Token: "stale"}
			h, repo := newExpiredTokenHandler(t, session)

			screen := HomeScreen(ctx, h, 7, &session, 0)

			assert.Nil(t, h.SessionService.Current(7))
			stored, err := repo.Load(ctx, 7)
			require.NoError(t, err)
			assert.Nil(t, stored)
			assert.Equal(t, LandingScreen(ctx, h).Text, screen.Text)
		})
	}
}

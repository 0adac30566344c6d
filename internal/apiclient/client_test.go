package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedRequest struct {
	route  string
	method string
	status int
}

type recordingObserver struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (o *recordingObserver) ObserveRequest(route, method string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests = append(o.requests, recordedRequest{route: route, method: method, status: status})
}

func newTestClient(t *testing.T, mux *http.ServeMux, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", time.Second, zap.NewNop(), opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCallHeaders(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		writeJSON(w, http.StatusOK, map[string]any{
			"bookings": []map[string]any{{"_id": "b1", "status": "pending", "total_price": 250}},
			"count":    1,
		})
	})
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"rooms": []any{}, "count": 0})
	})

	c := newTestClient(t, mux)

	t.Run("auth endpoint sends bearer", func(t *testing.T) {
		bookings, err := c.ListBookings(context.Background(), "tok-1")
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, model.BookingStatusPending, bookings[0].Status)
		assert.Equal(t, 250.0, bookings[0].TotalPrice)
	})

	t.Run("public endpoint sends no token", func(t *testing.T) {
		var out roomsResponse
		err := c.Call(context.Background(), "/rooms", http.MethodGet, nil, false, "tok-1", &out)
		require.NoError(t, err)
	})
}

func TestCallErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/book", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token is missing"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Room is not available"})
	})
	mux.HandleFunc("/api/payment", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Booking not found"})
	})
	mux.HandleFunc("/api/bookings/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Admin access required"})
	})
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("booking rejection", func(t *testing.T) {
		_, err := c.CreateBooking(ctx, "tok", CreateBookingRequest{RoomID: "r1"})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindBooking))
		assert.Equal(t, "Room is not available", MessageOf(err))
	})

	t.Run("missing token stays auth", func(t *testing.T) {
		_, err := c.CreateBooking(ctx, "", CreateBookingRequest{RoomID: "r1"})
		assert.Equal(t, KindAuth, KindOf(err))
	})

	t.Run("payment rejection", func(t *testing.T) {
		_, err := c.Pay(ctx, "tok", PaymentRequest{BookingID: "b1", Amount: 10})
		assert.Equal(t, KindPayment, KindOf(err))
		assert.Equal(t, "Booking not found", MessageOf(err))
	})

	t.Run("forbidden", func(t *testing.T) {
		_, err := c.ListAllBookings(ctx, "tok")
		assert.Equal(t, KindAuthorization, KindOf(err))
	})

	t.Run("status text fallback", func(t *testing.T) {
		_, err := c.ListRooms(ctx)
		assert.Equal(t, KindRemote, KindOf(err))
		assert.Equal(t, "HTTP 502: Bad Gateway", MessageOf(err))
	})
}

func TestCallConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	base := srv.URL + "/api"
	srv.Close()

	c := New(base, time.Second, zap.NewNop())
	_, err := c.ListRooms(context.Background())

	require.Error(t, err)
	assert.Equal(t, KindConnectivity, KindOf(err))
	assert.Contains(t, MessageOf(err), base)
}

func TestCallCancelledContext(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	c := newTestClient(t, mux)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.ListRooms(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Kind(""), KindOf(err))
}

func TestEndpointsRequestShape(t *testing.T) {
	obs := &recordingObserver{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/rooms/available", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-10-20", r.URL.Query().Get("checkin"))
		assert.Equal(t, "2026-10-23", r.URL.Query().Get("checkout"))
		writeJSON(w, http.StatusOK, map[string]any{
			"rooms": []map[string]any{{"_id": "r1", "roomNumber": "101", "status": "available", "amenities": []string{"WiFi", "TV"}}},
		})
	})
	mux.HandleFunc("/api/book", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r1", body["room_id"])
		assert.Equal(t, "2026-10-20", body["checkin_date"])
		assert.Equal(t, float64(1), body["rooms"])
		assert.Equal(t, float64(2), body["guests"])
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Booking created successfully",
			"booking": map[string]any{"_id": "b1", "room_id": "r1", "total_price": 300, "status": "pending"},
		})
	})
	mux.HandleFunc("/api/payment", func(w http.ResponseWriter, r *http.Request) {
		var body PaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "card", body.PaymentMethod)
		assert.Equal(t, 300.0, body.Amount)
		writeJSON(w, http.StatusOK, map[string]any{"payment": map[string]any{"booking_id": body.BookingID, "status": "completed"}})
	})
	mux.HandleFunc("/api/room/r1/status", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "maintenance", body["status"])
		writeJSON(w, http.StatusOK, map[string]string{"message": "Room status updated"})
	})

	c := newTestClient(t, mux, WithObserver(obs))
	ctx := context.Background()
	in := model.NewDate(2026, time.October, 20)

	rooms, err := c.AvailableRooms(ctx, in, in.AddDays(3))
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, []string{"WiFi", "TV"}, rooms[0].Amenities)
	assert.Equal(t, "101", rooms[0].RoomNumber)

	booking, err := c.CreateBooking(ctx, "tok", CreateBookingRequest{RoomID: "r1", CheckIn: in, CheckOut: in.AddDays(3), Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, "b1", booking.ID)

	payment, err := c.Pay(ctx, "tok", PaymentRequest{BookingID: booking.ID, Amount: booking.TotalPrice})
	require.NoError(t, err)
	assert.Equal(t, "completed", payment.Status)

	require.NoError(t, c.SetRoomStatus(ctx, "tok", "r1", model.RoomStatusMaintenance))

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.requests, 4)
	assert.Equal(t, "/rooms/available", obs.requests[0].route)
	assert.Equal(t, "/room/{id}/status", obs.requests[3].route)
	assert.Equal(t, http.StatusCreated, obs.requests[1].status)
}

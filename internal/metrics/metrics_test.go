package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("/room/{id}/status", http.MethodPut, http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest("/room/{id}/status", http.MethodPut, http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/rooms", http.MethodGet, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("/room/{id}/status", http.MethodPut, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("/rooms", http.MethodGet, "error")))
}

func TestObserveRefresh(t *testing.T) {
	m := New()

	m.ObserveRefresh(nil, map[string]int{"available": 2, "occupied": 1})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CachedRooms.WithLabelValues("available")))

	m.ObserveRefresh(errors.New("boom"), nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRefreshes.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRefreshes.WithLabelValues("ok")))
}

func TestIndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.ObserveBookingStep("create", nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.BookingOutcomes.WithLabelValues("create", "ok")))
}

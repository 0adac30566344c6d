package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "easestay_bot"

// Metrics структура для метрик Prometheus
type Metrics struct {
	registry *prometheus.Registry

	APIRequests      *prometheus.CounterVec
	APIDuration      *prometheus.HistogramVec
	CacheRefreshes   *prometheus.CounterVec
	CachedRooms      *prometheus.GaugeVec
	BookingOutcomes  *prometheus.CounterVec
	StatusChanges    *prometheus.CounterVec
	UpdatesProcessed *prometheus.CounterVec
}

// New создает метрики на собственном реестре
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Requests to the hotel API by route and status code.",
		}, []string{"route", "method", "code"}),

		APIDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Latency of hotel API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),

		CacheRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_cache_refresh_total",
			Help:      "Room cache refreshes by result.",
		}, []string{"result"}),

		CachedRooms: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "room_cache_rooms",
			Help:      "Rooms in the cache by status.",
		}, []string{"status"}),

		BookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_flow_total",
			Help:      "Booking flow steps by step and result.",
		}, []string{"step", "result"}),

		StatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_status_change_total",
			Help:      "Confirmed room status changes by intent and result.",
		}, []string{"intent", "result"}),

		UpdatesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telegram_updates_total",
			Help:      "Telegram updates handled by type.",
		}, []string{"type"}),
	}
}

// Registry возвращает реестр (для тестов и дополнительных коллекторов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest реализует apiclient.Observer
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	code := "error"
	if status != 0 {
		code = strconv.Itoa(status)
	}
	m.APIRequests.WithLabelValues(route, method, code).Inc()
	m.APIDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveRefresh учитывает обновление кэша номеров
func (m *Metrics) ObserveRefresh(err error, byStatus map[string]int) {
	if err != nil {
		m.CacheRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.CacheRefreshes.WithLabelValues("ok").Inc()
	m.CachedRooms.Reset()
	for status, count := range byStatus {
		m.CachedRooms.WithLabelValues(status).Set(float64(count))
	}
}

// ObserveBookingStep учитывает шаг сценария бронирования
func (m *Metrics) ObserveBookingStep(step string, err error) {
	m.BookingOutcomes.WithLabelValues(step, result(err)).Inc()
}

// ObserveStatusChange учитывает подтверждённое изменение номера
func (m *Metrics) ObserveStatusChange(intent string, err error) {
	m.StatusChanges.WithLabelValues(intent, result(err)).Inc()
}

// IncUpdate учитывает входящее обновление Telegram
func (m *Metrics) IncUpdate(kind string) {
	m.UpdatesProcessed.WithLabelValues(kind).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Serve поднимает /metrics и блокируется до отмены контекста
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Metrics server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

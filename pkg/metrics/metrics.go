// Package metrics содержит Prometheus метрики сервиса
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты попыток бронирования
const (
	BookingResultCreated     = "created"
	BookingResultConflict    = "conflict"
	BookingResultUnavailable = "unavailable"
	BookingResultInvalid     = "invalid"
	BookingResultError       = "error"
)

// Metrics набор коллекторов сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	bookingAttempts    *prometheus.CounterVec
	waitlistPromotions prometheus.Counter
	waitlistJoins      prometheus.Counter
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: constLabels,
		}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		bookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		waitlistPromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "waitlist_promotions_total",
			Help:        "Waitlist entries promoted to notified",
			ConstLabels: constLabels,
		}),
		waitlistJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "waitlist_joins_total",
			Help:        "Waitlist entries created",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.bookingAttempts,
		m.waitlistPromotions,
		m.waitlistJoins,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncInFlight увеличивает счётчик обрабатываемых запросов
func (m *Metrics) IncInFlight() {
	if m == nil {
		return
	}
	m.httpRequestsInFlight.Inc()
}

// DecInFlight уменьшает счётчик обрабатываемых запросов
func (m *Metrics) DecInFlight() {
	if m == nil {
		return
	}
	m.httpRequestsInFlight.Dec()
}

// ObserveQuery фиксирует длительность SQL запроса
func (m *Metrics) ObserveQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// RecordBookingAttempt фиксирует результат попытки бронирования
func (m *Metrics) RecordBookingAttempt(result string) {
	if m == nil {
		return
	}
	m.bookingAttempts.WithLabelValues(result).Inc()
}

// RecordWaitlistPromotion фиксирует продвижение записи листа ожидания
func (m *Metrics) RecordWaitlistPromotion() {
	if m == nil {
		return
	}
	m.waitlistPromotions.Inc()
}

// RecordWaitlistJoin фиксирует новую запись в листе ожидания
func (m *Metrics) RecordWaitlistJoin() {
	if m == nil {
		return
	}
	m.waitlistJoins.Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	// Бизнес-метрики
	BookingEvents *prometheus.CounterVec
	RefundsTotal  *prometheus.CounterVec
}

// New создает и регистрирует метрики в стандартном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests.",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency.",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query latency.",
				ConstLabels: constLabels,
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "db_query_errors_total",
				Help:        "Database query errors.",
				ConstLabels: constLabels,
			},
			[]string{"operation"},
		),
		DBOpenConnections: newPoolGauge("db_open_connections", "Open connections in the pool.", constLabels),
		DBInUse:           newPoolGauge("db_in_use_connections", "Connections currently in use.", constLabels),
		DBIdle:            newPoolGauge("db_idle_connections", "Idle connections.", constLabels),
		DBWaitCount:       newPoolGauge("db_wait_count", "Total number of connections waited for.", constLabels),
		BookingEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_events_total",
				Help:        "Booking lifecycle transitions.",
				ConstLabels: constLabels,
			},
			[]string{"event"},
		),
		RefundsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_refunds_total",
				Help:        "Cancellations by refund tier.",
				ConstLabels: constLabels,
			},
			[]string{"tier"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingEvents,
		m.RefundsTotal,
	)

	return m
}

func newPoolGauge(name, help string, constLabels prometheus.Labels) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		},
		[]string{"db"},
	)
}

// IncBookingEvent увеличивает счетчик переходов жизненного цикла бронирования
// Безопасно вызывать на nil
func (m *Metrics) IncBookingEvent(event string) {
	if m == nil {
		return
	}
	m.BookingEvents.WithLabelValues(event).Inc()
}

// IncRefund увеличивает счетчик отмен по тиру возврата
func (m *Metrics) IncRefund(tier string) {
	if m == nil {
		return
	}
	m.RefundsTotal.WithLabelValues(tier).Inc()
}

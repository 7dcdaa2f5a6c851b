package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса.
// Все методы безопасны для nil receiver: при выключенных метриках
// можно передавать nil и не проверять его в каждом месте вызова.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	admissionsTotal  *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	expirySweeps     *prometheus.CounterVec
	refundAmount     *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном registerer (удобно для тестов)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		admissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_admissions_total",
			Help: "Admission decisions by outcome (admitted or rejection reason)",
		}, []string{"service", "outcome"}),

		transitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_reservation_transitions_total",
			Help: "Reservation workflow state transitions",
		}, []string{"service", "from", "to"}),

		expirySweeps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_expiry_sweeps_total",
			Help: "Expiry sweep runs by result",
		}, []string{"service", "result"}),

		refundAmount: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_refund_amount",
			Help:    "Refund amounts computed on cancellation",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"service", "tier"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
	}
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// RecordAdmission учитывает решение по допуску бронирования
func (m *Metrics) RecordAdmission(outcome string) {
	if m == nil {
		return
	}
	m.admissionsTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordTransition учитывает переход состояния бронирования
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(m.serviceName, from, to).Inc()
}

// RecordExpirySweep учитывает запуск sweep'а истечения заявок
func (m *Metrics) RecordExpirySweep(result string) {
	if m == nil {
		return
	}
	m.expirySweeps.WithLabelValues(m.serviceName, result).Inc()
}

// ObserveRefund учитывает сумму возврата
func (m *Metrics) ObserveRefund(tier string, amount float64) {
	if m == nil {
		return
	}
	m.refundAmount.WithLabelValues(m.serviceName, tier).Observe(amount)
}

// ObserveDBQuery учитывает время выполнения запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(stats.Idle))
}

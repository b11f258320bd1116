package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist in tests.
// All recording methods are safe on a nil receiver.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	BookingTransitions *prometheus.CounterVec
	PaymentsCreated    prometheus.Counter
	PaymentsConfirmed  prometheus.Counter
	PropertiesReported prometheus.Counter
	LoginThrottled     prometheus.Counter
	RedisErrors        *prometheus.CounterVec
	LiveConnections    prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rentalconnect_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rentalconnect_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rentalconnect_booking_transitions_total",
			Help: "Booking state changes by target state",
		}, []string{"to"}),

		PaymentsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "rentalconnect_payments_created_total",
			Help: "Payments initiated by renters",
		}),

		PaymentsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name: "rentalconnect_payments_confirmed_total",
			Help: "Payments confirmed by landlords",
		}),

		PropertiesReported: f.NewCounter(prometheus.CounterOpts{
			Name: "rentalconnect_properties_reported_total",
			Help: "Property reports filed",
		}),

		LoginThrottled: f.NewCounter(prometheus.CounterOpts{
			Name: "rentalconnect_login_throttled_total",
			Help: "Login attempts rejected by the rate limiter",
		}),

		RedisErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rentalconnect_redis_errors_total",
			Help: "Redis command failures by command",
		}, []string{"command"}),

		LiveConnections: f.NewGauge(prometheus.GaugeOpts{
			Name: "rentalconnect_message_live_connections",
			Help: "Open websocket connections on the message feed",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) BookingTransition(to string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) PaymentCreated() {
	if m == nil {
		return
	}
	m.PaymentsCreated.Inc()
}

func (m *Metrics) PaymentConfirmed() {
	if m == nil {
		return
	}
	m.PaymentsConfirmed.Inc()
}

func (m *Metrics) PropertyReported() {
	if m == nil {
		return
	}
	m.PropertiesReported.Inc()
}

func (m *Metrics) Throttled() {
	if m == nil {
		return
	}
	m.LoginThrottled.Inc()
}

func (m *Metrics) RedisError(command string) {
	if m == nil {
		return
	}
	m.RedisErrors.WithLabelValues(command).Inc()
}

func (m *Metrics) LiveConnectionDelta(delta float64) {
	if m == nil {
		return
	}
	m.LiveConnections.Add(delta)
}

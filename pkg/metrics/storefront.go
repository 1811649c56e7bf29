package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailure  = "failure"
	ResultConflict = "conflict"
)

// StoreMetrics records order placement and waitlist outcomes.
type StoreMetrics struct {
	orderDuration *prometheus.HistogramVec
	orders        *prometheus.CounterVec
	orderItems    prometheus.Counter
	waitlist      *prometheus.CounterVec
}

// NewStoreMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	orderDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_order_placement_duration_seconds",
		Help:    "Duration of order placement transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_total",
		Help: "Order placement attempts by result.",
	}, []string{"result"})
	orderItems := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_items_total",
		Help: "Line items persisted by committed orders.",
	})
	waitlist := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_waitlist_signups_total",
		Help: "Waitlist join attempts by result.",
	}, []string{"result"})
	reg.MustRegister(orderDuration, orders, orderItems, waitlist)
	return &StoreMetrics{
		orderDuration: orderDuration,
		orders:        orders,
		orderItems:    orderItems,
		waitlist:      waitlist,
	}
}

// ObserveOrder records one order placement attempt.
func (m *StoreMetrics) ObserveOrder(result string, items int, duration time.Duration) {
	if m == nil || m.orders == nil {
		return
	}
	result = normalizeLabel(result)
	m.orders.WithLabelValues(result).Inc()
	m.orderDuration.WithLabelValues(result).Observe(duration.Seconds())
	if result == ResultSuccess && items > 0 {
		m.orderItems.Add(float64(items))
	}
}

// IncWaitlist increments the waitlist counter for result.
func (m *StoreMetrics) IncWaitlist(result string) {
	if m == nil || m.waitlist == nil {
		return
	}
	m.waitlist.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

// HTTPMetrics records request counts and latencies per route pattern.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Observe records one completed request.
func (m *HTTPMetrics) Observe(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

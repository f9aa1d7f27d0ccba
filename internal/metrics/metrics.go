// Package metrics collects and exposes Prometheus metrics for the shop API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by the HTTP layer.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordRegistration()
	RecordCheckout(purchases int)
	RecordCheckoutConflict()
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	requests          *prometheus.CounterVec
	requestLatency    *prometheus.HistogramVec
	registrations     prometheus.Counter
	checkouts         prometheus.Counter
	purchasesCreated  prometheus.Counter
	checkoutConflicts prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecofinds_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecofinds_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_registrations_total",
			Help: "Successful user registrations.",
		}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_checkouts_total",
			Help: "Successful checkouts.",
		}),
		purchasesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_purchases_created_total",
			Help: "Purchases created by checkouts.",
		}),
		checkoutConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_checkout_conflicts_total",
			Help: "Checkouts rejected because a concurrent checkout consumed the cart.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.registrations,
		c.checkouts,
		c.purchasesCreated,
		c.checkoutConflicts,
	)

	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordCheckout(purchases int) {
	c.checkouts.Inc()
	c.purchasesCreated.Add(float64(purchases))
}

func (c *Collector) RecordCheckoutConflict() {
	c.checkoutConflicts.Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordRegistration()                              {}
func (Nop) RecordCheckout(int)                               {}
func (Nop) RecordCheckoutConflict()                          {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)

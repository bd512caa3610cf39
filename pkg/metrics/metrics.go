package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Listing workflow metrics
	ListingDecisions     *prometheus.CounterVec
	ListingSubmissions   *prometheus.CounterVec
	ValidationFailures   *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	NotificationLatency  prometheus.Histogram

	// Broker metrics
	BrokerPublishes    *prometheus.CounterVec
	NotificationEvents *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics on reg. Passing a
// fresh prometheus.NewRegistry() keeps tests independent of the global one.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path"}),

		ListingDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "decisions_total",
			Help:      "Administrator decisions by listing kind and outcome",
		}, []string{"kind", "status"}),
		ListingSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listing",
			Name:      "submissions_total",
			Help:      "Listings created or edited by listing kind and resulting status",
		}, []string{"kind", "status"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "availability",
			Name:      "validation_failures_total",
			Help:      "Availability validation failures by error code",
		}, []string{"code"}),
		NotificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "failures_total",
			Help:      "Notifications that could not be delivered, by stage",
		}, []string{"stage"}),
		NotificationLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "duration_seconds",
			Help:      "Time spent delivering a decision notification",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),

		BrokerPublishes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broker",
			Name:      "publishes_total",
			Help:      "Messages published to the broker by channel and status",
		}, []string{"channel", "status"}),
		NotificationEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "notification_events_total",
			Help:      "Notification outcome events consumed from the broker, by type",
		}, []string{"type"}),
	}
}

// New registers on a private registry. Used by tests and tools that do not
// expose /metrics.
func New(namespace string) *Metrics {
	return NewMetrics(namespace, prometheus.NewRegistry())
}

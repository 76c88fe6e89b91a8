package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics defines our Prometheus metrics
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	roomsCreated    prometheus.Counter
	roomsDeleted    prometheus.Counter
	commentsAdded   prometheus.Counter
	commentsOrphan  prometheus.Counter
	feedClients     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in
// tests so collectors don't collide across cases.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route pattern.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roomly",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		roomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "rooms_created_total",
			Help:      "Rooms created.",
		}),
		roomsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "rooms_deleted_total",
			Help:      "Rooms actually removed from the store.",
		}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "comments_added_total",
			Help:      "Comments created and attached to a room.",
		}),
		commentsOrphan: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "comments_orphaned_total",
			Help:      "Comments created but never attached to their room.",
		}),
		feedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roomly",
			Name:      "feed_clients",
			Help:      "Connected live feed clients.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.roomsCreated,
		m.roomsDeleted,
		m.commentsAdded,
		m.commentsOrphan,
		m.feedClients,
	)

	return m
}

// NewDefault registers on a fresh registry that also carries the Go runtime
// and process collectors.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return New(reg)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) RoomCreated()     { m.roomsCreated.Inc() }
func (m *Metrics) RoomDeleted()     { m.roomsDeleted.Inc() }
func (m *Metrics) CommentAdded()    { m.commentsAdded.Inc() }
func (m *Metrics) CommentOrphaned() { m.commentsOrphan.Inc() }

func (m *Metrics) FeedClientConnected()    { m.feedClients.Inc() }
func (m *Metrics) FeedClientDisconnected() { m.feedClients.Dec() }

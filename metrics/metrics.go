package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lovematch_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lovematch_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	swipesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lovematch_swipes_total",
			Help: "Total number of swipes by direction.",
		},
		[]string{"direction"},
	)
	matchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lovematch_matches_total",
			Help: "Total number of mutual matches created.",
		},
	)
	chatTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lovematch_chat_tokens_total",
			Help: "Chat tokens handed out, by source (minted or cached).",
		},
		[]string{"source"},
	)
	socketConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lovematch_socket_active_connections",
			Help: "Number of active Socket.IO connections.",
		},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lovematch_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		swipesTotal,
		matchesTotal,
		chatTokensTotal,
		socketConnections,
		amqpPublishErrorsTotal,
	)
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func IncSwipe(direction string) {
	swipesTotal.WithLabelValues(direction).Inc()
}

func IncMatch() {
	matchesTotal.Inc()
}

func IncChatToken(source string) {
	chatTokensTotal.WithLabelValues(source).Inc()
}

func IncSocketActive() {
	socketConnections.Inc()
}

func DecSocketActive() {
	socketConnections.Dec()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}

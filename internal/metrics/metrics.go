package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// QueryDuration backs the read-timing diagnostic on repository queries.
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repo_query_duration_seconds",
			Help:    "Duration of repository read queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity", "op"},
	)

	ReviewWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_writes_total",
			Help: "Review create/update/delete operations",
		},
		[]string{"op"},
	)

	RatingRecomputesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_recomputes_total",
			Help: "Tour rating aggregate recomputations",
		},
	)
	RatingRecomputesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_recomputes_failed_total",
			Help: "Failed tour rating aggregate recomputations",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(
		RequestsTotal,
		QueryDuration,
		ReviewWritesTotal,
		RatingRecomputesTotal,
		RatingRecomputesFailed,
		WorkerQueueDepth,
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CrawlsTotal         *prometheus.CounterVec
	CrawlDuration       *prometheus.HistogramVec
	NewArticlesTotal    *prometheus.CounterVec
	CrawlJobsAbandoned  prometheus.Counter
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	CrawlsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawls_total",
			Help: "Total number of crawl attempts per organization.",
		},
		[]string{"status", "provider"}, // status: success, failure
	)

	CrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crawl_duration_seconds",
			Help:    "Duration of single-organization crawl operations.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
		[]string{"provider"},
	)

	NewArticlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "new_articles_total",
			Help: "Total number of newly persisted articles.",
		},
		[]string{"provider"},
	)

	CrawlJobsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crawl_jobs_abandoned_total",
			Help: "Crawl jobs abandoned at their per-job deadline.",
		},
	)
}

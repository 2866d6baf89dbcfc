package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "schoolsite"

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	RemoteReadFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "remote_read_failures_total", Help: "Failed content table reads",
	}, []string{"table"})
	RemoteWriteFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "remote_write_failures_total", Help: "Failed content writes rolled back locally",
	}, []string{"entity", "op"})
	MediaUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "media_uploads_total", Help: "Media uploads by outcome",
	}, []string{"outcome"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, RemoteReadFailures, RemoteWriteFailures, MediaUploads, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

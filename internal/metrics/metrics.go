package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Catalog
	ProgramOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_program_ops_total",
			Help: "Program writes by operation and result",
		},
		[]string{"op", "result"}, // create|update|delete, ok|error
	)
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_registrations_total",
			Help: "User registrations by role",
		},
		[]string{"role"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // ok|denied|error
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Program list cache lookups",
		},
		[]string{"result"}, // hit|miss|error
	)
	AuditFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_audit_failures_total",
			Help: "Audit entries that could not be written",
		},
	)

	// Worker kuyruğu
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// /metrics endpoint'i için handler
var Handler = promhttp.Handler

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestDuration,
			ProgramOps,
			Registrations,
			Logins,
			CacheLookups,
			AuditFailures,
			WorkerQueueDepth,
		)
	})
}

// Result labels an outcome for the op counters.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

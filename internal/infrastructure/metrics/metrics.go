package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProbesTotal tracks health probes by domain and resulting category
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cdnguard_probes_total",
		Help: "Total number of health probes performed",
	}, []string{"domain", "category"})

	// ProbeDuration tracks probe round-trip time
	ProbeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cdnguard_probe_duration_seconds",
		Help:    "Histogram of probe round-trip duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"domain"})

	// TogglesTotal tracks applied proxied-flag changes
	TogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cdnguard_toggles_total",
		Help: "Total number of proxied-flag changes applied",
	}, []string{"domain", "direction"})

	// APIErrorsTotal tracks failed Cloudflare API calls per operation
	APIErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cdnguard_api_errors_total",
		Help: "Total number of failed Cloudflare API calls",
	}, []string{"operation"})

	// MonitorRounds counts completed monitor rounds
	MonitorRounds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cdnguard_monitor_rounds_total",
		Help: "Total number of completed monitor rounds",
	})

	// RecordProxied indicates the last known proxied flag per domain
	RecordProxied = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cdnguard_record_proxied",
		Help: "Last known proxied flag of the managed record (1 = proxied, 0 = direct)",
	}, []string{"domain"})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Dispatch cycle metrics
	DispatchSucceeded *prometheus.CounterVec
	DispatchFailed    *prometheus.CounterVec
	DispatchSkipped   prometheus.Counter
	CycleDuration     prometheus.Histogram
	SchedulesDue      prometheus.Gauge

	// Database metrics
	DatabaseOperations *prometheus.CounterVec

	// Email metrics
	EmailsSent   prometheus.Counter
	EmailsFailed prometheus.Counter
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		DispatchSucceeded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_succeeded_total",
			Help:      "Total number of successful schedule dispatches",
		}, []string{"kind"}),
		DispatchFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_failed_total",
			Help:      "Total number of failed schedule dispatches",
		}, []string{"kind"}),
		DispatchSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_skipped_total",
			Help:      "Total number of schedules skipped because another invocation claimed them",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Time spent running one dispatch cycle",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		SchedulesDue: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "schedules_due",
			Help:      "Number of due schedules selected in the last cycle",
		}),
		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		EmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Total number of report emails delivered",
		}),
		EmailsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_failed_total",
			Help:      "Total number of report emails that failed delivery",
		}),
	}
}

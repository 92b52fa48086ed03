package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	NotificationsTotal   *prometheus.CounterVec
	MatcherQueryFailures *prometheus.CounterVec
	SendSeconds          *prometheus.HistogramVec
	ActiveWorkers        prometheus.Gauge
	FanoutRecipients     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		NotificationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_notifications_total",
			Help: "Total number of dispatched incident notifications.",
		}, []string{"result"}),
		MatcherQueryFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_matcher_query_failures_total",
			Help: "Total number of location store failures per matcher.",
		}, []string{"matcher"}),
		SendSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "beacon_mail_send_duration_seconds",
			Help:    "Duration of sends through the mail gateway.",
			Buckets: prometheus.DefBuckets,
		}, []string{"gateway"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "beacon_active_dispatch_workers",
			Help: "Current number of active workers dispatching notifications.",
		}),
		FanoutRecipients: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_fanout_recipients",
			Help:    "Number of unique recipients selected per fan-out run.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
	}
}

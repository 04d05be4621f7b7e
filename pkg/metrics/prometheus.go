package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	MissionsReceived *prometheus.CounterVec
	ViolationsCount  *prometheus.CounterVec
	ValidationTime   prometheus.Histogram
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates new prometheus metrics registered on reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MissionsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_received_total",
			Help:      "The total number of mission payloads received, by outcome",
		}, []string{"outcome"}),
		ViolationsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_violations_total",
			Help:      "The total number of mission field violations",
		}, []string{"field", "kind"}),
		ValidationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mission_validation_duration_seconds",
			Help:      "Time taken to validate a mission payload",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

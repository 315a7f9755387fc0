package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for mood ingestion and alerting.
type Metrics struct {
	moodsRecorded   *prometheus.CounterVec
	assessments     *prometheus.CounterVec
	alerts          *prometheus.CounterVec
	recommendations prometheus.Histogram
	sweepDuration   prometheus.Histogram
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns collectors registered with the global registry, created once.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNewMetrics registers fresh collectors with reg and panics on conflict.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		moodsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mood_tracker",
			Name:      "mood_records_total",
			Help:      "Mood records stored, by source and emotion category.",
		}, []string{"source", "category"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mood_tracker",
			Name:      "trend_assessments_total",
			Help:      "Trend assessments computed, by resulting status.",
		}, []string{"status"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mood_tracker",
			Name:      "alerts_total",
			Help:      "Alerts handled, by status and outcome (delivered, failed, suppressed).",
		}, []string{"status", "outcome"}),
		recommendations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mood_tracker",
			Name:      "recommendations_returned",
			Help:      "Number of tasks returned per recommendation request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mood_tracker",
			Name:      "sweep_duration_seconds",
			Help:      "Time taken to evaluate every employee in one sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.moodsRecorded, m.assessments, m.alerts, m.recommendations, m.sweepDuration)
	return m
}

func (m *Metrics) MoodRecorded(source, category string) {
	m.moodsRecorded.WithLabelValues(source, category).Inc()
}

func (m *Metrics) Assessed(status string) {
	m.assessments.WithLabelValues(status).Inc()
}

func (m *Metrics) Alert(status, outcome string) {
	m.alerts.WithLabelValues(status, outcome).Inc()
}

func (m *Metrics) Recommended(n int) {
	m.recommendations.Observe(float64(n))
}

func (m *Metrics) SweepFinished(seconds float64) {
	m.sweepDuration.Observe(seconds)
}

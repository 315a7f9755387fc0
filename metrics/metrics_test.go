package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.MoodRecorded("text", "positive")
	m.MoodRecorded("text", "positive")
	m.Assessed("critical")
	m.Alert("critical", "delivered")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.moodsRecorded.WithLabelValues("text", "positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assessments.WithLabelValues("critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alerts.WithLabelValues("critical", "delivered")))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustNewMetrics(reg)
	assert.Panics(t, func() { MustNewMetrics(reg) })
}

package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clementus360/mood-tracker/types"
)

func history(scores ...float64) []types.MoodRecord {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]types.MoodRecord, len(scores))
	for i, s := range scores {
		out[i] = types.MoodRecord{
			EmployeeID: 1,
			MoodScore:  s,
			Category:   CategoryForScore(s),
			Timestamp:  start.AddDate(0, 0, i),
			Source:     types.SourceText,
		}
	}
	return out
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	got := NewTrendAnalyzer(DefaultConfig()).Analyze(nil)
	assert.Equal(t, types.StatusNormal, got.Status)
	assert.Zero(t, got.ConsecutiveLowDays)
	assert.Zero(t, got.AverageMood)
	assert.True(t, strings.Contains(strings.ToLower(got.Message), "insufficient"))
}

func TestAnalyzeClassification(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		status types.StressStatus
		avg    float64
		low    int
	}{
		{"burnout", []float64{0.1, 0.1, 0.1}, types.StatusCritical, 0.1, 3},
		{"single low reading", []float64{0.25}, types.StatusWarning, 0.25, 1},
		{"very low but too few days", []float64{0.1, 0.1}, types.StatusWarning, 0.1, 2},
		{"all high", []float64{0.9, 0.9, 0.9, 0.9}, types.StatusNormal, 0.9, 0},
		{"recovered today", []float64{0.1, 0.1, 0.1, 0.1, 0.5}, types.StatusWarning, 0.18, 0},
		{"threshold is exclusive", []float64{0.3, 0.3}, types.StatusNormal, 0.3, 0},
	}
	analyzer := NewTrendAnalyzer(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Analyze(history(tt.scores...))
			assert.Equal(t, tt.status, got.Status)
			assert.InDelta(t, tt.avg, got.AverageMood, 1e-9)
			assert.Equal(t, tt.low, got.ConsecutiveLowDays)
		})
	}
}

func TestAnalyzeUsesTrailingWindow(t *testing.T) {
	// eight old good days followed by seven bad ones: only the bad ones count
	scores := []float64{0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	got := NewTrendAnalyzer(DefaultConfig()).Analyze(history(scores...))
	assert.Equal(t, types.StatusCritical, got.Status)
	assert.InDelta(t, 0.1, got.AverageMood, 1e-9)
	assert.Equal(t, 7, got.ConsecutiveLowDays)
}

func TestAnalyzeConsecutiveCountSpansBeyondWindow(t *testing.T) {
	scores := make([]float64, 10)
	for i := range scores {
		scores[i] = 0.05
	}
	got := NewTrendAnalyzer(DefaultConfig()).Analyze(history(scores...))
	assert.Equal(t, 10, got.ConsecutiveLowDays)
}

func TestAnalyzeOrdersByTimestamp(t *testing.T) {
	h := history(0.1, 0.1, 0.1, 0.9)
	// newest reading first in the slice
	h[0], h[3] = h[3], h[0]
	got := NewTrendAnalyzer(DefaultConfig()).Analyze(h)
	require.Equal(t, 0, got.ConsecutiveLowDays)
}

func TestAnalyzeHonoursConfiguredThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StressThreshold = 0.5
	cfg.BurnoutThreshold = 0.45
	cfg.ConsecutiveDaysThreshold = 2
	cfg.TrendWindow = 2

	got := NewTrendAnalyzer(cfg).Analyze(history(0.9, 0.4, 0.4))
	assert.Equal(t, types.StatusCritical, got.Status)
	assert.InDelta(t, 0.4, got.AverageMood, 1e-9)
	assert.Equal(t, 2, got.ConsecutiveLowDays)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.BurnoutThreshold = 0.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultConfig()
	bad.TrendWindow = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultConfig()
	bad.StressThreshold = 1.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

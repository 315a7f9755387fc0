package engine

import (
	"slices"

	"clementus360/mood-tracker/types"
)

const (
	msgInsufficient = "Insufficient mood data"
	msgBurnout      = "Potential burnout detected"
	msgStress       = "Elevated stress levels detected"
	msgNormal       = "Mood levels within normal range"
)

// TrendAnalyzer classifies stress from an employee's mood history.
type TrendAnalyzer struct {
	cfg Config
}

func NewTrendAnalyzer(cfg Config) *TrendAnalyzer {
	return &TrendAnalyzer{cfg: cfg}
}

// Analyze expects history for a single employee. Records are ordered by
// timestamp before use; an empty history is reported as normal.
func (a *TrendAnalyzer) Analyze(history []types.MoodRecord) types.TrendAssessment {
	if len(history) == 0 {
		return types.TrendAssessment{Status: types.StatusNormal, Message: msgInsufficient}
	}

	ordered := slices.Clone(history)
	slices.SortStableFunc(ordered, func(x, y types.MoodRecord) int {
		return x.Timestamp.Compare(y.Timestamp)
	})

	window := ordered
	if len(window) > a.cfg.TrendWindow {
		window = window[len(window)-a.cfg.TrendWindow:]
	}
	var sum float64
	for _, r := range window {
		sum += r.MoodScore
	}
	avg := sum / float64(len(window))

	low := 0
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].MoodScore >= a.cfg.StressThreshold {
			break
		}
		low++
	}

	out := types.TrendAssessment{AverageMood: avg, ConsecutiveLowDays: low}
	switch {
	case avg < a.cfg.BurnoutThreshold && low >= a.cfg.ConsecutiveDaysThreshold:
		out.Status, out.Message = types.StatusCritical, msgBurnout
	case avg < a.cfg.StressThreshold:
		out.Status, out.Message = types.StatusWarning, msgStress
	default:
		out.Status, out.Message = types.StatusNormal, msgNormal
	}
	return out
}

package engine

import (
	"errors"
	"strings"

	"clementus360/mood-tracker/types"
)

var (
	ErrNoInputProvided = errors.New("no input provided for emotion detection")
	ErrNoValidSignal   = errors.New("no valid emotion detection results")
)

const (
	positiveBase = 0.8
	negativeBase = 0.2
	neutralBase  = 0.5

	positiveCutoff = 0.6
	negativeCutoff = 0.4
)

var emotionLexicon = map[string]types.EmotionCategory{
	"happy":    types.CategoryPositive,
	"excited":  types.CategoryPositive,
	"content":  types.CategoryPositive,
	"positive": types.CategoryPositive, // sentiment classifiers emit POSITIVE/NEGATIVE
	"sad":      types.CategoryNegative,
	"angry":    types.CategoryNegative,
	"stressed": types.CategoryNegative,
	"negative": types.CategoryNegative,
	"neutral":  types.CategoryNeutral,
	"calm":     types.CategoryNeutral,
}

// ClassifyLabel maps a detector label onto a category. Unknown labels are neutral.
func ClassifyLabel(label string) types.EmotionCategory {
	if c, ok := emotionLexicon[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return types.CategoryNeutral
}

// KnownLabel reports whether the label is in the lexicon.
func KnownLabel(label string) bool {
	_, ok := emotionLexicon[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

// CategoryForScore buckets an aggregate mood score.
func CategoryForScore(score float64) types.EmotionCategory {
	switch {
	case score > positiveCutoff:
		return types.CategoryPositive
	case score < negativeCutoff:
		return types.CategoryNegative
	default:
		return types.CategoryNeutral
	}
}

// DetectionScore is base(label) * confidence.
func DetectionScore(d types.Detection) float64 {
	var base float64
	switch ClassifyLabel(d.Label) {
	case types.CategoryPositive:
		base = positiveBase
	case types.CategoryNegative:
		base = negativeBase
	default:
		base = neutralBase
	}
	return base * clamp01(d.Confidence)
}

// Normalize averages every usable detection into one mood. Failed and stub
// detections do not contribute.
func Normalize(detections []types.Detection) (types.NormalizedMood, error) {
	if len(detections) == 0 {
		return types.NormalizedMood{}, ErrNoInputProvided
	}

	var sum float64
	var used []types.Source
	for _, d := range detections {
		if d.Outcome != types.OutcomeOK {
			continue
		}
		sum += DetectionScore(d)
		used = append(used, d.Source)
	}
	if len(used) == 0 {
		return types.NormalizedMood{}, ErrNoValidSignal
	}

	avg := sum / float64(len(used))
	return types.NormalizedMood{
		Score:       avg,
		Category:    CategoryForScore(avg),
		SourcesUsed: used,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

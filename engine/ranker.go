package engine

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"clementus360/mood-tracker/types"
)

var ErrEmptyCatalog = errors.New("task catalog is empty")

const (
	highMoodCutoff = 0.7
	lowMoodCutoff  = 0.3
)

// TaskRanker scores catalog tasks against the current mood.
type TaskRanker struct {
	cfg Config
}

func NewTaskRanker(cfg Config) *TaskRanker {
	return &TaskRanker{cfg: cfg}
}

// TargetDifficulty is the normalized difficulty a mood score is best matched with.
func TargetDifficulty(moodScore float64) float64 {
	switch {
	case moodScore > highMoodCutoff:
		return 0.75
	case moodScore < lowMoodCutoff:
		return 0.25
	default:
		return 0.5
	}
}

// Suitability returns clamp(1 - |d' - c|, 0, 1) where d' = (difficulty-1)/4.
func Suitability(moodScore float64, difficulty int) float64 {
	d := clamp01(float64(difficulty-1) / 4.0)
	return clamp01(1 - math.Abs(d-TargetDifficulty(moodScore)))
}

// Rank returns at most limit recommendations, best first, ties by ascending id.
// Tasks matching the mood's category are preferred; if none match the whole
// catalog is ranked instead.
func (r *TaskRanker) Rank(mood types.MoodRecord, catalog []types.Task, limit int) ([]types.TaskRecommendation, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if limit <= 0 {
		return []types.TaskRecommendation{}, nil
	}

	var candidates []types.Task
	for _, t := range catalog {
		if t.MoodSuitability == mood.Category {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		candidates = catalog
	}

	recs := make([]types.TaskRecommendation, 0, len(candidates))
	for _, t := range candidates {
		recs = append(recs, types.TaskRecommendation{
			Task:             t,
			SuitabilityScore: Suitability(mood.MoodScore, t.DifficultyLevel),
		})
	}
	slices.SortFunc(recs, func(a, b types.TaskRecommendation) int {
		if c := cmp.Compare(b.SuitabilityScore, a.SuitabilityScore); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// DefaultLimit is the configured number of recommendations.
func (r *TaskRanker) DefaultLimit() int {
	return r.cfg.DefaultRecommendations
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clementus360/mood-tracker/types"
)

func ok(label string, confidence float64, source types.Source) types.Detection {
	return types.Detection{Label: label, Confidence: confidence, Source: source, Outcome: types.OutcomeOK}
}

func TestNormalizeHappyScalesWithConfidence(t *testing.T) {
	for _, c := range []float64{0, 0.1, 0.5, 0.74, 0.75, 0.76, 0.9, 1} {
		mood, err := Normalize([]types.Detection{ok("happy", c, types.SourceText)})
		require.NoError(t, err)
		assert.InDelta(t, 0.8*c, mood.Score, 1e-9, "confidence %v", c)
		assert.Equal(t, mood.Score > 0.6, mood.Category == types.CategoryPositive, "confidence %v", c)
	}
}

func TestNormalizeAveragesAndSkipsUnusable(t *testing.T) {
	mood, err := Normalize([]types.Detection{
		ok("sad", 1, types.SourceText),
		{Source: types.SourceFacial, Outcome: types.OutcomeFailed, Error: "No face detected"},
		{Label: "neutral", Confidence: 0.7, Source: types.SourceSpeech, Outcome: types.OutcomeStub},
		ok("Excited", 1, types.SourceSpeech),
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mood.Score, 1e-9)
	assert.Equal(t, types.CategoryNeutral, mood.Category)
	assert.Equal(t, []types.Source{types.SourceText, types.SourceSpeech}, mood.SourcesUsed)
}

func TestNormalizeErrors(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrNoInputProvided)

	_, err = Normalize([]types.Detection{
		{Source: types.SourceFacial, Outcome: types.OutcomeFailed},
		{Label: "neutral", Confidence: 0.7, Source: types.SourceSpeech, Outcome: types.OutcomeStub},
	})
	assert.ErrorIs(t, err, ErrNoValidSignal)
}

func TestClassifyLabel(t *testing.T) {
	cases := map[string]types.EmotionCategory{
		"happy":    types.CategoryPositive,
		"POSITIVE": types.CategoryPositive,
		" angry ":  types.CategoryNegative,
		"stressed": types.CategoryNegative,
		"calm":     types.CategoryNeutral,
		"confused": types.CategoryNeutral,
		"":         types.CategoryNeutral,
	}
	for label, want := range cases {
		assert.Equal(t, want, ClassifyLabel(label), label)
	}
	assert.False(t, KnownLabel("confused"))
	assert.True(t, KnownLabel("Content"))
}

func TestCategoryForScoreBoundaries(t *testing.T) {
	assert.Equal(t, types.CategoryNeutral, CategoryForScore(0.6))
	assert.Equal(t, types.CategoryPositive, CategoryForScore(0.61))
	assert.Equal(t, types.CategoryNeutral, CategoryForScore(0.4))
	assert.Equal(t, types.CategoryNegative, CategoryForScore(0.39))
}

func TestDetectionScoreClampsConfidence(t *testing.T) {
	assert.InDelta(t, 0.2, DetectionScore(ok("sad", 3, types.SourceText)), 1e-9)
	assert.Zero(t, DetectionScore(ok("happy", -1, types.SourceText)))
}

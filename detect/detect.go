// Package detect wraps the emotion signal producers. Producers report a raw
// label and confidence; turning those into a mood score is engine's job.
package detect

import (
	"context"

	"clementus360/mood-tracker/types"
)

// Detector produces one detection from one input. Failures are reported in
// the returned Detection, not as errors, so aggregation can skip them.
type Detector interface {
	Detect(ctx context.Context, input string) types.Detection
}

// Set routes each kind of input to its detector.
type Set struct {
	Text   Detector
	Facial Detector
	Speech Detector
}

// NewSet wires the text classifier with the placeholder facial and speech detectors.
func NewSet(text Detector) *Set {
	return &Set{
		Text:   text,
		Facial: Stub{Source: types.SourceFacial},
		Speech: Stub{Source: types.SourceSpeech},
	}
}

// DetectAll runs every detector whose input is present.
func (s *Set) DetectAll(ctx context.Context, text, imageURL, audioURL string) []types.Detection {
	var results []types.Detection
	if text != "" {
		results = append(results, run(ctx, s.Text, types.SourceText, text))
	}
	if imageURL != "" {
		results = append(results, run(ctx, s.Facial, types.SourceFacial, imageURL))
	}
	if audioURL != "" {
		results = append(results, run(ctx, s.Speech, types.SourceSpeech, audioURL))
	}
	return results
}

func run(ctx context.Context, d Detector, source types.Source, input string) types.Detection {
	if d == nil {
		return types.Detection{Source: source, Outcome: types.OutcomeFailed, Error: "detector not configured"}
	}
	return d.Detect(ctx, input)
}

// Stub stands in for detectors without a real model. Its readings are marked
// as stubs so they never count as genuine neutral moods.
type Stub struct {
	Source types.Source
}

func (s Stub) Detect(_ context.Context, _ string) types.Detection {
	return types.Detection{
		Label:      "neutral",
		Confidence: 0.7,
		Source:     s.Source,
		Outcome:    types.OutcomeStub,
	}
}

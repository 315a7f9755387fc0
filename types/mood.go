package types

import "time"

// EmotionCategory is the coarse valence bucket a mood falls into.
type EmotionCategory string

const (
	CategoryPositive EmotionCategory = "positive"
	CategoryNeutral  EmotionCategory = "neutral"
	CategoryNegative EmotionCategory = "negative"
)

func (c EmotionCategory) Valid() bool {
	switch c {
	case CategoryPositive, CategoryNeutral, CategoryNegative:
		return true
	}
	return false
}

// Source identifies which signal producer a mood came from.
type Source string

const (
	SourceText   Source = "text"
	SourceFacial Source = "facial"
	SourceSpeech Source = "speech"
)

func (s Source) Valid() bool {
	switch s {
	case SourceText, SourceFacial, SourceSpeech:
		return true
	}
	return false
}

// Outcome tells whether a detection carries a real signal.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
	OutcomeStub   Outcome = "stub" // detector not implemented, placeholder reading
)

// Detection is the raw output of a single emotion signal producer.
type Detection struct {
	Label      string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
	Outcome    Outcome `json:"outcome"`
	Error      string  `json:"error,omitempty"`
}

// NormalizedMood is the aggregate of one or more detections.
type NormalizedMood struct {
	Score       float64         `json:"mood_score"`
	Category    EmotionCategory `json:"emotion_type"`
	SourcesUsed []Source        `json:"sources_used"`
}

// MoodRecord is one stored mood observation for an employee.
type MoodRecord struct {
	ID         int64           `json:"id,omitempty"`
	EmployeeID int64           `json:"employee_id"`
	MoodScore  float64         `json:"mood_score"`
	Category   EmotionCategory `json:"emotion_type"`
	Timestamp  time.Time       `json:"timestamp"`
	Source     Source          `json:"source"`
	TaskID     *int64          `json:"task_id,omitempty"`
}

type MoodRequest struct {
	EmployeeID  *int64   `json:"employee_id"`
	MoodScore   *float64 `json:"mood_score"`
	EmotionType string   `json:"emotion_type"`
	Source      string   `json:"source"`
	TaskID      *int64   `json:"task_id,omitempty"`
}

type DetectRequest struct {
	EmployeeID *int64 `json:"employee_id"`
	Text       string `json:"text,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	AudioURL   string `json:"audio_url,omitempty"`
	TaskID     *int64 `json:"task_id,omitempty"`
}

type MoodResponse struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message,omitempty"`
	Record       *MoodRecord `json:"record,omitempty"`
	SourcesUsed  []Source    `json:"sources_used,omitempty"`
	ErrorMessage string      `json:"error,omitempty"`
}

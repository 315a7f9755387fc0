package types

type TeamAnalytics struct {
	AverageMood      float64                 `json:"average_mood"`
	TotalRecords     int                     `json:"total_records"`
	MoodDistribution map[EmotionCategory]int `json:"mood_distribution"`
}

// SweepSummary is returned by a full evaluation pass over all employees.
type SweepSummary struct {
	Evaluated int          `json:"evaluated"`
	Alerted   int          `json:"alerted"`
	Failed    int          `json:"failed"`
	Results   []Evaluation `json:"results"`
}

type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error"`
}

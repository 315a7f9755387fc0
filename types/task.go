package types

type Task struct {
	ID              int64           `json:"id,omitempty"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DifficultyLevel int             `json:"difficulty_level"` // 1-5
	MoodSuitability EmotionCategory `json:"mood_suitability"`
	Tags            []string        `json:"tags,omitempty"`
}

// TaskRecommendation is a task scored against a mood. Order in a result slice matters.
type TaskRecommendation struct {
	Task
	SuitabilityScore float64 `json:"suitability_score"`
}

// RecommendedTask is the wire shape of GET /api/tasks/recommend.
type RecommendedTask struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	DifficultyLevel  int     `json:"difficulty_level"`
	SuitabilityScore float64 `json:"suitability_score"`
}

type TaskResponse struct {
	Success      bool   `json:"success"`
	Task         Task   `json:"task,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type GetTasksResponse struct {
	Success      bool   `json:"success"`
	Tasks        []Task `json:"tasks"`
	Total        int    `json:"total"`
	ErrorMessage string `json:"error,omitempty"`
}

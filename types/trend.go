package types

// StressStatus is the outcome of a trend analysis.
type StressStatus string

const (
	StatusNormal   StressStatus = "normal"
	StatusWarning  StressStatus = "warning"
	StatusCritical StressStatus = "critical"
)

type TrendAssessment struct {
	Status             StressStatus `json:"status"`
	AverageMood        float64      `json:"average_mood"`
	ConsecutiveLowDays int          `json:"consecutive_low_days"`
	Message            string       `json:"message"`
}

package types

import "time"

// EmployeeInfo is what an alert needs to know about who it concerns.
type EmployeeInfo struct {
	ID           int64
	Name         string
	Team         string
	ManagerEmail string
}

type AlertPayload struct {
	AlertID            string       `json:"alert_id"`
	EmployeeID         int64        `json:"employee_id"`
	EmployeeName       string       `json:"employee_name"`
	Team               string       `json:"team"`
	Status             StressStatus `json:"status"`
	AverageMood        float64      `json:"average_mood"`
	ConsecutiveLowDays int          `json:"consecutive_low_days"`
	Message            string       `json:"message"`
	RecommendedActions []string     `json:"recommended_actions"`
	GeneratedAt        time.Time    `json:"generated_at"`
}

// DeliveryResult reports how a dispatched alert fared per transport.
type DeliveryResult struct {
	Delivered  bool              `json:"delivered"`
	Recipients []string          `json:"recipients"`
	Failures   map[string]string `json:"failures,omitempty"`
}

type Evaluation struct {
	EmployeeID int64           `json:"employee_id"`
	Assessment TrendAssessment `json:"assessment"`
	Alerted    bool            `json:"alerted"`
	Payload    *AlertPayload   `json:"payload,omitempty"`
	Delivery   *DeliveryResult `json:"delivery,omitempty"`
}

type EvaluationResponse struct {
	Success      bool        `json:"success"`
	Evaluation   *Evaluation `json:"evaluation,omitempty"`
	ErrorMessage string      `json:"error,omitempty"`
}

type AssessmentResponse struct {
	Success      bool             `json:"success"`
	EmployeeID   int64            `json:"employee_id"`
	Assessment   *TrendAssessment `json:"assessment,omitempty"`
	ErrorMessage string           `json:"error,omitempty"`
}

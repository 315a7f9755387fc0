package engine

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"clementus360/mood-tracker/types"
)

var ErrMissingEmployeeInfo = errors.New("employee name and team are required for an alert")

var recommendedActions = map[types.StressStatus][]string{
	types.StatusCritical: {
		"Immediate HR intervention required",
		"Schedule urgent one-on-one meeting",
		"Review and adjust workload",
		"Offer professional counseling services",
		"Consider temporary workload reduction",
	},
	types.StatusWarning: {
		"Schedule check-in meeting",
		"Review current workload",
		"Offer stress management resources",
		"Monitor mood trends",
		"Consider flexible work arrangements",
	},
	types.StatusNormal: {
		"Continue regular check-ins",
		"Monitor mood trends",
		"Maintain current support level",
	},
}

// AlertPolicy decides whether an assessment warrants an alert and builds it.
// It never delivers anything.
type AlertPolicy struct {
	now func() time.Time
}

func NewAlertPolicy() *AlertPolicy {
	return &AlertPolicy{now: time.Now}
}

func (p *AlertPolicy) ShouldAlert(a types.TrendAssessment) bool {
	return a.Status == types.StatusWarning || a.Status == types.StatusCritical
}

// RecommendedActions returns a fresh copy; unknown statuses get the normal list.
func (p *AlertPolicy) RecommendedActions(status types.StressStatus) []string {
	actions, ok := recommendedActions[status]
	if !ok {
		actions = recommendedActions[types.StatusNormal]
	}
	return slices.Clone(actions)
}

func (p *AlertPolicy) BuildPayload(info types.EmployeeInfo, a types.TrendAssessment) (types.AlertPayload, error) {
	if a.Status != types.StatusNormal &&
		(strings.TrimSpace(info.Name) == "" || strings.TrimSpace(info.Team) == "") {
		return types.AlertPayload{}, ErrMissingEmployeeInfo
	}
	return types.AlertPayload{
		AlertID:            uuid.NewString(),
		EmployeeID:         info.ID,
		EmployeeName:       info.Name,
		Team:               info.Team,
		Status:             a.Status,
		AverageMood:        a.AverageMood,
		ConsecutiveLowDays: a.ConsecutiveLowDays,
		Message:            a.Message,
		RecommendedActions: p.RecommendedActions(a.Status),
		GeneratedAt:        p.now().UTC(),
	}, nil
}

package wellbeing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"clementus360/mood-tracker/engine"
	"clementus360/mood-tracker/notify"
	"clementus360/mood-tracker/types"
)

// Assess runs the trend analysis for one employee without alerting.
func (s *Service) Assess(ctx context.Context, employeeID int64) (types.TrendAssessment, error) {
	if _, err := s.store.GetEmployee(ctx, employeeID); err != nil {
		return types.TrendAssessment{}, fmt.Errorf("employee %d: %w", employeeID, err)
	}
	history, err := s.store.MoodHistory(ctx, employeeID, s.opts.HistoryLimit)
	if err != nil {
		return types.TrendAssessment{}, fmt.Errorf("load mood history: %w", err)
	}
	a := s.analyzer.Analyze(history)
	s.metrics.Assessed(string(a.Status))
	return a, nil
}

// Evaluate assesses an employee and, when warranted, builds and dispatches an
// alert. A payload that cannot be built or a failed delivery never turns into
// an error: the assessment stands on its own.
func (s *Service) Evaluate(ctx context.Context, employeeID int64) (types.Evaluation, error) {
	employee, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return types.Evaluation{}, fmt.Errorf("employee %d: %w", employeeID, err)
	}
	history, err := s.store.MoodHistory(ctx, employeeID, s.opts.HistoryLimit)
	if err != nil {
		return types.Evaluation{}, fmt.Errorf("load mood history: %w", err)
	}

	assessment := s.analyzer.Analyze(history)
	s.metrics.Assessed(string(assessment.Status))
	eval := types.Evaluation{EmployeeID: employeeID, Assessment: assessment}

	if !s.policy.ShouldAlert(assessment) {
		return eval, nil
	}

	log := s.logger.WithFields(logrus.Fields{"employee_id": employeeID, "status": assessment.Status})

	payload, err := s.policy.BuildPayload(employee.Info(), assessment)
	if errors.Is(err, engine.ErrMissingEmployeeInfo) {
		log.Warn("Alert suppressed: ", err)
		s.metrics.Alert(string(assessment.Status), "suppressed")
		return eval, nil
	}
	if err != nil {
		return eval, err
	}

	recipients := notify.Recipients(s.opts.HREmail, s.opts.ManagerEmail, employee.ManagerEmail)
	delivery := s.dispatcher.Dispatch(ctx, payload, recipients)

	outcome := "delivered"
	if !delivery.Delivered {
		outcome = "failed"
		log.Warn("Alert raised but not delivered")
	}
	s.metrics.Alert(string(assessment.Status), outcome)

	eval.Alerted = true
	eval.Payload = &payload
	eval.Delivery = &delivery
	return eval, nil
}

// Sweep evaluates every employee concurrently. Individual failures are counted
// and logged; they do not stop the sweep.
func (s *Service) Sweep(ctx context.Context) (types.SweepSummary, error) {
	start := time.Now()
	employees, err := s.store.ListEmployees(ctx, "")
	if err != nil {
		return types.SweepSummary{}, fmt.Errorf("list employees: %w", err)
	}

	results := make([]*types.Evaluation, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.SweepWorkers)

	for i, e := range employees {
		g.Go(func() error {
			eval, err := s.Evaluate(gctx, e.ID)
			if err != nil {
				s.logger.WithField("employee_id", e.ID).WithError(err).Error("Failed to evaluate employee")
				return nil
			}
			results[i] = &eval
			return nil
		})
	}
	_ = g.Wait()

	summary := types.SweepSummary{Results: []types.Evaluation{}}
	for _, r := range results {
		if r == nil {
			summary.Failed++
			continue
		}
		summary.Evaluated++
		if r.Alerted {
			summary.Alerted++
		}
		summary.Results = append(summary.Results, *r)
	}
	s.metrics.SweepFinished(time.Since(start).Seconds())
	return summary, ctx.Err()
}

// Recommend ranks the catalog against the employee's latest mood.
func (s *Service) Recommend(ctx context.Context, employeeID int64, limit int) ([]types.TaskRecommendation, error) {
	latest, err := s.store.LatestMood(ctx, employeeID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("no mood history for employee %d: %w", employeeID, err)
	}
	if err != nil {
		return nil, err
	}
	catalog, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load task catalog: %w", err)
	}

	recs, err := s.ranker.Rank(latest, catalog, limit)
	if errors.Is(err, engine.ErrEmptyCatalog) {
		s.logger.WithField("employee_id", employeeID).Warn("Task catalog is empty, nothing to recommend")
		recs, err = []types.TaskRecommendation{}, nil
	}
	if err != nil {
		return nil, err
	}
	s.metrics.Recommended(len(recs))
	return recs, nil
}

// RecommendLimit resolves a caller's limit. An omitted limit uses the engine
// default; an explicit one must be positive.
func (s *Service) RecommendLimit(requested int, given bool) (int, error) {
	if !given {
		return s.ranker.DefaultLimit(), nil
	}
	if requested < 1 {
		return 0, invalid("limit must be a positive integer")
	}
	return requested, nil
}

func (s *Service) TeamAnalytics(ctx context.Context, team string) (types.TeamAnalytics, error) {
	if team == "" {
		return types.TeamAnalytics{}, invalid("team is required")
	}
	records, err := s.store.TeamMoods(ctx, team)
	if err != nil {
		return types.TeamAnalytics{}, fmt.Errorf("load team moods: %w", err)
	}

	out := types.TeamAnalytics{
		TotalRecords:     len(records),
		MoodDistribution: make(map[types.EmotionCategory]int),
	}
	if len(records) == 0 {
		return out, nil
	}
	var sum float64
	for _, r := range records {
		sum += r.MoodScore
		out.MoodDistribution[r.Category]++
	}
	out.AverageMood = sum / float64(len(records))
	return out, nil
}

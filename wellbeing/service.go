// Package wellbeing ties the decision engine to storage, signal detection and
// alert delivery. Handlers and the CLI call into Service.
package wellbeing

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"clementus360/mood-tracker/detect"
	"clementus360/mood-tracker/engine"
	"clementus360/mood-tracker/metrics"
	"clementus360/mood-tracker/notify"
	"clementus360/mood-tracker/store"
	"clementus360/mood-tracker/types"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = store.ErrNotFound
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type Options struct {
	HREmail          string
	ManagerEmail     string
	EvaluateOnRecord bool
	HistoryLimit     int // 0 reads the full history
	SweepWorkers     int
	EvaluateTimeout  time.Duration
}

type Deps struct {
	Store      store.Store
	Engine     engine.Config
	Detectors  *detect.Set
	Dispatcher *notify.Dispatcher
	Metrics    *metrics.Metrics
	Logger     logrus.FieldLogger
	Options    Options
}

type Service struct {
	store      store.Store
	analyzer   *engine.TrendAnalyzer
	policy     *engine.AlertPolicy
	ranker     *engine.TaskRanker
	detectors  *detect.Set
	dispatcher *notify.Dispatcher
	metrics    *metrics.Metrics
	logger     logrus.FieldLogger
	opts       Options

	inflight sync.WaitGroup
}

func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Detectors == nil {
		d.Detectors = detect.NewSet(nil)
	}
	if d.Dispatcher == nil {
		d.Dispatcher = notify.NewDispatcher(0, d.Logger)
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Default()
	}
	if d.Options.SweepWorkers <= 0 {
		d.Options.SweepWorkers = 4
	}
	if d.Options.EvaluateTimeout <= 0 {
		d.Options.EvaluateTimeout = 30 * time.Second
	}
	return &Service{
		store:      d.Store,
		analyzer:   engine.NewTrendAnalyzer(d.Engine),
		policy:     engine.NewAlertPolicy(),
		ranker:     engine.NewTaskRanker(d.Engine),
		detectors:  d.Detectors,
		dispatcher: d.Dispatcher,
		metrics:    d.Metrics,
		logger:     d.Logger,
		opts:       d.Options,
	}
}

// Wait blocks until background evaluations triggered by new moods finish.
func (s *Service) Wait() {
	s.inflight.Wait()
}

func (s *Service) CreateEmployee(ctx context.Context, e types.Employee) (types.Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Team = strings.TrimSpace(e.Team)
	if e.Name == "" {
		return types.Employee{}, invalid("name is required")
	}
	if _, err := mail.ParseAddress(e.Email); err != nil {
		return types.Employee{}, invalid("a valid email is required")
	}
	if e.ManagerEmail != "" {
		if _, err := mail.ParseAddress(e.ManagerEmail); err != nil {
			return types.Employee{}, invalid("manager_email is not a valid address")
		}
	}

	created, err := s.store.CreateEmployee(ctx, e)
	if errors.Is(err, store.ErrConflict) {
		return types.Employee{}, invalid("an employee with email %s already exists", e.Email)
	}
	return created, err
}

func (s *Service) ListEmployees(ctx context.Context, team string) ([]types.Employee, error) {
	return s.store.ListEmployees(ctx, team)
}

func (s *Service) CreateTask(ctx context.Context, t types.Task) (types.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return types.Task{}, invalid("title is required")
	}
	if t.DifficultyLevel < 1 || t.DifficultyLevel > 5 {
		return types.Task{}, invalid("difficulty_level must be between 1 and 5")
	}
	if !t.MoodSuitability.Valid() {
		return types.Task{}, invalid("mood_suitability must be positive, neutral or negative")
	}
	return s.store.CreateTask(ctx, t)
}

func (s *Service) ListTasks(ctx context.Context) ([]types.Task, error) {
	return s.store.ListTasks(ctx)
}

// RecordMood validates and stores an already-scored mood.
func (s *Service) RecordMood(ctx context.Context, req types.MoodRequest) (types.MoodRecord, error) {
	if req.EmployeeID == nil {
		return types.MoodRecord{}, invalid("employee_id is required")
	}
	if req.MoodScore == nil {
		return types.MoodRecord{}, invalid("mood_score is required")
	}
	if *req.MoodScore < 0 || *req.MoodScore > 1 {
		return types.MoodRecord{}, invalid("mood_score must be between 0 and 1")
	}
	category, err := s.parseCategory(req.EmotionType)
	if err != nil {
		return types.MoodRecord{}, err
	}
	source := types.Source(strings.ToLower(strings.TrimSpace(req.Source)))
	if !source.Valid() {
		return types.MoodRecord{}, invalid("source must be text, facial or speech")
	}
	if _, err := s.checkEmployee(ctx, *req.EmployeeID); err != nil {
		return types.MoodRecord{}, err
	}

	return s.saveMood(ctx, types.MoodRecord{
		EmployeeID: *req.EmployeeID,
		MoodScore:  *req.MoodScore,
		Category:   category,
		Source:     source,
		TaskID:     req.TaskID,
	})
}

// DetectMood runs the signal producers, normalizes their output and stores the result.
func (s *Service) DetectMood(ctx context.Context, req types.DetectRequest) (types.MoodRecord, types.NormalizedMood, error) {
	if req.EmployeeID == nil {
		return types.MoodRecord{}, types.NormalizedMood{}, invalid("employee_id is required")
	}
	if _, err := s.checkEmployee(ctx, *req.EmployeeID); err != nil {
		return types.MoodRecord{}, types.NormalizedMood{}, err
	}

	detections := s.detectors.DetectAll(ctx, req.Text, req.ImageURL, req.AudioURL)
	for _, d := range detections {
		if d.Outcome == types.OutcomeFailed {
			s.logger.WithFields(logrus.Fields{"source": d.Source, "employee_id": *req.EmployeeID}).
				Warn("Emotion detection failed: ", d.Error)
		}
	}

	mood, err := engine.Normalize(detections)
	if err != nil {
		return types.MoodRecord{}, types.NormalizedMood{}, err
	}

	record, err := s.saveMood(ctx, types.MoodRecord{
		EmployeeID: *req.EmployeeID,
		MoodScore:  mood.Score,
		Category:   mood.Category,
		Source:     mood.SourcesUsed[0],
		TaskID:     req.TaskID,
	})
	return record, mood, err
}

// saveMood persists one mood for an employee the caller has already checked.
func (s *Service) saveMood(ctx context.Context, r types.MoodRecord) (types.MoodRecord, error) {
	if r.TaskID != nil {
		if _, err := s.store.GetTask(ctx, *r.TaskID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.MoodRecord{}, invalid("task %d does not exist", *r.TaskID)
			}
			return types.MoodRecord{}, err
		}
	}

	r.Timestamp = time.Now().UTC()
	saved, err := s.store.InsertMood(ctx, r)
	if err != nil {
		return types.MoodRecord{}, err
	}
	s.metrics.MoodRecorded(string(saved.Source), string(saved.Category))

	if s.opts.EvaluateOnRecord {
		s.evaluateInBackground(saved.EmployeeID)
	}
	return saved, nil
}

func (s *Service) checkEmployee(ctx context.Context, id int64) (types.Employee, error) {
	e, err := s.store.GetEmployee(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return types.Employee{}, invalid("employee %d does not exist", id)
	}
	return e, err
}

func (s *Service) evaluateInBackground(employeeID int64) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.EvaluateTimeout)
		defer cancel()
		if _, err := s.Evaluate(ctx, employeeID); err != nil {
			s.logger.WithField("employee_id", employeeID).WithError(err).Warn("Re-evaluation after new mood failed")
		}
	}()
}

// parseCategory accepts a category name or any emotion label. Labels outside
// the lexicon are neutral.
func (s *Service) parseCategory(raw string) (types.EmotionCategory, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", invalid("emotion_type is required")
	}
	if c := types.EmotionCategory(raw); c.Valid() {
		return c, nil
	}
	if !engine.KnownLabel(raw) {
		s.logger.WithField("emotion_type", raw).Debug("Unrecognized emotion label, recording as neutral")
	}
	return engine.ClassifyLabel(raw), nil
}

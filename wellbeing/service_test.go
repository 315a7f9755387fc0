package wellbeing

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clementus360/mood-tracker/config"
	"clementus360/mood-tracker/detect"
	"clementus360/mood-tracker/engine"
	"clementus360/mood-tracker/metrics"
	"clementus360/mood-tracker/notify"
	"clementus360/mood-tracker/store"
	"clementus360/mood-tracker/types"
)

type recordingNotifier struct {
	mu         sync.Mutex
	payloads   []types.AlertPayload
	recipients [][]string
	err        error
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Send(_ context.Context, p types.AlertPayload, to []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	r.recipients = append(r.recipients, to)
	return r.err
}

func (r *recordingNotifier) sent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

type fixedDetector struct {
	det types.Detection
}

func (f fixedDetector) Detect(context.Context, string) types.Detection { return f.det }

type fixture struct {
	svc      *Service
	store    *store.SQLite
	notifier *recordingNotifier
	logs     *test.Hook
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger, hook := test.NewNullLogger()
	rec := &recordingNotifier{}
	svc := New(Deps{
		Store:      st,
		Engine:     engine.DefaultConfig(),
		Detectors:  detect.NewSet(nil),
		Dispatcher: notify.NewDispatcher(time.Second, logger, rec),
		Metrics:    metrics.MustNewMetrics(prometheus.NewRegistry()),
		Logger:     logger,
		Options:    opts,
	})
	return &fixture{svc: svc, store: st, notifier: rec, logs: hook}
}

func (f *fixture) employee(t *testing.T, name, team string) types.Employee {
	t.Helper()
	e, err := f.svc.CreateEmployee(context.Background(), types.Employee{
		Name:  name,
		Email: name + "@example.com",
		Team:  team,
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) moods(t *testing.T, employeeID int64, scores ...float64) {
	t.Helper()
	base := time.Now().UTC().Add(-time.Duration(len(scores)) * time.Hour)
	for i, s := range scores {
		_, err := f.store.InsertMood(context.Background(), types.MoodRecord{
			EmployeeID: employeeID,
			MoodScore:  s,
			Category:   engine.CategoryForScore(s),
			Source:     types.SourceText,
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
}

func ptr[T any](v T) *T { return &v }

func TestRecordMoodValidation(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")
	ctx := context.Background()

	cases := []struct {
		name string
		req  types.MoodRequest
	}{
		{"missing employee", types.MoodRequest{MoodScore: ptr(0.5), EmotionType: "neutral", Source: "text"}},
		{"missing score", types.MoodRequest{EmployeeID: ptr(e.ID), EmotionType: "neutral", Source: "text"}},
		{"score out of range", types.MoodRequest{EmployeeID: ptr(e.ID), MoodScore: ptr(1.5), EmotionType: "neutral", Source: "text"}},
		{"blank emotion", types.MoodRequest{EmployeeID: ptr(e.ID), MoodScore: ptr(0.5), EmotionType: "  ", Source: "text"}},
		{"bad source", types.MoodRequest{EmployeeID: ptr(e.ID), MoodScore: ptr(0.5), EmotionType: "neutral", Source: "email"}},
		{"unknown employee", types.MoodRequest{EmployeeID: ptr(int64(999)), MoodScore: ptr(0.5), EmotionType: "neutral", Source: "text"}},
		{"unknown task", types.MoodRequest{EmployeeID: ptr(e.ID), MoodScore: ptr(0.5), EmotionType: "neutral", Source: "text", TaskID: ptr(int64(42))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.RecordMood(ctx, tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRecordMoodMapsLexiconLabels(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")

	rec, err := f.svc.RecordMood(context.Background(), types.MoodRequest{
		EmployeeID:  ptr(e.ID),
		MoodScore:   ptr(0.2),
		EmotionType: "Sad",
		Source:      "speech",
	})
	require.NoError(t, err)
	assert.Equal(t, types.CategoryNegative, rec.Category)
	assert.Equal(t, types.SourceSpeech, rec.Source)
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestRecordMoodUnknownLabelIsNeutral(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")

	rec, err := f.svc.RecordMood(context.Background(), types.MoodRequest{
		EmployeeID:  ptr(e.ID),
		MoodScore:   ptr(0.45),
		EmotionType: "tired",
		Source:      "text",
	})
	require.NoError(t, err)
	assert.Equal(t, types.CategoryNeutral, rec.Category)
}

type countingStore struct {
	store.Store
	mu           sync.Mutex
	getEmployees int
}

func (c *countingStore) GetEmployee(ctx context.Context, id int64) (types.Employee, error) {
	c.mu.Lock()
	c.getEmployees++
	c.mu.Unlock()
	return c.Store.GetEmployee(ctx, id)
}

func TestDetectMoodLooksUpEmployeeOnce(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")

	counting := &countingStore{Store: f.store}
	f.svc.store = counting
	f.svc.detectors = detect.NewSet(fixedDetector{types.Detection{
		Label: "calm", Confidence: 1, Source: types.SourceText, Outcome: types.OutcomeOK,
	}})

	_, _, err := f.svc.DetectMood(context.Background(), types.DetectRequest{EmployeeID: ptr(e.ID), Text: "fine"})
	require.NoError(t, err)
	assert.Equal(t, 1, counting.getEmployees)

	_, err = f.svc.RecordMood(context.Background(), types.MoodRequest{
		EmployeeID: ptr(e.ID), MoodScore: ptr(0.5), EmotionType: "neutral", Source: "text",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, counting.getEmployees)
}

func TestRecommendLimit(t *testing.T) {
	f := newFixture(t, Options{})

	n, err := f.svc.RecommendLimit(0, false)
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultConfig().DefaultRecommendations, n)

	n, err = f.svc.RecommendLimit(2, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, bad := range []int{0, -1} {
		_, err = f.svc.RecommendLimit(bad, true)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestRecordMoodTriggersEvaluation(t *testing.T) {
	f := newFixture(t, Options{EvaluateOnRecord: true, HREmail: "hr@example.com"})
	e := f.employee(t, "ada", "core")
	f.moods(t, e.ID, 0.15, 0.15)

	_, err := f.svc.RecordMood(context.Background(), types.MoodRequest{
		EmployeeID:  ptr(e.ID),
		MoodScore:   ptr(0.1),
		EmotionType: "negative",
		Source:      "text",
	})
	require.NoError(t, err)
	f.svc.Wait()

	require.Equal(t, 1, f.notifier.sent())
	assert.Equal(t, types.StatusCritical, f.notifier.payloads[0].Status)
	assert.Equal(t, []string{"hr@example.com"}, f.notifier.recipients[0])
}

func TestDetectMoodExcludesStubs(t *testing.T) {
	f := newFixture(t, Options{})
	f.svc.detectors = detect.NewSet(fixedDetector{types.Detection{
		Label: "happy", Confidence: 1, Source: types.SourceText, Outcome: types.OutcomeOK,
	}})
	e := f.employee(t, "ada", "core")

	rec, mood, err := f.svc.DetectMood(context.Background(), types.DetectRequest{
		EmployeeID: ptr(e.ID),
		Text:       "great day",
		ImageURL:   "http://img",
	})
	require.NoError(t, err)
	assert.Equal(t, []types.Source{types.SourceText}, mood.SourcesUsed)
	assert.InDelta(t, 0.8, rec.MoodScore, 1e-9)
	assert.Equal(t, types.CategoryPositive, rec.Category)
}

func TestDetectMoodErrors(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")
	ctx := context.Background()

	_, _, err := f.svc.DetectMood(ctx, types.DetectRequest{EmployeeID: ptr(e.ID)})
	assert.ErrorIs(t, err, engine.ErrNoInputProvided)

	_, _, err = f.svc.DetectMood(ctx, types.DetectRequest{EmployeeID: ptr(e.ID), AudioURL: "http://a"})
	assert.ErrorIs(t, err, engine.ErrNoValidSignal)

	// No text classifier configured: the failure is logged and skipped.
	_, _, err = f.svc.DetectMood(ctx, types.DetectRequest{EmployeeID: ptr(e.ID), Text: "hi"})
	assert.ErrorIs(t, err, engine.ErrNoValidSignal)
	assert.NotEmpty(t, f.logs.AllEntries())
}

func TestAssess(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")

	a, err := f.svc.Assess(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNormal, a.Status)
	assert.Equal(t, "Insufficient mood data", a.Message)

	f.moods(t, e.ID, 0.3, 0.25, 0.25)
	a, err = f.svc.Assess(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusWarning, a.Status)
	assert.Equal(t, 2, a.ConsecutiveLowDays)

	_, err = f.svc.Assess(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvaluateDispatchesToDeduplicatedRecipients(t *testing.T) {
	f := newFixture(t, Options{HREmail: "hr@example.com", ManagerEmail: "HR@example.com"})
	e, err := f.svc.CreateEmployee(context.Background(), types.Employee{
		Name: "ada", Email: "ada@example.com", Team: "core", ManagerEmail: "boss@example.com",
	})
	require.NoError(t, err)
	f.moods(t, e.ID, 0.1, 0.1, 0.1)

	eval, err := f.svc.Evaluate(context.Background(), e.ID)
	require.NoError(t, err)
	require.True(t, eval.Alerted)
	require.NotNil(t, eval.Delivery)
	assert.True(t, eval.Delivery.Delivered)
	assert.Equal(t, []string{"hr@example.com", "boss@example.com"}, eval.Delivery.Recipients)
	assert.Equal(t, "Immediate HR intervention required", eval.Payload.RecommendedActions[0])
}

func TestEvaluateNormalDoesNotAlert(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")
	f.moods(t, e.ID, 0.7, 0.8)

	eval, err := f.svc.Evaluate(context.Background(), e.ID)
	require.NoError(t, err)
	assert.False(t, eval.Alerted)
	assert.Zero(t, f.notifier.sent())
}

func TestEvaluateSuppressesAlertWithoutTeam(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "")
	f.moods(t, e.ID, 0.1, 0.1, 0.1)

	eval, err := f.svc.Evaluate(context.Background(), e.ID)
	require.NoError(t, err)
	assert.False(t, eval.Alerted)
	assert.Equal(t, types.StatusCritical, eval.Assessment.Status)
	assert.Zero(t, f.notifier.sent())
	assert.Equal(t, logrus.WarnLevel, f.logs.LastEntry().Level)
}

func TestEvaluateDeliveryFailureIsNotAnError(t *testing.T) {
	f := newFixture(t, Options{})
	f.notifier.err = errors.New("smtp down")
	e := f.employee(t, "ada", "core")
	f.moods(t, e.ID, 0.25, 0.25)

	eval, err := f.svc.Evaluate(context.Background(), e.ID)
	require.NoError(t, err)
	assert.True(t, eval.Alerted)
	assert.False(t, eval.Delivery.Delivered)
	assert.Contains(t, eval.Delivery.Failures["recording"], "smtp down")
}

func TestSweep(t *testing.T) {
	f := newFixture(t, Options{SweepWorkers: 2})
	calm := f.employee(t, "calm", "core")
	stressed := f.employee(t, "stressed", "core")
	burnt := f.employee(t, "burnt", "ops")
	f.moods(t, calm.ID, 0.8, 0.7)
	f.moods(t, stressed.ID, 0.25, 0.25)
	f.moods(t, burnt.ID, 0.1, 0.1, 0.1)

	summary, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Evaluated)
	assert.Equal(t, 2, summary.Alerted)
	assert.Zero(t, summary.Failed)
	assert.Len(t, summary.Results, 3)
	assert.Equal(t, 2, f.notifier.sent())
}

func TestRecommend(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.employee(t, "ada", "core")
	ctx := context.Background()

	_, err := f.svc.Recommend(ctx, e.ID, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	f.moods(t, e.ID, 0.2)
	recs, err := f.svc.Recommend(ctx, e.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)

	_, err = store.SeedCatalog(ctx, f.store, config.DefaultTaskCatalog())
	require.NoError(t, err)

	recs, err = f.svc.Recommend(ctx, e.ID, 3)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 3)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].SuitabilityScore, recs[i].SuitabilityScore)
	}
	assert.Equal(t, types.CategoryNegative, recs[0].MoodSuitability)
}

func TestTeamAnalytics(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.employee(t, "a", "core")
	b := f.employee(t, "b", "core")
	c := f.employee(t, "c", "ops")
	f.moods(t, a.ID, 0.8, 0.2)
	f.moods(t, b.ID, 0.5)
	f.moods(t, c.ID, 0.1)

	got, err := f.svc.TeamAnalytics(context.Background(), "core")
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalRecords)
	assert.InDelta(t, 0.5, got.AverageMood, 1e-9)
	assert.Equal(t, map[types.EmotionCategory]int{
		types.CategoryPositive: 1,
		types.CategoryNeutral:  1,
		types.CategoryNegative: 1,
	}, got.MoodDistribution)

	empty, err := f.svc.TeamAnalytics(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRecords)
	assert.Empty(t, empty.MoodDistribution)
}

func TestCreateEmployeeAndTaskValidation(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.svc.CreateEmployee(ctx, types.Employee{Name: "x", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.employee(t, "ada", "core")
	_, err = f.svc.CreateEmployee(ctx, types.Employee{Name: "ada2", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CreateTask(ctx, types.Task{Title: "t", DifficultyLevel: 6, MoodSuitability: types.CategoryNeutral})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.CreateTask(ctx, types.Task{Title: "t", DifficultyLevel: 2, MoodSuitability: "meh"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	task, err := f.svc.CreateTask(ctx, types.Task{Title: "Walk", DifficultyLevel: 1, MoodSuitability: types.CategoryNegative})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	f := newFixture(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.svc.RunSweeper(ctx, 10*time.Millisecond)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clementus360/mood-tracker/types"
)

// Postgres stores everything in a PostgreSQL database through a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func OpenPostgres(ctx context.Context, connString string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			team TEXT NOT NULL DEFAULT '',
			manager_email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			difficulty_level INTEGER NOT NULL,
			mood_suitability TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS mood_records (
			id BIGSERIAL PRIMARY KEY,
			employee_id BIGINT NOT NULL REFERENCES employees(id),
			mood_score DOUBLE PRECISION NOT NULL,
			emotion_type TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
			source TEXT NOT NULL DEFAULT '',
			task_id BIGINT REFERENCES tasks(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_employee_time ON mood_records(employee_id, timestamp)`,
	}
	for _, q := range schemas {
		if _, err := p.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Postgres) CreateEmployee(ctx context.Context, e types.Employee) (types.Employee, error) {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO employees (name, email, team, manager_email) VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Name, e.Email, e.Team, e.ManagerEmail).Scan(&e.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return types.Employee{}, fmt.Errorf("employee %s: %w", e.Email, ErrConflict)
		}
		return types.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

func (p *Postgres) GetEmployee(ctx context.Context, id int64) (types.Employee, error) {
	var e types.Employee
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, email, team, manager_email FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Email, &e.Team, &e.ManagerEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (p *Postgres) ListEmployees(ctx context.Context, team string) ([]types.Employee, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, email, team, manager_email FROM employees
		 WHERE $1 = '' OR team = $1 ORDER BY id`, team)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []types.Employee
	for rows.Next() {
		var e types.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Team, &e.ManagerEmail); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) InsertMood(ctx context.Context, r types.MoodRecord) (types.MoodRecord, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	err := p.pool.QueryRow(ctx,
		`INSERT INTO mood_records (employee_id, mood_score, emotion_type, timestamp, source, task_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		r.EmployeeID, r.MoodScore, string(r.Category), r.Timestamp, string(r.Source), r.TaskID).Scan(&r.ID)
	if err != nil {
		return types.MoodRecord{}, fmt.Errorf("insert mood record: %w", err)
	}
	return r, nil
}

func (p *Postgres) MoodHistory(ctx context.Context, employeeID int64, limit int) ([]types.MoodRecord, error) {
	q := `SELECT id, employee_id, mood_score, emotion_type, timestamp, source, task_id
		FROM mood_records WHERE employee_id = $1 ORDER BY timestamp DESC, id DESC`
	args := []any{employeeID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	records, err := p.queryMoods(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	slices.Reverse(records)
	return records, nil
}

func (p *Postgres) LatestMood(ctx context.Context, employeeID int64) (types.MoodRecord, error) {
	records, err := p.MoodHistory(ctx, employeeID, 1)
	if err != nil {
		return types.MoodRecord{}, err
	}
	if len(records) == 0 {
		return types.MoodRecord{}, fmt.Errorf("mood history for employee %d: %w", employeeID, ErrNotFound)
	}
	return records[0], nil
}

func (p *Postgres) TeamMoods(ctx context.Context, team string) ([]types.MoodRecord, error) {
	return p.queryMoods(ctx,
		`SELECT m.id, m.employee_id, m.mood_score, m.emotion_type, m.timestamp, m.source, m.task_id
		 FROM mood_records m JOIN employees e ON e.id = m.employee_id
		 WHERE e.team = $1 ORDER BY m.timestamp, m.id`, team)
}

func (p *Postgres) queryMoods(ctx context.Context, q string, args ...any) ([]types.MoodRecord, error) {
	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query mood records: %w", err)
	}
	defer rows.Close()

	var out []types.MoodRecord
	for rows.Next() {
		var r types.MoodRecord
		var category, source string
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.MoodScore, &category, &r.Timestamp, &source, &r.TaskID); err != nil {
			return nil, err
		}
		r.Category = types.EmotionCategory(category)
		r.Source = types.Source(source)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateTask(ctx context.Context, t types.Task) (types.Task, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	err := p.pool.QueryRow(ctx,
		`INSERT INTO tasks (title, description, difficulty_level, mood_suitability, tags)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		t.Title, t.Description, t.DifficultyLevel, string(t.MoodSuitability), tags).Scan(&t.ID)
	if err != nil {
		return types.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (p *Postgres) GetTask(ctx context.Context, id int64) (types.Task, error) {
	tasks, err := p.queryTasks(ctx,
		`SELECT id, title, description, difficulty_level, mood_suitability, tags FROM tasks WHERE id = $1`, id)
	if err != nil {
		return types.Task{}, err
	}
	if len(tasks) == 0 {
		return types.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return tasks[0], nil
}

func (p *Postgres) ListTasks(ctx context.Context) ([]types.Task, error) {
	return p.queryTasks(ctx,
		`SELECT id, title, description, difficulty_level, mood_suitability, tags FROM tasks ORDER BY id`)
}

func (p *Postgres) queryTasks(ctx context.Context, q string, args ...any) ([]types.Task, error) {
	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []types.Task
	for rows.Next() {
		var t types.Task
		var suit string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DifficultyLevel, &suit, &t.Tags); err != nil {
			return nil, err
		}
		t.MoodSuitability = types.EmotionCategory(suit)
		out = append(out, t)
	}
	return out, rows.Err()
}

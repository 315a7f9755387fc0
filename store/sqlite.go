package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"clementus360/mood-tracker/types"
)

// SQLite is the embedded default backend.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLite, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			team TEXT,
			manager_email TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			difficulty_level INTEGER,
			mood_suitability TEXT,
			tags TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS mood_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			employee_id INTEGER NOT NULL REFERENCES employees(id),
			mood_score REAL NOT NULL,
			emotion_type TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			source TEXT,
			task_id INTEGER REFERENCES tasks(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_employee_time ON mood_records(employee_id, timestamp)`,
	}
	for _, q := range schemas {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) CreateEmployee(ctx context.Context, e types.Employee) (types.Employee, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (name, email, team, manager_email) VALUES (?, ?, ?, ?)`,
		e.Name, e.Email, e.Team, e.ManagerEmail)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return types.Employee{}, fmt.Errorf("employee %s: %w", e.Email, ErrConflict)
		}
		return types.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	e.ID, err = res.LastInsertId()
	return e, err
}

func (s *SQLite) GetEmployee(ctx context.Context, id int64) (types.Employee, error) {
	var e types.Employee
	var team, manager sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, team, manager_email FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Email, &team, &manager)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	e.Team, e.ManagerEmail = team.String, manager.String
	return e, nil
}

func (s *SQLite) ListEmployees(ctx context.Context, team string) ([]types.Employee, error) {
	q := `SELECT id, name, email, team, manager_email FROM employees`
	var args []any
	if team != "" {
		q += ` WHERE team = ?`
		args = append(args, team)
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []types.Employee
	for rows.Next() {
		var e types.Employee
		var t, manager sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &t, &manager); err != nil {
			return nil, err
		}
		e.Team, e.ManagerEmail = t.String, manager.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLite) InsertMood(ctx context.Context, r types.MoodRecord) (types.MoodRecord, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_records (employee_id, mood_score, emotion_type, timestamp, source, task_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.EmployeeID, r.MoodScore, string(r.Category), r.Timestamp.UTC(), string(r.Source), r.TaskID)
	if err != nil {
		return types.MoodRecord{}, fmt.Errorf("insert mood record: %w", err)
	}
	r.ID, err = res.LastInsertId()
	return r, err
}

const moodColumns = `m.id, m.employee_id, m.mood_score, m.emotion_type, m.timestamp, m.source, m.task_id`

func (s *SQLite) MoodHistory(ctx context.Context, employeeID int64, limit int) ([]types.MoodRecord, error) {
	// newest first so LIMIT keeps the most recent rows, then flipped
	q := `SELECT ` + moodColumns + ` FROM mood_records m WHERE m.employee_id = ? ORDER BY m.timestamp DESC, m.id DESC`
	args := []any{employeeID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	records, err := s.queryMoods(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	slices.Reverse(records)
	return records, nil
}

func (s *SQLite) LatestMood(ctx context.Context, employeeID int64) (types.MoodRecord, error) {
	records, err := s.MoodHistory(ctx, employeeID, 1)
	if err != nil {
		return types.MoodRecord{}, err
	}
	if len(records) == 0 {
		return types.MoodRecord{}, fmt.Errorf("mood history for employee %d: %w", employeeID, ErrNotFound)
	}
	return records[0], nil
}

func (s *SQLite) TeamMoods(ctx context.Context, team string) ([]types.MoodRecord, error) {
	q := `SELECT ` + moodColumns + ` FROM mood_records m
		JOIN employees e ON e.id = m.employee_id
		WHERE e.team = ? ORDER BY m.timestamp, m.id`
	return s.queryMoods(ctx, q, team)
}

func (s *SQLite) queryMoods(ctx context.Context, q string, args ...any) ([]types.MoodRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query mood records: %w", err)
	}
	defer rows.Close()

	var out []types.MoodRecord
	for rows.Next() {
		var r types.MoodRecord
		var category, source string
		var taskID sql.NullInt64
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.MoodScore, &category, &r.Timestamp, &source, &taskID); err != nil {
			return nil, err
		}
		r.Category = types.EmotionCategory(category)
		r.Source = types.Source(source)
		if taskID.Valid {
			id := taskID.Int64
			r.TaskID = &id
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateTask(ctx context.Context, t types.Task) (types.Task, error) {
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return types.Task{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, difficulty_level, mood_suitability, tags) VALUES (?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.DifficultyLevel, string(t.MoodSuitability), string(tags))
	if err != nil {
		return types.Task{}, fmt.Errorf("insert task: %w", err)
	}
	t.ID, err = res.LastInsertId()
	return t, err
}

func (s *SQLite) GetTask(ctx context.Context, id int64) (types.Task, error) {
	tasks, err := s.queryTasks(ctx, `SELECT id, title, description, difficulty_level, mood_suitability, tags FROM tasks WHERE id = ?`, id)
	if err != nil {
		return types.Task{}, err
	}
	if len(tasks) == 0 {
		return types.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return tasks[0], nil
}

func (s *SQLite) ListTasks(ctx context.Context) ([]types.Task, error) {
	return s.queryTasks(ctx, `SELECT id, title, description, difficulty_level, mood_suitability, tags FROM tasks ORDER BY id`)
}

func (s *SQLite) queryTasks(ctx context.Context, q string, args ...any) ([]types.Task, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []types.Task
	for rows.Next() {
		var t types.Task
		var desc, suit, tags sql.NullString
		var difficulty sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &desc, &difficulty, &suit, &tags); err != nil {
			return nil, err
		}
		t.Description = desc.String
		t.DifficultyLevel = int(difficulty.Int64)
		t.MoodSuitability = types.EmotionCategory(suit.String)
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &t.Tags); err != nil {
				return nil, fmt.Errorf("decode tags of task %d: %w", t.ID, err)
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Package store persists employees, mood records and the task catalog.
package store

import (
	"context"
	"errors"
	"fmt"

	"clementus360/mood-tracker/types"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Store is the persistence boundary the wellbeing service reads from.
// MoodHistory returns records oldest first; limit <= 0 means everything.
type Store interface {
	CreateEmployee(ctx context.Context, e types.Employee) (types.Employee, error)
	GetEmployee(ctx context.Context, id int64) (types.Employee, error)
	ListEmployees(ctx context.Context, team string) ([]types.Employee, error)

	InsertMood(ctx context.Context, r types.MoodRecord) (types.MoodRecord, error)
	MoodHistory(ctx context.Context, employeeID int64, limit int) ([]types.MoodRecord, error)
	LatestMood(ctx context.Context, employeeID int64) (types.MoodRecord, error)
	TeamMoods(ctx context.Context, team string) ([]types.MoodRecord, error)

	CreateTask(ctx context.Context, t types.Task) (types.Task, error)
	GetTask(ctx context.Context, id int64) (types.Task, error)
	ListTasks(ctx context.Context) ([]types.Task, error)

	Close() error
}

// SeedCatalog inserts tasks when the catalog is empty. It returns how many were added.
func SeedCatalog(ctx context.Context, s Store, tasks []types.Task) (int, error) {
	existing, err := s.ListTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tasks: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, t := range tasks {
		if _, err := s.CreateTask(ctx, t); err != nil {
			return i, fmt.Errorf("seed task %q: %w", t.Title, err)
		}
	}
	return len(tasks), nil
}

package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/postgrest-go"

	"clementus360/mood-tracker/store"
	"clementus360/mood-tracker/types"
)

func (s *Store) CreateTask(_ context.Context, t types.Task) (types.Task, error) {
	if t.Tags == nil {
		t.Tags = []string{}
	}

	resp, _, err := s.client.From(tasksTable).Insert(t, false, "", "representation", "").Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	var created []types.Task
	if err := json.Unmarshal(resp, &created); err != nil {
		return types.Task{}, fmt.Errorf("failed to parse insert result: %w", err)
	}
	if len(created) == 0 {
		return types.Task{}, fmt.Errorf("no task returned from insert")
	}
	return created[0], nil
}

func (s *Store) GetTask(_ context.Context, id int64) (types.Task, error) {
	resp, _, err := s.client.From(tasksTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to fetch task: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return types.Task{}, fmt.Errorf("failed to decode task data: %w", err)
	}
	if len(tasks) == 0 {
		return types.Task{}, fmt.Errorf("task %d: %w", id, store.ErrNotFound)
	}
	return tasks[0], nil
}

func (s *Store) ListTasks(_ context.Context) ([]types.Task, error) {
	resp, _, err := s.client.From(tasksTable).
		Select("*", "", false).
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task data: %w", err)
	}
	return tasks, nil
}

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

func (s *Store) CreateEmployee(_ context.Context, e types.Employee) (types.Employee, error) {
	resp, _, err := s.client.From(employeesTable).Insert(e, false, "", "representation", "").Execute()
	if err != nil {
		if isDuplicate(err) {
			return types.Employee{}, fmt.Errorf("employee %s: %w", e.Email, store.ErrConflict)
		}
		return types.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}

	var created []types.Employee
	if err := json.Unmarshal(resp, &created); err != nil {
		return types.Employee{}, fmt.Errorf("failed to parse insert result: %w", err)
	}
	if len(created) == 0 {
		return types.Employee{}, fmt.Errorf("no employee returned from insert")
	}
	return created[0], nil
}

func (s *Store) GetEmployee(_ context.Context, id int64) (types.Employee, error) {
	resp, _, err := s.client.From(employeesTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return types.Employee{}, fmt.Errorf("failed to fetch employee: %w", err)
	}

	var employees []types.Employee
	if err := json.Unmarshal(resp, &employees); err != nil {
		return types.Employee{}, fmt.Errorf("failed to decode employee data: %w", err)
	}
	if len(employees) == 0 {
		return types.Employee{}, fmt.Errorf("employee %d: %w", id, store.ErrNotFound)
	}
	return employees[0], nil
}

func (s *Store) ListEmployees(_ context.Context, team string) ([]types.Employee, error) {
	query := s.client.From(employeesTable).Select("*", "", false)
	if team != "" {
		query = query.Eq("team", team)
	}

	resp, _, err := query.Order("id", &postgrest.OrderOpts{Ascending: true}).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	var employees []types.Employee
	if err := json.Unmarshal(resp, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employee data: %w", err)
	}
	return employees, nil
}

package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/supabase-community/postgrest-go"

	"clementus360/mood-tracker/store"
	"clementus360/mood-tracker/types"
)

func (s *Store) InsertMood(_ context.Context, r types.MoodRecord) (types.MoodRecord, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	resp, _, err := s.client.From(moodsTable).Insert(r, false, "", "representation", "").Execute()
	if err != nil {
		return types.MoodRecord{}, fmt.Errorf("failed to insert mood record: %w", err)
	}

	var created []types.MoodRecord
	if err := json.Unmarshal(resp, &created); err != nil {
		return types.MoodRecord{}, fmt.Errorf("failed to parse insert result: %w", err)
	}
	if len(created) == 0 {
		return types.MoodRecord{}, fmt.Errorf("no mood record returned from insert")
	}
	return created[0], nil
}

func (s *Store) MoodHistory(_ context.Context, employeeID int64, limit int) ([]types.MoodRecord, error) {
	query := s.client.From(moodsTable).
		Select("*", "", false).
		Eq("employee_id", strconv.FormatInt(employeeID, 10)).
		Order("timestamp", &postgrest.OrderOpts{Ascending: false}).
		Order("id", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		query = query.Limit(limit, "")
	}

	resp, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mood history: %w", err)
	}

	var records []types.MoodRecord
	if err := json.Unmarshal(resp, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mood records: %w", err)
	}

	// Reverse to chronological order
	slices.Reverse(records)
	return records, nil
}

func (s *Store) LatestMood(ctx context.Context, employeeID int64) (types.MoodRecord, error) {
	records, err := s.MoodHistory(ctx, employeeID, 1)
	if err != nil {
		return types.MoodRecord{}, err
	}
	if len(records) == 0 {
		return types.MoodRecord{}, fmt.Errorf("mood history for employee %d: %w", employeeID, store.ErrNotFound)
	}
	return records[0], nil
}

func (s *Store) TeamMoods(ctx context.Context, team string) ([]types.MoodRecord, error) {
	employees, err := s.ListEmployees(ctx, team)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, nil
	}

	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = strconv.FormatInt(e.ID, 10)
	}

	resp, _, err := s.client.From(moodsTable).
		Select("*", "", false).
		In("employee_id", ids).
		Order("timestamp", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team moods: %w", err)
	}

	var records []types.MoodRecord
	if err := json.Unmarshal(resp, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mood records: %w", err)
	}
	return records, nil
}

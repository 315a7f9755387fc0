// Package supabase implements store.Store on top of a Supabase (PostgREST) project.
package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"

	"clementus360/mood-tracker/store"
)

const (
	employeesTable = "employees"
	moodsTable     = "mood_records"
	tasksTable     = "tasks"
)

// Store talks to the tables created by the sqlite/postgres migrations, exposed through PostgREST.
type Store struct {
	client *supabase.Client
}

var _ store.Store = (*Store)(nil)

func New(apiURL, apiKey string) (*Store, error) {
	if apiURL == "" || apiKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL or SUPABASE_KEY is missing")
	}

	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

func NewWithClient(client *supabase.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	return nil
}

func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

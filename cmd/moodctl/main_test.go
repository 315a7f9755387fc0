package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(context.Background(), args, &out)
	return out.String(), err
}

func TestMoodctl(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "store:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "cli.db") + "\n  seed_catalog: false\nlog_level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")

	out, err := run(t, "--config", cfgPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 5 tasks")

	out, err = run(t, "--config", cfgPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 tasks")

	out, err = run(t, "--config", cfgPath, "sweep")
	require.NoError(t, err)
	assert.Contains(t, out, `"evaluated": 0`)

	_, err = run(t, "--config", cfgPath, "recommend", "--employee", "1")
	assert.Error(t, err)

	_, err = run(t, "--config", cfgPath, "analyze")
	assert.Error(t, err)
}

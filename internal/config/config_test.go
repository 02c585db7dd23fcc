package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Household")
	cfg.Categories.CaseInsensitive = true
	cfg.History.Limit = 50
	cfg.Budget.Currency = "€"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Household")

	assert.Equal(t, "Household", cfg.Tracker.Name)
	assert.Equal(t, "$", cfg.Budget.Currency)
	assert.False(t, cfg.Categories.CaseInsensitive)
	assert.Equal(t, "data/records.csv", cfg.Storage.RecordsFile)
	assert.Equal(t, "data/budget.yaml", cfg.Storage.BudgetFile)
	assert.Equal(t, "logs/activity.csv", cfg.Storage.ActivityLog)
	assert.Equal(t, 0, cfg.History.Limit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "02/01/2006", cfg.DateFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("tracker:\n  name: Mine\ncategories:\n  case_insensitive: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Mine", cfg.Tracker.Name)
	assert.True(t, cfg.Categories.CaseInsensitive)
	assert.Equal(t, "data/records.csv", cfg.Storage.RecordsFile)
	assert.Equal(t, "02/01/2006", cfg.DateFormat)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative history", "history:\n  limit: -1\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"bad date format", "date_format: \"hello\"\n"},
		{"empty records file", "storage:\n  records_file: \"\"\n"},
		{"malformed yaml", "tracker: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Household")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Household")
	assert.Contains(t, contents, "case_insensitive: false")
	assert.Contains(t, contents, "records_file: data/records.csv")
	assert.Contains(t, contents, "format: text")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("NOTION_API_KEY", "nt-key")
	t.Setenv("NOTION_EXPENSES_DB_ID", "db-id")
	t.Setenv("GCS_BACKUP_BUCKET", "")

	path := writeConfigFile(t, `{
		"excluded_keywords": ["Coffee Shop", "Transfer"],
		"ai_model": "gemini-2.5-pro"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gem-key", cfg.GeminiAPIKey)
	assert.Equal(t, "nt-key", cfg.NotionAPIKey)
	assert.Equal(t, "db-id", cfg.NotionDatabaseID)
	assert.Equal(t, []string{"Coffee Shop", "Transfer"}, cfg.ExcludedKeywords)
	assert.Equal(t, "gemini-2.5-pro", cfg.ModelName)
	assert.Equal(t, DefaultExtensions, cfg.Extensions)
	assert.True(t, cfg.RequireFullSuccess)

	// Directory layout is rooted next to the config file and created on load.
	root := filepath.Dir(path)
	assert.Equal(t, filepath.Join(root, "statements"), cfg.InputDir)
	assert.Equal(t, filepath.Join(root, "statements", "archive"), cfg.ArchiveDir)
	assert.DirExists(t, cfg.InputDir)
	assert.DirExists(t, cfg.ArchiveDir)
	assert.DirExists(t, cfg.LogsDir)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `{}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultModelName, cfg.ModelName)
	assert.Empty(t, cfg.ExcludedKeywords)
	assert.True(t, cfg.RequireFullSuccess)
}

func TestLoad_RequireFullSuccessOverride(t *testing.T) {
	path := writeConfigFile(t, `{"require_full_success": false}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.RequireFullSuccess)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate_ReportsAllMissing(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "NOTION_API_KEY")
	assert.Contains(t, err.Error(), "NOTION_EXPENSES_DB_ID")
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{
		GeminiAPIKey:     "a",
		NotionAPIKey:     "b",
		NotionDatabaseID: "c",
	}

	assert.NoError(t, cfg.Validate())
}

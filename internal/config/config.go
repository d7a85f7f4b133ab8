package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultModelName is the extraction model used when config.json doesn't name
// one.
const DefaultModelName = "gemini-2.5-flash"

// DefaultExtensions is the supported extension set for input discovery.
var DefaultExtensions = []string{".txt", ".png", ".jpg", ".jpeg"}

// Config is the explicit configuration object for one pipeline run. It is
// constructed once in main and passed into the component constructors; core
// logic never reads ambient globals.
type Config struct {
	// Credentials, from the environment (optionally via a .env file).
	GeminiAPIKey     string
	NotionAPIKey     string
	NotionDatabaseID string

	// GCSBackupBucket, when set, mirrors archived statements to this bucket.
	GCSBackupBucket string

	// Directories.
	InputDir   string
	ArchiveDir string
	LogsDir    string

	// Processing settings, from the config file.
	ExcludedKeywords   []string
	ModelName          string
	Extensions         []string
	RequireFullSuccess bool
}

// fileConfig is the on-disk shape of config.json.
type fileConfig struct {
	ExcludedKeywords   []string `json:"excluded_keywords"`
	AIModel            string   `json:"ai_model"`
	RequireFullSuccess *bool    `json:"require_full_success,omitempty"`
}

// Load builds a Config from a config.json file, the environment, and the
// standard directory layout rooted next to the config file. A .env file in
// the working directory is loaded first if present. The input, archive, and
// logs directories are created if missing.
func Load(configPath string) (*Config, error) {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	model := fc.AIModel
	if model == "" {
		model = DefaultModelName
	}

	requireFullSuccess := true
	if fc.RequireFullSuccess != nil {
		requireFullSuccess = *fc.RequireFullSuccess
	}

	root := filepath.Dir(configPath)
	cfg := &Config{
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		NotionAPIKey:       os.Getenv("NOTION_API_KEY"),
		NotionDatabaseID:   os.Getenv("NOTION_EXPENSES_DB_ID"),
		GCSBackupBucket:    os.Getenv("GCS_BACKUP_BUCKET"),
		InputDir:           filepath.Join(root, "statements"),
		ArchiveDir:         filepath.Join(root, "statements", "archive"),
		LogsDir:            filepath.Join(root, "logs"),
		ExcludedKeywords:   fc.ExcludedKeywords,
		ModelName:          model,
		Extensions:         DefaultExtensions,
		RequireFullSuccess: requireFullSuccess,
	}

	for _, dir := range []string{cfg.InputDir, cfg.ArchiveDir, cfg.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// Validate reports every missing credential at once.
func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.NotionAPIKey == "" {
		missing = append(missing, "NOTION_API_KEY")
	}
	if c.NotionDatabaseID == "" {
		missing = append(missing, "NOTION_EXPENSES_DB_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

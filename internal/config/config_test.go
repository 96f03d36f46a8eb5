package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_PORT", "LOG_LEVEL", "MONGO_CONNECTION_STRING", "MONGO_DB_NAME", "MONGO_COLLECTION",
	"MONGO_CONNECT_TIMEOUT", "FACTS_BASE_URL", "FACTS_COUNT", "FACTS_TIMEOUT",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "GOOGLE_SHEET_RANGE",
	"REPORT_CRON_SCHEDULE", "TIMEZONE",
}

// clearEnv blanks every key Load reads. Empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), "")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "CMSC335_DB", cfg.MongoDB.DBName)
	assert.Equal(t, "colab", cfg.MongoDB.Collection)
	assert.Equal(t, 10*time.Second, cfg.MongoDB.ConnectTimeout)
	assert.Equal(t, "https://meowfacts.herokuapp.com", cfg.Facts.BaseURL)
	assert.Equal(t, 1, cfg.Facts.Count)
	assert.Equal(t, 15*time.Second, cfg.Facts.Timeout)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "UTC", cfg.Reporting.Timezone)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	contents := "APP_PORT=4040\nMONGO_DB_NAME=labs\nMONGO_COLLECTION=materials\nFACTS_COUNT=3\nMONGO_CONNECT_TIMEOUT=2s\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	// godotenv does not override variables that are already present, even when empty.
	for _, key := range []string{"APP_PORT", "MONGO_DB_NAME", "MONGO_COLLECTION", "FACTS_COUNT", "MONGO_CONNECT_TIMEOUT"} {
		require.NoError(t, os.Unsetenv(key))
	}
	t.Cleanup(func() {
		for _, key := range []string{"APP_PORT", "MONGO_DB_NAME", "MONGO_COLLECTION", "FACTS_COUNT", "MONGO_CONNECT_TIMEOUT"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "4040", cfg.Server.Port)
	assert.Equal(t, "labs", cfg.MongoDB.DBName)
	assert.Equal(t, "materials", cfg.MongoDB.Collection)
	assert.Equal(t, 3, cfg.Facts.Count)
	assert.Equal(t, 2*time.Second, cfg.MongoDB.ConnectTimeout)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	for key, value := range map[string]string{
		"MONGO_CONNECT_TIMEOUT": "soon",
		"FACTS_COUNT":           "one",
		"FACTS_TIMEOUT":         "-",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadPortOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "not-a-port")
	missing := filepath.Join(t.TempDir(), "missing.env")

	_, err := Load(missing, "")
	require.Error(t, err)

	cfg, err := Load(missing, "8081")
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Server.Port)

	t.Setenv("APP_PORT", "4000")
	_, err = Load(missing, "99999")
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "3000"},
		Log:       LogConfig{Level: "info"},
		MongoDB:   MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "db", Collection: "coll"},
		Facts:     FactsConfig{BaseURL: "https://example.com", Count: 1},
		Sheets:    SheetsConfig{Range: "Inventory!A:E"},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	var nilCfg *Config
	require.Error(t, nilCfg.Validate())

	cases := map[string]func(c *Config){
		"empty port":        func(c *Config) { c.Server.Port = "" },
		"non numeric port":  func(c *Config) { c.Server.Port = "http" },
		"port out of range": func(c *Config) { c.Server.Port = "70000" },
		"bad log level":     func(c *Config) { c.Log.Level = "chatty" },
		"empty uri":         func(c *Config) { c.MongoDB.URI = "" },
		"empty db":          func(c *Config) { c.MongoDB.DBName = "" },
		"empty collection":  func(c *Config) { c.MongoDB.Collection = "" },
		"empty facts url":   func(c *Config) { c.Facts.BaseURL = "" },
		"zero facts":        func(c *Config) { c.Facts.Count = 0 },
		"half sheets":       func(c *Config) { c.Sheets.CredentialsPath = "/creds.json" },
		"bad schedule":      func(c *Config) { c.Reporting.CronSchedule = "every day" },
		"bad timezone":      func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSheetsEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.CredentialsPath = "/creds.json"
	cfg.Sheets.SpreadsheetID = "sheet-id"

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Sheets.Enabled())
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	MongoDB   MongoDBConfig
	Facts     FactsConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string
}

// MongoDBConfig holds settings for the materials store.
type MongoDBConfig struct {
	URI        string
	DBName     string
	Collection string
	// ConnectTimeout bounds server selection for each per-request connection.
	ConnectTimeout time.Duration
}

// FactsConfig configures the public fact provider behind /cat.
type FactsConfig struct {
	BaseURL string
	Count   int
	Timeout time.Duration
}

// SheetsConfig contains configuration required to export inventory snapshots to
// Google Sheets. Export is disabled when both fields are empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether the Google Sheets export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance. A non-empty port replaces APP_PORT before
// validation.
func Load(envFile, port string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	connectTimeout, err := getenvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	factsTimeout, err := getenvDuration("FACTS_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	factsCount, err := getenvInt("FACTS_COUNT", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "3000"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:            getenvWithDefault("MONGO_CONNECTION_STRING", "mongodb://localhost:27017"),
			DBName:         getenvWithDefault("MONGO_DB_NAME", "CMSC335_DB"),
			Collection:     getenvWithDefault("MONGO_COLLECTION", "colab"),
			ConnectTimeout: connectTimeout,
		},
		Facts: FactsConfig{
			BaseURL: getenvWithDefault("FACTS_BASE_URL", "https://meowfacts.herokuapp.com"),
			Count:   factsCount,
			Timeout: factsTimeout,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Inventory!A:E"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
	}

	if port != "" {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGO_CONNECTION_STRING must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGO_DB_NAME must not be empty")
	case c.MongoDB.Collection == "":
		return errors.New("MONGO_COLLECTION must not be empty")
	}

	if c.Facts.BaseURL == "" {
		return errors.New("FACTS_BASE_URL must not be empty")
	}
	if c.Facts.Count < 1 {
		return errors.New("FACTS_COUNT must be at least 1")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}
	if c.Sheets.Enabled() && c.Sheets.Range == "" {
		return errors.New("GOOGLE_SHEET_RANGE must not be empty")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if _, err := cron.ParseStandard(c.Reporting.CronSchedule); err != nil {
		return fmt.Errorf("invalid REPORT_CRON_SCHEDULE: %w", err)
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

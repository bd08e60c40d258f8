package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Registry RegistryConfig
	Scenario ScenarioConfig
	Sheets   SheetsConfig
	Planner  PlannerConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// RegistryConfig points at the Batch Registry API.
type RegistryConfig struct {
	BaseURL  string
	APIToken string
}

// ScenarioConfig points at the Scenario/Projection Service API.
type ScenarioConfig struct {
	BaseURL  string
	APIToken string
}

// SheetsConfig configures the optional variance export to Google Sheets.
// Export is disabled when CredentialsPath is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// PlannerConfig holds scheduler and variance settings.
type PlannerConfig struct {
	MaterializeCron   string
	VarianceCron      string
	LookbackDays      int
	VarianceGraceDays int
	FacilityIDs       []string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	lookbackDays, err := getenvInt("PLANNER_LOOKBACK_DAYS", 30)
	if err != nil {
		return nil, err
	}
	graceDays, err := getenvInt("PLANNER_VARIANCE_GRACE_DAYS", 2)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "aquamind_planning"),
		},
		Registry: RegistryConfig{
			BaseURL:  os.Getenv("BATCH_REGISTRY_URL"),
			APIToken: os.Getenv("BATCH_REGISTRY_TOKEN"),
		},
		Scenario: ScenarioConfig{
			BaseURL:  os.Getenv("SCENARIO_SERVICE_URL"),
			APIToken: os.Getenv("SCENARIO_SERVICE_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("VARIANCE_SPREADSHEET_ID"),
		},
		Planner: PlannerConfig{
			MaterializeCron:   getenvWithDefault("PLANNER_MATERIALIZE_CRON", "0 5 * * *"),
			VarianceCron:      getenvWithDefault("PLANNER_VARIANCE_CRON", "0 6 * * 1"),
			LookbackDays:      lookbackDays,
			VarianceGraceDays: graceDays,
			FacilityIDs:       splitList(os.Getenv("PLANNER_FACILITY_IDS")),
		},
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

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Registry.BaseURL == "" {
		return errors.New("BATCH_REGISTRY_URL must be provided")
	}
	if c.Scenario.BaseURL == "" {
		return errors.New("SCENARIO_SERVICE_URL must be provided")
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("VARIANCE_SPREADSHEET_ID must be provided when sheets credentials are set")
	}

	if c.Planner.MaterializeCron == "" {
		return errors.New("PLANNER_MATERIALIZE_CRON must be provided")
	}
	if c.Planner.LookbackDays <= 0 {
		return errors.New("PLANNER_LOOKBACK_DAYS must be positive")
	}
	if c.Planner.VarianceGraceDays < 0 {
		return errors.New("PLANNER_VARIANCE_GRACE_DAYS must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Package config assembles the CLI's runtime configuration from environment
// variables (optionally loaded from a .env file), with per-concern
// sub-configs validated once at startup.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	domaingate "gatekeeper/domain/gate"
	"gatekeeper/internal/errors"
)

// Config represents the complete application configuration. Gate holds the
// statistical thresholds and is normally overridden further by CLI flags;
// History is optional and nil unless a history database URL is set; Report
// and Server hold optional-adapter settings that are off by default.
type Config struct {
	Gate    domaingate.Config
	History *HistoryConfig
	Report  ReportConfig
	Server  ServerConfig
	LogLevel string
}

// HistoryConfig holds the optional Postgres trend-history connection.
type HistoryConfig struct {
	DatabaseURL string `validate:"required"`
}

// ReportConfig holds optional workbook export settings.
type ReportConfig struct {
	XLSXPath string
}

// ServerConfig holds the optional read-only results API.
type ServerConfig struct {
	Enabled bool
	Port    string
}

// Load reads configuration from a .env file (if present) and the process
// environment, and validates it. A missing .env file is not an error; CI
// runners commonly inject everything via the real environment instead.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads env vars from envFile first when
// envFile is non-empty (the CLI's --config flag), falling back to the
// default .env-in-cwd lookup otherwise.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Gate:     loadGateConfig(),
		History:  loadHistoryConfig(),
		Report:   loadReportConfig(),
		Server:   loadServerConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func loadGateConfig() domaingate.Config {
	gc := domaingate.DefaultConfig()

	gc.MSFloor = getEnvFloatOrDefault("GATE_MS_FLOOR", gc.MSFloor)
	gc.PctFloor = getEnvFloatOrDefault("GATE_PCT_FLOOR", gc.PctFloor)
	gc.TailMSFloor = getEnvFloatOrDefault("GATE_TAIL_MS_FLOOR", gc.TailMSFloor)
	gc.TailPctFloor = getEnvFloatOrDefault("GATE_TAIL_PCT_FLOOR", gc.TailPctFloor)
	gc.MinN = getEnvIntOrDefault("GATE_MIN_N", gc.MinN)
	gc.CVMaxPct = getEnvFloatOrDefault("GATE_CV_MAX_PCT", gc.CVMaxPct)
	gc.Alpha = getEnvFloatOrDefault("GATE_ALPHA", gc.Alpha)
	gc.EffectFloorProb = getEnvFloatOrDefault("GATE_EFFECT_FLOOR_PROB", gc.EffectFloorProb)
	gc.PracticalPct = getEnvFloatOrDefault("GATE_PRACTICAL_PCT", gc.PracticalPct)
	gc.PracticalMinMs = getEnvFloatOrDefault("GATE_PRACTICAL_MIN_MS", gc.PracticalMinMs)
	gc.PracticalMaxMs = getEnvFloatOrDefault("GATE_PRACTICAL_MAX_MS", gc.PracticalMaxMs)
	gc.EquivalenceMarginMs = getEnvFloatOrDefault("GATE_EQUIVALENCE_MARGIN_MS", gc.EquivalenceMarginMs)
	gc.BootstrapB = getEnvIntOrDefault("GATE_BOOTSTRAP_B", gc.BootstrapB)
	gc.Seed = int64(getEnvIntOrDefault("GATE_SEED", int(gc.Seed)))
	gc.DirectionalityThreshold = getEnvFloatOrDefault("GATE_DIRECTIONALITY_THRESHOLD", gc.DirectionalityThreshold)
	gc.UseMannWhitney = getEnvBoolOrDefault("GATE_USE_MANN_WHITNEY", gc.UseMannWhitney)
	if mode := os.Getenv("GATE_MODE"); mode != "" {
		gc.Mode = domaingate.Mode(mode)
	}

	return gc
}

func loadHistoryConfig() *HistoryConfig {
	url := os.Getenv("GATE_HISTORY_DATABASE_URL")
	if url == "" {
		return nil
	}
	return &HistoryConfig{DatabaseURL: url}
}

func loadReportConfig() ReportConfig {
	return ReportConfig{
		XLSXPath: getEnvOrDefault("GATE_XLSX_REPORT", ""),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Enabled: getEnvBoolOrDefault("GATE_SERVE", false),
		Port:    getEnvOrDefault("GATE_SERVE_PORT", "8090"),
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Gate.MinN < 2 {
		return errors.ConfigInvalid("GATE_MIN_N must be at least 2")
	}
	if cfg.Gate.Mode != domaingate.ModePR && cfg.Gate.Mode != domaingate.ModeRelease {
		return errors.ConfigInvalid("GATE_MODE must be \"pr\" or \"release\"")
	}
	if cfg.History != nil && cfg.History.DatabaseURL == "" {
		return errors.ConfigInvalid("history database URL is required when history is enabled")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

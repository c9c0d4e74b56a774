// Package config loads cdnguard configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

// State backend names accepted in CDNGUARD_STATE_BACKEND.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds all configuration
type Config struct {
	APIToken string
	ZoneID   string
	Domains  []string

	CheckInterval time.Duration
	ProbeTimeout  time.Duration
	PacingDelay   time.Duration
	AutoToggle    bool

	StateBackend string
	StateFile    string
	Redis        RedisConfig

	AuditDSN    string
	MetricsAddr string
	LogFile     string
}

// RedisConfig holds connection settings for the redis state backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		APIToken:      os.Getenv("CDNGUARD_API_TOKEN"),
		ZoneID:        getEnv("CDNGUARD_ZONE_ID", ""),
		CheckInterval: time.Duration(getEnvInt("CDNGUARD_CHECK_INTERVAL_SEC", 60)) * time.Second,
		ProbeTimeout:  time.Duration(getEnvInt("CDNGUARD_PROBE_TIMEOUT_SEC", 10)) * time.Second,
		PacingDelay:   time.Duration(getEnvInt("CDNGUARD_PACING_DELAY_MS", 2000)) * time.Millisecond,
		AutoToggle:    getEnv("CDNGUARD_AUTO_TOGGLE", "1") == "1",
		StateBackend:  getEnv("CDNGUARD_STATE_BACKEND", BackendFile),
		StateFile:     getEnv("CDNGUARD_STATE_FILE", defaultStateFile()),
		Redis: RedisConfig{
			Addr:     getEnv("CDNGUARD_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("CDNGUARD_REDIS_PASSWORD", ""),
			DB:       getEnvInt("CDNGUARD_REDIS_DB", 0),
		},
		AuditDSN:    getEnv("CDNGUARD_AUDIT_DSN", ""),
		MetricsAddr: getEnv("CDNGUARD_METRICS_ADDR", ""),
		LogFile:     getEnv("CDNGUARD_LOG_FILE", "cdnguard.log"),
	}

	domains, err := loadDomains()
	if err != nil {
		return nil, err
	}
	cfg.Domains = domains

	// Validate required fields
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("%w: CDNGUARD_API_TOKEN", domain.ErrConfigMissing)
	}
	if cfg.StateBackend != BackendFile && cfg.StateBackend != BackendRedis {
		return nil, fmt.Errorf("CDNGUARD_STATE_BACKEND must be %q or %q, got %q", BackendFile, BackendRedis, cfg.StateBackend)
	}

	return cfg, nil
}

// domainsFile is the YAML shape of CDNGUARD_DOMAINS_FILE.
type domainsFile struct {
	Domains []string `yaml:"domains"`
}

// loadDomains reads the watch list. A domains file takes precedence over the
// CDNGUARD_DOMAINS CSV when both are set.
func loadDomains() ([]string, error) {
	if path := os.Getenv("CDNGUARD_DOMAINS_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading domains file: %w", err)
		}
		var df domainsFile
		if err := yaml.Unmarshal(data, &df); err != nil {
			return nil, fmt.Errorf("parsing domains file %s: %w", path, err)
		}
		return normalizeDomains(df.Domains), nil
	}

	raw := os.Getenv("CDNGUARD_DOMAINS")
	if raw == "" {
		return nil, nil
	}
	return normalizeDomains(strings.Split(raw, ",")), nil
}

// normalizeDomains lowercases entries and drops empties and trailing dots so
// the watch list matches Cloudflare record names.
func normalizeDomains(in []string) []string {
	var out []string
	for _, d := range in {
		d = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(d)), ".")
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "cdnguard-state.json"
	}
	return filepath.Join(home, ".cdnguard", "state.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

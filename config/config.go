package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Port    string
	GinMode string

	LogLevel             string
	SlowRequestThreshold time.Duration

	StoreDriver string
	SQLiteDSN   string
	Location    *time.Location

	SeedDemoData           bool
	IntegrityCheckSchedule string

	CORSOrigins []string
}

// Load reads the environment, after loading .env when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	loc, err := time.LoadLocation(getenv("TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	slow, err := getenvDuration("SLOW_REQUEST_THRESHOLD", 200*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	seed, err := getenvBool("SEED_DEMO_DATA", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                   getenv("PORT", "8080"),
		GinMode:                getenv("GIN_MODE", "release"),
		LogLevel:               getenv("LOG_LEVEL", "info"),
		SlowRequestThreshold:   slow,
		StoreDriver:            strings.ToLower(getenv("STORE_DRIVER", StoreMemory)),
		SQLiteDSN:              getenv("SQLITE_DSN", "file::memory:?cache=shared"),
		Location:               loc,
		SeedDemoData:           seed,
		IntegrityCheckSchedule: strings.TrimSpace(os.Getenv("INTEGRITY_CHECK_SCHEDULE")),
		CORSOrigins:            splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}
	if _, set := os.LookupEnv("INTEGRITY_CHECK_SCHEDULE"); !set {
		cfg.IntegrityCheckSchedule = "@every 1h"
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getenvBool(key string, fallback bool) (bool, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

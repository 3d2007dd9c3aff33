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
	UserStoreDB     = "db"
	UserStoreStatic = "static"
)

// Config keeps runtime settings for the server.
type Config struct {
	HTTPAddr       string
	BasePath       string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	UserStore      string
	SeedUsers      bool
	ReportInterval time.Duration
	ReportTime     string
}

// Load reads an optional .env file, then configuration from environment
// variables with sane defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[warn] load .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		HTTPAddr:       get("HTTP_ADDR"),
		BasePath:       get("BASE_PATH"),
		DatabaseDriver: strings.ToLower(get("DATABASE_DRIVER")),
		DatabaseURL:    get("DATABASE_URL"),
		JWTSecret:      get("JWT_SECRET"),
		TokenTTL:       parseHours(get("TOKEN_TTL_HOURS")),
		UserStore:      strings.ToLower(get("USER_STORE")),
		SeedUsers:      parseBool(get("SEED_USERS")),
		ReportInterval: parseHours(get("REPORT_INTERVAL_HOURS")),
		ReportTime:     get("REPORT_TIME"),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/api/v1/taskmanager"
	}
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = "sqlite"
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseDriver == "sqlite" {
		cfg.DatabaseURL = "task_manager.db"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 72 * time.Hour
	}
	if cfg.UserStore == "" {
		cfg.UserStore = UserStoreDB
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return cfg, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required for %s", cfg.DatabaseDriver)
	}
	if cfg.UserStore != UserStoreDB && cfg.UserStore != UserStoreStatic {
		return cfg, fmt.Errorf("unsupported USER_STORE %q", cfg.UserStore)
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

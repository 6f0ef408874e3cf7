package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	petsredis "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/cache/redis"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/pet-adoption-api/internal/platform/temporal"
)

// Config carries environment-driven settings shared by the API, worker and CLI.
type Config struct {
	Port           string
	PostgresDSN    string
	AutoMigrate    bool
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SearchCacheTTL time.Duration
	Temporal       platformtemporal.Config
	Environment    string
	LogLevel       slog.Level
	LogFile        string
	OTLPEndpoint   string
	OTLPInsecure   bool
}

// LoadConfig reads a .env file when present, then environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Port:          envDefault("PORT", "8080"),
		PostgresDSN:   strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		AutoMigrate:   envDefault("AUTO_MIGRATE", "true") != "false",
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Temporal: platformtemporal.Config{
			Address:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
			Namespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
			Disabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		},
		Environment:  envDefault("ENVIRONMENT", "local"),
		LogFile:      strings.TrimSpace(os.Getenv("LOG_FILE")),
		OTLPEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure: isTruthy(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port")
	}
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer")
		}
		cfg.RedisDB = db
	}
	cfg.SearchCacheTTL = petsredis.DefaultTTL
	if raw := strings.TrimSpace(os.Getenv("SEARCH_CACHE_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("SEARCH_CACHE_TTL_SECONDS must be a positive integer")
		}
		cfg.SearchCacheTTL = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
		}
	}
	return cfg, nil
}

// Observability converts the settings for observability.Init.
func (c Config) Observability(serviceName string) platformobservability.Config {
	return platformobservability.Config{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		LogFile:      c.LogFile,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

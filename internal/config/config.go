package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Media     MediaConfig
	Render    RenderConfig
	Fetch     FetchConfig
	Telemetry TelemetryConfig
	LogLevel  slog.Level
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the profile store. URL wins over SQLitePath.
type DatabaseConfig struct {
	URL         string
	SQLitePath  string
	MaxConns    int32
	ConnTimeout time.Duration
	AutoMigrate bool
}

// MediaConfig locates stored blobs. BaseURL switches to the remote media service.
type MediaConfig struct {
	Root    string
	BaseURL string
}

// RenderConfig holds document renderer settings
type RenderConfig struct {
	Engine       string
	FontDir      string
	FontFamilies []string
	ChromePath   string
	Timeout      time.Duration
}

// FetchConfig holds attachment fetcher settings
type FetchConfig struct {
	ImageTimeout time.Duration
	PDFTimeout   time.Duration
	Parallelism  int
}

// TelemetryConfig holds OpenTelemetry settings
type TelemetryConfig struct {
	Stdout      bool
	ServiceName string
}

const (
	EngineCanvas   = "canvas"
	EngineChromedp = "chromedp"

	minFetchTimeout = 15 * time.Second
	maxFetchTimeout = 25 * time.Second
)

// Load loads configuration from environment variables, after an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", ""),
			SQLitePath:  getEnv("SQLITE_PATH", "db.sqlite3"),
			MaxConns:    int32(getIntEnv("DB_MAX_CONNS", 5)),
			ConnTimeout: getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			AutoMigrate: getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		Media: MediaConfig{
			Root:    getEnv("MEDIA_ROOT", "media"),
			BaseURL: strings.TrimRight(getEnv("MEDIA_BASE_URL", ""), "/"),
		},
		Render: RenderConfig{
			Engine:       strings.ToLower(getEnv("RENDER_ENGINE", EngineCanvas)),
			FontDir:      getEnv("FONT_DIR", "fonts"),
			FontFamilies: getStringSliceEnv("FONT_FAMILIES", []string{"DejaVuSans"}),
			ChromePath:   getEnv("CHROME_PATH", ""),
			Timeout:      getDurationEnv("RENDER_TIMEOUT", 60*time.Second),
		},
		Fetch: FetchConfig{
			ImageTimeout: getDurationEnv("FETCH_IMAGE_TIMEOUT", 20*time.Second),
			PDFTimeout:   getDurationEnv("FETCH_PDF_TIMEOUT", 25*time.Second),
			Parallelism:  getIntEnv("FETCH_PARALLELISM", 4),
		},
		Telemetry: TelemetryConfig{
			Stdout:      getBoolEnv("OTEL_STDOUT", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "cv-portfolio"),
		},
		LogLevel: getLevelEnv("LOG_LEVEL", slog.LevelInfo),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects unusable settings and clamps fetch timeouts into 15s..25s.
func (c *Config) Validate() error {
	switch c.Render.Engine {
	case EngineCanvas, EngineChromedp:
	default:
		return fmt.Errorf("RENDER_ENGINE must be %q or %q, got %q", EngineCanvas, EngineChromedp, c.Render.Engine)
	}
	if c.Database.URL == "" && c.Database.SQLitePath == "" {
		return fmt.Errorf("either DATABASE_URL or SQLITE_PATH is required")
	}
	if c.Fetch.Parallelism < 1 {
		c.Fetch.Parallelism = 1
	}
	c.Fetch.ImageTimeout = clampDuration(c.Fetch.ImageTimeout, minFetchTimeout, maxFetchTimeout)
	c.Fetch.PDFTimeout = clampDuration(c.Fetch.PDFTimeout, minFetchTimeout, maxFetchTimeout)
	return nil
}

// UsesPostgres reports whether the profile store is Postgres.
func (c *Config) UsesPostgres() bool {
	return c.Database.URL != ""
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}

func getLevelEnv(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return level
}

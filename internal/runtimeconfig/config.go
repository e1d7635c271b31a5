package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	ErrRedisAddrRequired     = errors.New("sitedraft config: redis address is required")
	ErrDatabaseDSNRequired   = errors.New("sitedraft config: database dsn is required when persistence is enabled")
	ErrDraftTTLInvalid       = errors.New("sitedraft config: draft ttl must be positive")
	ErrBindPortInvalid       = errors.New("sitedraft config: bind port must be in 1..65535")
	ErrInternalTokenRequired = errors.New("sitedraft config: commit internal token is required")
	ErrLoggingLevelInvalid   = errors.New("sitedraft config: logging level is invalid")
	ErrLoggingFormatInvalid  = errors.New("sitedraft config: logging format is invalid")
)

// Config aggregates adapter bindings for the sitedraft module. Fields use
// simple types so host applications can populate them from any source.
type Config struct {
	Redis    RedisConfig
	Database DatabaseConfig
	Assets   AssetsConfig
	Drafts   DraftsConfig
	HTTP     HTTPConfig
	Commit   CommitConfig
	Logging  LoggingConfig
}

// RedisConfig addresses the draft store, the commit lock, and the asset
// metadata keys.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig addresses the relational store projects are committed to.
type DatabaseConfig struct {
	// Enabled gates the bun repository; tests and local wiring run with the
	// in-memory repository instead.
	Enabled bool
	DSN     string
}

// AssetsConfig addresses the public asset host.
type AssetsConfig struct {
	PublicBaseURL string
}

// DraftsConfig carries draft lifecycle policy.
type DraftsConfig struct {
	DefaultTTLSeconds int64
}

// HTTPConfig carries the server binding and browser policy.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// CommitConfig authenticates the internal commit endpoint.
type CommitConfig struct {
	InternalToken string
}

// LoggingConfig mirrors the go-logger provider options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns local-development defaults. The internal token has
// no default; deployments must set it.
func DefaultConfig() Config {
	return Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Database: DatabaseConfig{},
		Drafts: DraftsConfig{
			DefaultTTLSeconds: 86400,
		},
		HTTP: HTTPConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// FromEnv overlays SITEDRAFT_* environment variables onto the defaults.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SITEDRAFT_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SITEDRAFT_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SITEDRAFT_REDIS_DB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = parsed
		}
	}
	if v := os.Getenv("SITEDRAFT_DATABASE_DSN"); v != "" {
		cfg.Database.Enabled = true
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SITEDRAFT_ASSET_BASE_URL"); v != "" {
		cfg.Assets.PublicBaseURL = v
	}
	if v := os.Getenv("SITEDRAFT_DRAFT_TTL_SECONDS"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Drafts.DefaultTTLSeconds = parsed
		}
	}
	if v := os.Getenv("SITEDRAFT_HTTP_HOST"); v != "" {
		cfg.HTTP.Host = v
	}
	if v := os.Getenv("SITEDRAFT_HTTP_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = parsed
		}
	}
	if v := os.Getenv("SITEDRAFT_CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.HTTP.CORSOrigins = origins
	}
	if v := os.Getenv("SITEDRAFT_INTERNAL_TOKEN"); v != "" {
		cfg.Commit.InternalToken = v
	}
	if v := os.Getenv("SITEDRAFT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SITEDRAFT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	return cfg
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return ErrRedisAddrRequired
	}
	if cfg.Database.Enabled && strings.TrimSpace(cfg.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}
	if cfg.Drafts.DefaultTTLSeconds <= 0 {
		return ErrDraftTTLInvalid
	}
	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return ErrBindPortInvalid
	}
	if strings.TrimSpace(cfg.Commit.InternalToken) == "" {
		return ErrInternalTokenRequired
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

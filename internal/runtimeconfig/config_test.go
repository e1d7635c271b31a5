package runtimeconfig

import (
	"errors"
	"testing"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Commit.InternalToken = "secret"
	return cfg
}

func TestValidateDefaultsWithToken(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRequiresRedisAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Addr = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrRedisAddrRequired) {
		t.Fatalf("expected ErrRedisAddrRequired, got %v", err)
	}
}

func TestValidateRequiresDSNWhenPersistenceEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, ErrDatabaseDSNRequired) {
		t.Fatalf("expected ErrDatabaseDSNRequired, got %v", err)
	}
	cfg.Database.DSN = "postgres://sitedraft@localhost/sitedraft"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsBadTTLAndPort(t *testing.T) {
	cfg := validConfig()
	cfg.Drafts.DefaultTTLSeconds = 0
	if err := cfg.Validate(); !errors.Is(err, ErrDraftTTLInvalid) {
		t.Fatalf("expected ErrDraftTTLInvalid, got %v", err)
	}

	cfg = validConfig()
	cfg.HTTP.Port = 70000
	if err := cfg.Validate(); !errors.Is(err, ErrBindPortInvalid) {
		t.Fatalf("expected ErrBindPortInvalid, got %v", err)
	}
}

func TestValidateRequiresInternalToken(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, ErrInternalTokenRequired) {
		t.Fatalf("expected ErrInternalTokenRequired, got %v", err)
	}
}

func TestValidateLoggingOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestFromEnvOverlaysValues(t *testing.T) {
	t.Setenv("SITEDRAFT_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("SITEDRAFT_DATABASE_DSN", "postgres://sitedraft@db/sitedraft")
	t.Setenv("SITEDRAFT_DRAFT_TTL_SECONDS", "7200")
	t.Setenv("SITEDRAFT_CORS_ORIGINS", "https://builder.example, https://admin.example")
	t.Setenv("SITEDRAFT_INTERNAL_TOKEN", "secret")

	cfg := FromEnv()
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("redis addr not overlaid: %q", cfg.Redis.Addr)
	}
	if !cfg.Database.Enabled || cfg.Database.DSN == "" {
		t.Fatalf("dsn should enable persistence: %+v", cfg.Database)
	}
	if cfg.Drafts.DefaultTTLSeconds != 7200 {
		t.Fatalf("ttl not overlaid: %d", cfg.Drafts.DefaultTTLSeconds)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "https://admin.example" {
		t.Fatalf("cors origins not parsed: %+v", cfg.HTTP.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected env config valid, got %v", err)
	}
}

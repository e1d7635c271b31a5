package sitedraft

import "github.com/goliatone/go-sitedraft/internal/runtimeconfig"

var (
	ErrRedisAddrRequired     = runtimeconfig.ErrRedisAddrRequired
	ErrDatabaseDSNRequired   = runtimeconfig.ErrDatabaseDSNRequired
	ErrDraftTTLInvalid       = runtimeconfig.ErrDraftTTLInvalid
	ErrBindPortInvalid       = runtimeconfig.ErrBindPortInvalid
	ErrInternalTokenRequired = runtimeconfig.ErrInternalTokenRequired
	ErrLoggingLevelInvalid   = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid  = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	RedisConfig    = runtimeconfig.RedisConfig
	DatabaseConfig = runtimeconfig.DatabaseConfig
	AssetsConfig   = runtimeconfig.AssetsConfig
	DraftsConfig   = runtimeconfig.DraftsConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	CommitConfig   = runtimeconfig.CommitConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns local-development defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays SITEDRAFT_* environment variables onto the defaults.
func ConfigFromEnv() Config {
	return runtimeconfig.FromEnv()
}

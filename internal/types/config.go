package types

type RunMode string

const (
	// ModeLocal is for development machines; logs are human readable
	ModeLocal RunMode = "local"
	ModeProduction RunMode = "production"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

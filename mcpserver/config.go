package mcpserver

import (
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by LoadServerConfig
const (
	EnvConfigPath = "AMENDMENT13_CONFIG"
	EnvLogLevel   = "AMENDMENT13_LOG_LEVEL"
	EnvServerName = "AMENDMENT13_SERVER_NAME"
	EnvAuditLevel = "AMENDMENT13_AUDIT_LEVEL"
)

// Audit levels understood by the request logger
const (
	AuditMinimal  = "minimal"
	AuditStandard = "standard"
	AuditVerbose  = "verbose"
)

// ServerConfig holds configuration for the MCP tool server
type ServerConfig struct {
	Name       string // Server name announced to clients
	Version    string // Server version announced to clients
	ConfigPath string // Optional exporter configuration file
	LogLevel   string // "debug", "info", "warn" or "error"
	AuditLevel string // "minimal", "standard" or "verbose"
}

// LoadServerConfig fills a configuration from defaults and the environment.
// Values already set on config take precedence over the environment.
func LoadServerConfig(config *ServerConfig) *ServerConfig {
	if config == nil {
		config = &ServerConfig{}
	}

	if config.Name == "" {
		config.Name = envOr(EnvServerName, "amendment13-ocsf")
	}
	if config.Version == "" {
		config.Version = "1.0.0"
	}
	if config.ConfigPath == "" {
		config.ConfigPath = os.Getenv(EnvConfigPath)
	}
	if config.LogLevel == "" {
		config.LogLevel = envOr(EnvLogLevel, "info")
	}
	if config.AuditLevel == "" {
		config.AuditLevel = envOr(EnvAuditLevel, AuditStandard)
	}

	return config
}

// ParseLevel converts a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

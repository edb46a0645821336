package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SamuelRCrider/amendment13-go/core"
	"github.com/SamuelRCrider/amendment13-go/mcpserver"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "amendment13",
	Short: "Export Amendment 13 privacy self-assessment results as OCSF findings",
	Long: `amendment13 converts the results of the Israeli Privacy Protection Law
Amendment 13 self-assessment questionnaire into OCSF 1.6.0 Compliance Findings
(class 2003) and Data Security Findings (class 2006).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Exporter configuration file (YAML); defaults to $"+mcpserver.EnvConfigPath)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error; defaults to $"+mcpserver.EnvLogLevel)
}

// loadSettings resolves the command settings from flags, falling back to
// the environment and the built-in defaults
func loadSettings() *mcpserver.ServerConfig {
	return mcpserver.LoadServerConfig(&mcpserver.ServerConfig{
		Name:       serverName,
		ConfigPath: configPath,
		LogLevel:   logLevel,
		AuditLevel: auditLevel,
	})
}

// newLogger creates the structured logger shared by every command. Logs go
// to stderr so stdout stays a clean JSON document or MCP stream.
func newLogger(settings *mcpserver.ServerConfig) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: mcpserver.ParseLevel(settings.LogLevel)}))
}

// loadConfig loads the exporter configuration named by the settings,
// falling back to the built-in defaults
func loadConfig(settings *mcpserver.ServerConfig, logger *slog.Logger) (*core.Config, error) {
	path := settings.ConfigPath
	if path == "" {
		return core.DefaultConfig(), nil
	}

	cfg, err := core.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	logger.Debug("config loaded",
		slog.String("path", path),
		slog.String("version", cfg.Metadata.Version),
		slog.String("hash", cfg.Metadata.Hash),
	)
	return cfg, nil
}

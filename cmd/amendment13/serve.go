package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SamuelRCrider/amendment13-go/core"
	"github.com/SamuelRCrider/amendment13-go/mcpserver"
)

var (
	serverName string
	auditLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exporter as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverConfig := loadSettings()
		logger := newLogger(serverConfig)

		cfg, err := loadConfig(serverConfig, logger)
		if err != nil {
			return err
		}
		if cfg.Product.Version != "" {
			serverConfig.Version = cfg.Product.Version
		}

		srv := mcpserver.NewServer(core.NewExporter(core.WithConfig(cfg)), serverConfig, cfg.RedactFields, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting mcp server",
			slog.String("name", serverConfig.Name),
			slog.String("audit_level", serverConfig.AuditLevel),
		)
		return srv.Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverName, "name", "", "Server name announced to MCP clients; defaults to $"+mcpserver.EnvServerName)
	serveCmd.Flags().StringVar(&auditLevel, "audit-level", "", "Request audit level: minimal, standard, verbose; defaults to $"+mcpserver.EnvAuditLevel)
	rootCmd.AddCommand(serveCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-gateway/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes the gateway over HTTP:

  GET /api/esearch-summary-history/  one page of summary records
  GET /api/efetch/?ids=...           normalized detail records
  GET /api/health                    liveness check

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default from server.port, 8000)")
	serveCmd.Flags().Bool("gin-debug", false, "run gin in debug mode")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		viper.Set("server.port", port)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if ginDebug, _ := cmd.Flags().GetBool("gin-debug"); !ginDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.Start(ctx, cfg, newClient(cfg.Eutils))
}

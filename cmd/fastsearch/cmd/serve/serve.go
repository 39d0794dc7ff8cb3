package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fastsearch/internal/api/server"
	"fastsearch/internal/app"
	"fastsearch/internal/app/temporal/common"
	"fastsearch/internal/config"
)

var environment string

func init() {
	Cmd.Flags().StringVarP(&environment, "env", "e", "development", "set environment (development|production)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search API server",
	Long: `Run the search API server.

Serves GET /api/v1/search and POST /api/v1/feedback until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}

		zapLogger := common.MustNewLogger(environment != "production")
		defer zapLogger.Sync()

		service, err := app.InitializeSearchService(cfg, zapLogger)
		if err != nil {
			log.Fatalf("failed to initialize search service: %v", err)
		}

		slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		srv := server.NewServer(server.Config{
			Port:         cfg.ServerPort,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
			Environment:  environment,
		}, service, slogger)

		if err := srv.Start(); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("server shutdown failed: %v", err)
		}
	},
}

package worker

import (
	"log"

	"github.com/spf13/cobra"

	"fastsearch/internal/app"
	"fastsearch/internal/app/temporal/common"
	"fastsearch/internal/app/temporal/worker"
	"fastsearch/internal/config"
)

// Cmd represents the worker command
var Cmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the Temporal indexing worker",
	Long: `Run the Temporal indexing worker.

Polls the task queue for IndexVideo and BatchIndex workflows and
executes the pipeline for each.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}

		logger := common.MustNewLogger(true)
		defer logger.Sync()

		activities, err := app.InitializeIndexActivities(cfg, logger)
		if err != nil {
			log.Fatalf("failed to initialize activities: %v", err)
		}

		c, err := common.NewTemporalClient(common.TemporalConfig{
			HostPort:  cfg.TemporalHostPort,
			Namespace: cfg.TemporalNamespace,
			TaskQueue: cfg.TemporalTaskQueue,
		})
		if err != nil {
			log.Fatalf("failed to connect to Temporal: %v", err)
		}
		defer c.Close()

		if err := worker.Run(c, cfg.TemporalTaskQueue, activities); err != nil {
			log.Fatalf("worker failed: %v", err)
		}
	},
}

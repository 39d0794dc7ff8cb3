package index

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fastsearch/internal/app"
	"fastsearch/internal/app/temporal/common"
	"fastsearch/internal/config"
)

var videoIDs []string

func init() {
	Cmd.Flags().StringSliceVarP(&videoIDs, "video", "v", nil, "video id to index (repeatable)")
	Cmd.MarkFlagRequired("video")
}

// Cmd represents the index command
var Cmd = &cobra.Command{
	Use:   "index",
	Short: "Index videos into the vector collection",
	Long: `Index videos into the vector collection.

For each video the pipeline resolves a transcript (human captions when
available, whisper otherwise), merges it into search windows, embeds
them and upserts the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}

		logger := common.MustNewLogger(true)
		defer logger.Sync()

		p, err := app.InitializePipeline(cfg, logger)
		if err != nil {
			log.Fatalf("failed to initialize pipeline: %v", err)
		}

		ctx := context.Background()
		failed := 0
		for _, videoID := range videoIDs {
			summary, err := p.Run(ctx, videoID)
			if err != nil {
				logger.Error("indexing failed", zap.String("video_id", videoID), zap.Error(err))
				failed++
				continue
			}
			logger.Info("indexed",
				zap.String("video_id", summary.VideoID),
				zap.Int("segments", summary.Segments),
				zap.String("kind", string(summary.Kind)),
			)
		}

		if failed > 0 {
			log.Fatalf("%d of %d videos failed", failed, len(videoIDs))
		}
	},
}

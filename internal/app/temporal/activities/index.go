// Package activities implements the worker-side activity code.
package activities

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"
	"go.uber.org/zap"

	"fastsearch/internal/app/pipeline"
	"fastsearch/internal/app/temporal/workflows"
)

// defaultHeartbeatInterval must stay well under the workflow's
// HeartbeatTimeout or long transcriptions get killed mid-run.
const defaultHeartbeatInterval = 30 * time.Second

// PipelineRunner is the indexing pipeline as seen by the activity.
type PipelineRunner interface {
	Run(ctx context.Context, videoID string) (pipeline.RunSummary, error)
}

// IndexActivities bundles the collaborators behind the IndexVideo
// activity.
type IndexActivities struct {
	pipeline          PipelineRunner
	logger            *zap.Logger
	heartbeatInterval time.Duration
	recordHeartbeat   func(ctx context.Context, details ...interface{})
}

func NewIndexActivities(pipeline PipelineRunner, logger *zap.Logger) *IndexActivities {
	return &IndexActivities{
		pipeline:          pipeline,
		logger:            logger,
		heartbeatInterval: defaultHeartbeatInterval,
		recordHeartbeat:   activity.RecordHeartbeat,
	}
}

// IndexVideo runs the pipeline for one video. The run can sit inside
// transcription for many minutes, so liveness is heartbeated on a
// timer for its whole duration.
func (a *IndexActivities) IndexVideo(ctx context.Context, req workflows.IndexVideoRequest) (workflows.IndexVideoResult, error) {
	a.logger.Info("indexing video", zap.String("video_id", req.VideoID))

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(a.heartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				a.recordHeartbeat(ctx, req.VideoID)
			}
		}
	}()

	summary, err := a.pipeline.Run(ctx, req.VideoID)
	if err != nil {
		return workflows.IndexVideoResult{VideoID: req.VideoID}, err
	}

	return workflows.IndexVideoResult{
		VideoID:  summary.VideoID,
		Segments: summary.Segments,
		Kind:     string(summary.Kind),
	}, nil
}

// Package workflows defines the durable indexing workflows.
package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// IndexVideoRequest asks for one video to be (re)indexed.
type IndexVideoRequest struct {
	VideoID string `json:"video_id"`
}

// IndexVideoResult reports one finished indexing run.
type IndexVideoResult struct {
	VideoID  string `json:"video_id"`
	Segments int    `json:"segments"`
	Kind     string `json:"kind"`
}

// BatchIndexRequest indexes a set of videos sequentially. A failed
// video is recorded and does not stop the rest of the batch.
type BatchIndexRequest struct {
	VideoIDs []string `json:"video_ids"`
}

// BatchIndexResult summarizes a batch run.
type BatchIndexResult struct {
	Indexed int      `json:"indexed"`
	Failed  []string `json:"failed"`
}

// IndexVideoWorkflow runs the full pipeline for one video as a single
// retryable activity. Transcription dominates the runtime, hence the
// long timeout and heartbeats.
func IndexVideoWorkflow(ctx workflow.Context, req IndexVideoRequest) (IndexVideoResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting video indexing workflow", "videoId", req.VideoID)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		HeartbeatTimeout:    time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    100 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var result IndexVideoResult
	if err := workflow.ExecuteActivity(ctx, "IndexVideo", req).Get(ctx, &result); err != nil {
		logger.Error("Video indexing failed", "videoId", req.VideoID, "error", err)
		return IndexVideoResult{VideoID: req.VideoID}, err
	}

	logger.Info("Video indexing completed",
		"videoId", result.VideoID,
		"segments", result.Segments,
		"kind", result.Kind,
	)
	return result, nil
}

// BatchIndexWorkflow indexes videos one at a time as child workflows so
// each video keeps its own history and retries.
func BatchIndexWorkflow(ctx workflow.Context, req BatchIndexRequest) (BatchIndexResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting batch indexing workflow", "videos", len(req.VideoIDs))

	var result BatchIndexResult
	for _, videoID := range req.VideoIDs {
		childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
			WorkflowID: "index-video-" + videoID,
		})

		var childResult IndexVideoResult
		err := workflow.ExecuteChildWorkflow(childCtx, IndexVideoWorkflow, IndexVideoRequest{VideoID: videoID}).
			Get(ctx, &childResult)
		if err != nil {
			logger.Error("Batch member failed", "videoId", videoID, "error", err)
			result.Failed = append(result.Failed, videoID)
			continue
		}
		result.Indexed++
	}

	logger.Info("Batch indexing completed", "indexed", result.Indexed, "failed", len(result.Failed))
	return result, nil
}

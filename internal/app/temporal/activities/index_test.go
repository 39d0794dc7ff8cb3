package activities

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
	"go.uber.org/zap"

	"fastsearch/internal/app/model"
	"fastsearch/internal/app/pipeline"
	"fastsearch/internal/app/temporal/workflows"
)

type fakeRunner struct {
	summary pipeline.RunSummary
	err     error
	delay   time.Duration
}

func (f *fakeRunner) Run(ctx context.Context, videoID string) (pipeline.RunSummary, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return pipeline.RunSummary{}, ctx.Err()
		}
	}
	return f.summary, f.err
}

func newActivityEnv(acts *IndexActivities) *testsuite.TestActivityEnvironment {
	suite := &testsuite.WorkflowTestSuite{}
	env := suite.NewTestActivityEnvironment()
	env.RegisterActivity(acts.IndexVideo)
	return env
}

func TestIndexVideoMapsSummary(t *testing.T) {
	runner := &fakeRunner{summary: pipeline.RunSummary{
		VideoID:  "v1",
		Segments: 4,
		Kind:     model.SegmentKindHuman,
	}}
	acts := NewIndexActivities(runner, zap.NewNop())
	env := newActivityEnv(acts)

	val, err := env.ExecuteActivity(acts.IndexVideo, workflows.IndexVideoRequest{VideoID: "v1"})
	require.NoError(t, err)

	var result workflows.IndexVideoResult
	require.NoError(t, val.Get(&result))
	assert.Equal(t, "v1", result.VideoID)
	assert.Equal(t, 4, result.Segments)
	assert.Equal(t, "human", result.Kind)
}

func TestIndexVideoPropagatesRunError(t *testing.T) {
	acts := NewIndexActivities(&fakeRunner{err: errors.New("qdrant unreachable")}, zap.NewNop())
	env := newActivityEnv(acts)

	_, err := env.ExecuteActivity(acts.IndexVideo, workflows.IndexVideoRequest{VideoID: "v1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qdrant unreachable")
}

// A run that outlives the heartbeat interval must keep heartbeating
// until the pipeline returns.
func TestIndexVideoHeartbeatsDuringLongRuns(t *testing.T) {
	runner := &fakeRunner{
		summary: pipeline.RunSummary{VideoID: "v1", Segments: 1, Kind: model.SegmentKindMachine},
		delay:   50 * time.Millisecond,
	}
	acts := NewIndexActivities(runner, zap.NewNop())
	acts.heartbeatInterval = 5 * time.Millisecond

	var beats atomic.Int32
	acts.recordHeartbeat = func(context.Context, ...interface{}) {
		beats.Add(1)
	}

	result, err := acts.IndexVideo(context.Background(), workflows.IndexVideoRequest{VideoID: "v1"})
	require.NoError(t, err)
	assert.Equal(t, "v1", result.VideoID)
	assert.GreaterOrEqual(t, beats.Load(), int32(1))
}

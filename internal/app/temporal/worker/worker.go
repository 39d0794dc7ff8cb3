// Package worker hosts the Temporal worker process.
package worker

import (
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"fastsearch/internal/app/temporal/activities"
	"fastsearch/internal/app/temporal/workflows"
)

// Run registers the indexing workflows and activities and blocks until
// interrupted.
func Run(c client.Client, taskQueue string, index *activities.IndexActivities) error {
	w := worker.New(c, taskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.IndexVideoWorkflow)
	w.RegisterWorkflow(workflows.BatchIndexWorkflow)
	w.RegisterActivityWithOptions(index.IndexVideo, activity.RegisterOptions{Name: "IndexVideo"})

	if err := w.Run(worker.InterruptCh()); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}

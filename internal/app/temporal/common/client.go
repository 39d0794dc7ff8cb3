// Package common holds the Temporal client plumbing shared by the
// worker and the CLI.
package common

import (
	"fmt"

	"go.temporal.io/sdk/client"
)

// TemporalConfig holds Temporal client configuration.
type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string
}

// NewTemporalClient dials the Temporal frontend.
func NewTemporalClient(config TemporalConfig) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  config.HostPort,
		Namespace: config.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Temporal client: %w", err)
	}
	return c, nil
}

package check

import (
	"context"
	"errors"
)

// runningState is the docker container state that counts as alive.
const runningState = "running"

// RunningChecker verifies the monitored container exists and is running.
// It is always evaluated first in a cycle; an Error result short-circuits
// every other check.
type RunningChecker struct {
	inspector Inspector
	container string
}

// NewRunningChecker creates a new liveness checker.
func NewRunningChecker(inspector Inspector, container string) *RunningChecker {
	return &RunningChecker{inspector: inspector, container: container}
}

// Kind returns KindContainerRunning.
func (c *RunningChecker) Kind() Kind {
	return KindContainerRunning
}

// Check queries the container status.
func (c *RunningChecker) Check(ctx context.Context) Result {
	status, err := c.inspector.Status(ctx, c.container)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Errorf(KindContainerRunning, "container not found")
		}
		return Errorf(KindContainerRunning, "container status: %v", err)
	}

	if status != runningState {
		return Errorf(KindContainerRunning, "container not running: %s", status)
	}

	return Healthy(KindContainerRunning, "container is running").
		WithValues(map[string]string{"container_status": status})
}

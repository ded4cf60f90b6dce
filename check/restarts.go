package check

import (
	"context"
	"errors"
	"fmt"
)

// RestartChecker compares the container restart counter to a limit.
type RestartChecker struct {
	inspector Inspector
	container string
	max       int
}

// NewRestartChecker creates a new restart count checker.
func NewRestartChecker(inspector Inspector, container string, max int) *RestartChecker {
	return &RestartChecker{inspector: inspector, container: container, max: max}
}

// Kind returns KindRestartCount.
func (c *RestartChecker) Kind() Kind {
	return KindRestartCount
}

// Check fetches the restart counter and classifies it against the limit.
func (c *RestartChecker) Check(ctx context.Context) Result {
	count, err := c.inspector.RestartCount(ctx, c.container)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Errorf(KindRestartCount, "container not found")
		}
		return Errorf(KindRestartCount, "restart count: %v", err)
	}

	metrics := map[string]float64{"restart_count": float64(count)}

	if count > c.max {
		return Warning(KindRestartCount, fmt.Sprintf("restart count %d exceeds limit %d", count, c.max)).
			WithMetrics(metrics)
	}

	return Healthy(KindRestartCount, fmt.Sprintf("restart count %d within limit", count)).
		WithMetrics(metrics)
}

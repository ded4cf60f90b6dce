package check

import (
	"context"
	"fmt"
	"strings"
)

// defaultLogTail is the fixed size of the log window scanned each cycle.
const defaultLogTail = 1000

// LogChecker scans a bounded tail of the container log for configured
// error patterns.
type LogChecker struct {
	inspector Inspector
	container string
	patterns  []string
	tail      int
}

// NewLogChecker creates a new log scan checker. An empty pattern list
// results in the check reporting Skipped.
func NewLogChecker(inspector Inspector, container string, patterns []string) *LogChecker {
	return &LogChecker{
		inspector: inspector,
		container: container,
		patterns:  patterns,
		tail:      defaultLogTail,
	}
}

// Kind returns KindLogScan.
func (c *LogChecker) Kind() Kind {
	return KindLogScan
}

// Check fetches the log tail and tests each pattern for substring presence.
func (c *LogChecker) Check(ctx context.Context) Result {
	if len(c.patterns) == 0 {
		return Skipped(KindLogScan, "no error patterns configured")
	}

	logs, err := c.inspector.Logs(ctx, c.container, c.tail)
	if err != nil {
		return Errorf(KindLogScan, "container logs: %v", err)
	}

	var found []string
	for _, pattern := range c.patterns {
		if strings.Contains(logs, pattern) {
			found = append(found, pattern)
		}
	}

	metrics := map[string]float64{"error_count": float64(len(found))}

	if len(found) > 0 {
		result := Warning(KindLogScan, fmt.Sprintf("%d error pattern(s) found in logs", len(found))).
			WithMetrics(metrics)
		result.Patterns = found
		return result
	}

	return Healthy(KindLogScan, "no error patterns found").WithMetrics(metrics)
}

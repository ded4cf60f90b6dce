package check

import (
	"context"
	"fmt"
	"time"
)

// Kind identifies one of the supported health check kinds. The String form
// doubles as the check's entry name in a Report.
type Kind int

const (
	// KindContainerRunning verifies the container exists and is running.
	KindContainerRunning Kind = iota
	// KindResourceUsage compares CPU, memory and disk usage to thresholds.
	KindResourceUsage
	// KindAPIHealth probes configured HTTP endpoints.
	KindAPIHealth
	// KindLogScan searches a bounded log tail for error patterns.
	KindLogScan
	// KindRestartCount compares the container restart counter to a limit.
	KindRestartCount
	// KindBrokerHealth queries the RabbitMQ management interface.
	KindBrokerHealth
)

// String returns the report entry name for the kind.
func (k Kind) String() string {
	switch k {
	case KindContainerRunning:
		return "container_running"
	case KindResourceUsage:
		return "resources"
	case KindAPIHealth:
		return "api_health"
	case KindLogScan:
		return "logs"
	case KindRestartCount:
		return "restart_count"
	case KindBrokerHealth:
		return "rabbitmq"
	default:
		return "unknown"
	}
}

// Status represents the outcome classification of a single check.
type Status int

const (
	// StatusHealthy indicates the check passed.
	StatusHealthy Status = iota
	// StatusWarning indicates a threshold was exceeded or a soft failure.
	StatusWarning
	// StatusError indicates the check failed or a collaborator was unreachable.
	StatusError
	// StatusSkipped indicates the check was disabled by configuration.
	// It carries Healthy's severity but is recorded distinctly for reporting.
	StatusSkipped
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Severity returns the aggregation rank of the status. Skipped shares
// Healthy's rank so it never raises or lowers an overall status.
func (s Status) Severity() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusError:
		return 2
	default:
		return 0
	}
}

// MarshalJSON renders the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// statusFromSeverity maps an aggregated severity rank back to a top-level
// status. Skipped is never produced at the top level.
func statusFromSeverity(sev int) Status {
	switch sev {
	case 2:
		return StatusError
	case 1:
		return StatusWarning
	default:
		return StatusHealthy
	}
}

// EndpointProbe is the outcome of probing a single HTTP endpoint.
type EndpointProbe struct {
	URL          string  `json:"url"`
	Status       Status  `json:"status"`
	StatusCode   int     `json:"status_code,omitempty"`
	ResponseTime float64 `json:"response_time"`
	Error        string  `json:"error,omitempty"`
}

// QueueDepth is the message backlog of a single broker queue.
type QueueDepth struct {
	Name     string `json:"name"`
	Messages int64  `json:"messages"`
}

// Result contains the outcome of one health check. A Result is owned by the
// cycle that created it and must not be mutated after it is returned.
type Result struct {
	// Kind identifies which check produced the result.
	Kind Kind `json:"-"`

	// Status is the classification of the outcome.
	Status Status `json:"status"`

	// Message provides additional context about the status.
	Message string `json:"message,omitempty"`

	// Metrics holds numeric measurements produced by the check.
	Metrics map[string]float64 `json:"metrics,omitempty"`

	// Values holds string-valued details produced by the check.
	Values map[string]string `json:"details,omitempty"`

	// Endpoints holds per-endpoint outcomes for the API health check.
	Endpoints []EndpointProbe `json:"endpoints,omitempty"`

	// Queues holds per-queue backlogs for the broker health check.
	Queues []QueueDepth `json:"queues,omitempty"`

	// Patterns lists the configured log patterns that matched, in
	// configuration order.
	Patterns []string `json:"errors_found,omitempty"`
}

// Healthy creates a healthy result.
func Healthy(kind Kind, message string) Result {
	return Result{Kind: kind, Status: StatusHealthy, Message: message}
}

// Warning creates a warning result.
func Warning(kind Kind, message string) Result {
	return Result{Kind: kind, Status: StatusWarning, Message: message}
}

// Skipped creates a skipped result.
func Skipped(kind Kind, message string) Result {
	return Result{Kind: kind, Status: StatusSkipped, Message: message}
}

// Errorf creates an error result with a formatted message.
func Errorf(kind Kind, format string, args ...any) Result {
	return Result{Kind: kind, Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// WithMetrics adds numeric metrics to a result.
func (r Result) WithMetrics(metrics map[string]float64) Result {
	r.Metrics = metrics
	return r
}

// WithValues adds string details to a result.
func (r Result) WithValues(values map[string]string) Result {
	r.Values = values
	return r
}

// Checker is the interface for health checks.
//
// Contract:
// - Errors: Check must not panic and never returns an error; all failure
//   paths resolve into a Result with StatusError and a descriptive message.
// - Context: Check should honor cancellation/deadlines of blocking calls.
type Checker interface {
	// Kind returns the kind of this checker.
	Kind() Kind

	// Check performs the health check and returns the result.
	Check(ctx context.Context) Result
}

// Thresholds holds the numeric limits checks classify against. Values are
// validated once at startup and treated as immutable afterwards.
type Thresholds struct {
	// CPUPercent is the container CPU usage warning limit.
	CPUPercent float64

	// MemoryPercent is the container memory usage warning limit.
	MemoryPercent float64

	// DiskPercent is the host disk usage warning limit.
	DiskPercent float64

	// ResponseTime is the endpoint latency warning limit.
	ResponseTime time.Duration

	// RestartCountMax is the maximum tolerated container restart count.
	RestartCountMax int
}

// Validate checks that all thresholds are non-negative.
func (t Thresholds) Validate() error {
	if t.CPUPercent < 0 {
		return fmt.Errorf("%w: cpu percent %v", ErrInvalidThreshold, t.CPUPercent)
	}
	if t.MemoryPercent < 0 {
		return fmt.Errorf("%w: memory percent %v", ErrInvalidThreshold, t.MemoryPercent)
	}
	if t.DiskPercent < 0 {
		return fmt.Errorf("%w: disk percent %v", ErrInvalidThreshold, t.DiskPercent)
	}
	if t.ResponseTime < 0 {
		return fmt.Errorf("%w: response time %v", ErrInvalidThreshold, t.ResponseTime)
	}
	if t.RestartCountMax < 0 {
		return fmt.Errorf("%w: restart count %v", ErrInvalidThreshold, t.RestartCountMax)
	}
	return nil
}

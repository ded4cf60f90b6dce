package metrics

// EventKind selects how an event is applied to its instrument.
type EventKind int

const (
	// GaugeSet replaces the gauge's current value.
	GaugeSet EventKind = iota
	// CounterIncrement adds the value to a monotonic counter.
	CounterIncrement
	// HistogramObserve records the value into a distribution.
	HistogramObserve
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case GaugeSet:
		return "gauge_set"
	case CounterIncrement:
		return "counter_increment"
	case HistogramObserve:
		return "histogram_observe"
	default:
		return "unknown"
	}
}

// Label keys used across all emitted metrics. The set is fixed; checks
// never invent new label dimensions.
const (
	LabelContainer  = "container_name"
	LabelEndpoint   = "endpoint"
	LabelStatusCode = "status_code"
	LabelErrorType  = "error_type"
	LabelQueue      = "queue"
)

// Metric names, mirroring the exporter's exposition names.
const (
	MetricContainerUp    = "container_up"
	MetricCPUPercent     = "container_cpu_usage_percent"
	MetricMemoryPercent  = "container_memory_usage_percent"
	MetricDiskPercent    = "container_disk_usage_percent"
	MetricAPILatency     = "api_response_time_seconds"
	MetricAPIRequests    = "api_requests_total"
	MetricAPILastCode    = "api_last_status_code"
	MetricAPIHealth      = "api_health_status"
	MetricLogErrors      = "container_errors_total"
	MetricBrokerUp       = "rabbitmq_up"
	MetricBrokerConns    = "rabbitmq_connections"
	MetricBrokerMessages = "rabbitmq_queue_messages"
	MetricInternalErrors = "dockwatch_internal_errors_total"
)

// Event is one metric emission derived from a health report.
type Event struct {
	// Name is the metric name.
	Name string

	// Kind selects the instrument semantics.
	Kind EventKind

	// Value is the recorded value.
	Value float64

	// Labels are the attribute key/values attached to the recording.
	Labels map[string]string
}

package metrics

import (
	"strconv"

	"github.com/jonwraymond/dockwatch/check"
)

// Project maps a completed report to its metric emission events. It is pure
// and deterministic: the same report content always yields the same event
// list. Malformed report content never panics past this function; the
// events built so far are returned together with an internal error counter
// increment.
func Project(r *check.Report) []Event {
	if r == nil {
		return []Event{internalError("projection_failure", "")}
	}

	var events []Event
	container := r.Container

	running, ok := r.Check(check.KindContainerRunning.String())
	if !ok {
		// The liveness entry is a report invariant; its absence means the
		// report is malformed.
		events = append(events, internalError("projection_failure", container))
	} else {
		events = append(events, Event{
			Name:   MetricContainerUp,
			Kind:   GaugeSet,
			Value:  boolValue(running.Status == check.StatusHealthy),
			Labels: map[string]string{LabelContainer: container},
		})
	}

	if resources, ok := r.Check(check.KindResourceUsage.String()); ok {
		events = append(events, projectResources(container, resources)...)
	}

	if api, ok := r.Check(check.KindAPIHealth.String()); ok {
		events = append(events, projectEndpoints(container, api)...)
	}

	if logs, ok := r.Check(check.KindLogScan.String()); ok {
		events = append(events, projectLogMatches(container, logs)...)
	}

	if rabbit, ok := r.Check(check.KindBrokerHealth.String()); ok {
		events = append(events, projectBroker(container, rabbit)...)
	}

	return events
}

// resourceMetrics pairs the report's metric keys with exposition names, in
// emission order.
var resourceMetrics = []struct {
	key  string
	name string
}{
	{"cpu_percent", MetricCPUPercent},
	{"memory_percent", MetricMemoryPercent},
	{"disk_percent", MetricDiskPercent},
}

func projectResources(container string, result check.Result) []Event {
	var events []Event
	for _, m := range resourceMetrics {
		value, ok := result.Metrics[m.key]
		if !ok {
			continue
		}
		events = append(events, Event{
			Name:   m.name,
			Kind:   GaugeSet,
			Value:  value,
			Labels: map[string]string{LabelContainer: container},
		})
	}
	return events
}

func projectEndpoints(container string, result check.Result) []Event {
	var events []Event
	for _, probe := range result.Endpoints {
		labels := map[string]string{
			LabelContainer: container,
			LabelEndpoint:  probe.URL,
		}
		events = append(events,
			Event{
				Name:   MetricAPILatency,
				Kind:   HistogramObserve,
				Value:  probe.ResponseTime,
				Labels: labels,
			},
			Event{
				Name:  MetricAPIRequests,
				Kind:  CounterIncrement,
				Value: 1,
				Labels: map[string]string{
					LabelContainer:  container,
					LabelEndpoint:   probe.URL,
					LabelStatusCode: strconv.Itoa(probe.StatusCode),
				},
			},
			Event{
				Name:   MetricAPILastCode,
				Kind:   GaugeSet,
				Value:  float64(probe.StatusCode),
				Labels: labels,
			},
			Event{
				Name:   MetricAPIHealth,
				Kind:   GaugeSet,
				Value:  boolValue(probe.Status == check.StatusHealthy),
				Labels: labels,
			},
		)
	}
	return events
}

func projectLogMatches(container string, result check.Result) []Event {
	var events []Event
	for _, pattern := range result.Patterns {
		events = append(events, Event{
			Name:  MetricLogErrors,
			Kind:  CounterIncrement,
			Value: 1,
			Labels: map[string]string{
				LabelContainer: container,
				LabelErrorType: pattern,
			},
		})
	}
	return events
}

func projectBroker(container string, result check.Result) []Event {
	if result.Status == check.StatusSkipped {
		return nil
	}

	events := []Event{{
		Name:   MetricBrokerUp,
		Kind:   GaugeSet,
		Value:  boolValue(result.Status == check.StatusHealthy),
		Labels: map[string]string{LabelContainer: container},
	}}

	if result.Status != check.StatusHealthy {
		return events
	}

	if conns, ok := result.Metrics["connections"]; ok {
		events = append(events, Event{
			Name:   MetricBrokerConns,
			Kind:   GaugeSet,
			Value:  conns,
			Labels: map[string]string{LabelContainer: container},
		})
	}

	for _, queue := range result.Queues {
		events = append(events, Event{
			Name:  MetricBrokerMessages,
			Kind:  GaugeSet,
			Value: float64(queue.Messages),
			Labels: map[string]string{
				LabelContainer: container,
				LabelQueue:     queue.Name,
			},
		})
	}

	return events
}

func internalError(errorType, container string) Event {
	labels := map[string]string{LabelErrorType: errorType}
	if container != "" {
		labels[LabelContainer] = container
	}
	return Event{
		Name:   MetricInternalErrors,
		Kind:   CounterIncrement,
		Value:  1,
		Labels: labels,
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

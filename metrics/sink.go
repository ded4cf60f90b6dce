package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Sink receives metric events produced by projecting a report.
//
// Contract:
// - Concurrency: Apply may run while the exporter scrapes; implementations
//   must not produce torn reads.
// - Errors: Apply reports instrument failures but applies every event it
//   can; the caller logs and continues.
type Sink interface {
	// Apply records all events against the sink's instruments.
	Apply(ctx context.Context, events []Event) error
}

// instrument descriptions keyed by metric name.
var descriptions = map[string]string{
	MetricContainerUp:    "Container running status (1 running, 0 stopped)",
	MetricCPUPercent:     "Container CPU usage percentage",
	MetricMemoryPercent:  "Container memory usage percentage",
	MetricDiskPercent:    "Host disk usage percentage",
	MetricAPILatency:     "API endpoint response time in seconds",
	MetricAPIRequests:    "API requests by status code",
	MetricAPILastCode:    "Last HTTP status code per endpoint",
	MetricAPIHealth:      "API endpoint health (1 healthy, 0 otherwise)",
	MetricLogErrors:      "Log error pattern matches",
	MetricBrokerUp:       "RabbitMQ reachability (1 up, 0 down)",
	MetricBrokerConns:    "RabbitMQ connection count",
	MetricBrokerMessages: "RabbitMQ queue message backlog",
	MetricInternalErrors: "Internal monitor errors",
}

// MeterSink applies events to OpenTelemetry instruments created lazily on
// a meter. Instrument state is read by the pull exporter concurrently with
// Apply; the OTel SDK guarantees consistent snapshots.
type MeterSink struct {
	meter metric.Meter

	mu         sync.Mutex
	gauges     map[string]metric.Float64Gauge
	counters   map[string]metric.Float64Counter
	histograms map[string]metric.Float64Histogram
}

// NewMeterSink creates a sink recording into the given meter.
func NewMeterSink(meter metric.Meter) *MeterSink {
	return &MeterSink{
		meter:      meter,
		gauges:     make(map[string]metric.Float64Gauge),
		counters:   make(map[string]metric.Float64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

// Apply records every event it can and joins any instrument errors.
func (s *MeterSink) Apply(ctx context.Context, events []Event) error {
	var errs []error
	for _, event := range events {
		if err := s.apply(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("apply %s: %w", event.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *MeterSink) apply(ctx context.Context, event Event) error {
	opt := metric.WithAttributes(attrsFromLabels(event.Labels)...)

	switch event.Kind {
	case GaugeSet:
		gauge, err := s.gauge(event.Name)
		if err != nil {
			return err
		}
		gauge.Record(ctx, event.Value, opt)
	case CounterIncrement:
		counter, err := s.counter(event.Name)
		if err != nil {
			return err
		}
		counter.Add(ctx, event.Value, opt)
	case HistogramObserve:
		histogram, err := s.histogram(event.Name)
		if err != nil {
			return err
		}
		histogram.Record(ctx, event.Value, opt)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownEventKind, event.Kind)
	}
	return nil
}

func (s *MeterSink) gauge(name string) (metric.Float64Gauge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gauge, ok := s.gauges[name]; ok {
		return gauge, nil
	}
	gauge, err := s.meter.Float64Gauge(name, metric.WithDescription(descriptions[name]))
	if err != nil {
		return nil, err
	}
	s.gauges[name] = gauge
	return gauge, nil
}

func (s *MeterSink) counter(name string) (metric.Float64Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if counter, ok := s.counters[name]; ok {
		return counter, nil
	}
	counter, err := s.meter.Float64Counter(name, metric.WithDescription(descriptions[name]))
	if err != nil {
		return nil, err
	}
	s.counters[name] = counter
	return counter, nil
}

func (s *MeterSink) histogram(name string) (metric.Float64Histogram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if histogram, ok := s.histograms[name]; ok {
		return histogram, nil
	}
	histogram, err := s.meter.Float64Histogram(name,
		metric.WithDescription(descriptions[name]),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	s.histograms[name] = histogram
	return histogram, nil
}

func attrsFromLabels(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}
	return attrs
}

// Ensure MeterSink implements Sink
var _ Sink = (*MeterSink)(nil)

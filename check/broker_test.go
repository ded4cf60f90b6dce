package check

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jonwraymond/dockwatch/broker"
)

// fakeBrokerAPI is a scriptable management API.
type fakeBrokerAPI struct {
	overview    broker.Overview
	overviewErr error
	queues      []broker.Queue
	queuesErr   error
}

func (f *fakeBrokerAPI) Overview(ctx context.Context) (broker.Overview, error) {
	return f.overview, f.overviewErr
}

func (f *fakeBrokerAPI) ListQueues(ctx context.Context) ([]broker.Queue, error) {
	return f.queues, f.queuesErr
}

func TestBrokerChecker_Healthy(t *testing.T) {
	api := &fakeBrokerAPI{
		overview: broker.Overview{
			Version:       "3.12.1",
			ErlangVersion: "25.3",
			Connections:   4,
			Queues:        2,
			Exchanges:     7,
		},
		queues: []broker.Queue{
			{Name: "tasks", Messages: 12},
			{Name: "events", Messages: 0},
		},
	}
	checker := NewBrokerChecker(api)

	if checker.Kind() != KindBrokerHealth {
		t.Errorf("Kind() = %v, want KindBrokerHealth", checker.Kind())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("Status = %v, want StatusHealthy (%s)", result.Status, result.Message)
	}
	if result.Metrics["connections"] != 4 {
		t.Errorf("Metrics[connections] = %v, want 4", result.Metrics["connections"])
	}
	if result.Values["version"] != "3.12.1" {
		t.Errorf("Values[version] = %v, want '3.12.1'", result.Values["version"])
	}
	want := []QueueDepth{{Name: "tasks", Messages: 12}, {Name: "events", Messages: 0}}
	if !reflect.DeepEqual(result.Queues, want) {
		t.Errorf("Queues = %v, want %v", result.Queues, want)
	}
}

func TestBrokerChecker_EmptyQueueListing(t *testing.T) {
	checker := NewBrokerChecker(&fakeBrokerAPI{})

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("Status = %v, want StatusHealthy", result.Status)
	}
	want := []QueueDepth{{Name: "default", Messages: 0}}
	if !reflect.DeepEqual(result.Queues, want) {
		t.Errorf("Queues = %v, want placeholder %v", result.Queues, want)
	}
}

func TestBrokerChecker_OverviewError(t *testing.T) {
	api := &fakeBrokerAPI{overviewErr: errors.New("connection refused")}
	checker := NewBrokerChecker(api)

	result := checker.Check(context.Background())
	if result.Status != StatusError {
		t.Errorf("Status = %v, want StatusError", result.Status)
	}
	if result.Message != "rabbitmq overview: connection refused" {
		t.Errorf("Message = %q, want overview failure", result.Message)
	}
}

func TestBrokerChecker_QueuesError(t *testing.T) {
	api := &fakeBrokerAPI{queuesErr: errors.New("timeout")}
	checker := NewBrokerChecker(api)

	result := checker.Check(context.Background())
	if result.Status != StatusError {
		t.Errorf("Status = %v, want StatusError", result.Status)
	}
	if result.Message != "rabbitmq queues: timeout" {
		t.Errorf("Message = %q, want queues failure", result.Message)
	}
}

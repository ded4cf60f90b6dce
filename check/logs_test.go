package check

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestLogChecker_NoPatterns(t *testing.T) {
	checker := NewLogChecker(&fakeInspector{}, "web", nil)

	if checker.Kind() != KindLogScan {
		t.Errorf("Kind() = %v, want KindLogScan", checker.Kind())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusSkipped {
		t.Errorf("Status = %v, want StatusSkipped", result.Status)
	}
}

func TestLogChecker_Clean(t *testing.T) {
	inspector := &fakeInspector{logs: "starting up\nlistening on :8080\n"}
	checker := NewLogChecker(inspector, "web", []string{"ERROR", "FATAL", "Exception"})

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", result.Status)
	}
	if result.Metrics["error_count"] != 0 {
		t.Errorf("Metrics[error_count] = %v, want 0", result.Metrics["error_count"])
	}
	if result.Patterns != nil {
		t.Errorf("Patterns = %v, want nil", result.Patterns)
	}
}

func TestLogChecker_PatternsFound(t *testing.T) {
	inspector := &fakeInspector{
		logs: "worker crashed\nFATAL: out of memory\ncaught Exception in handler\n",
	}
	checker := NewLogChecker(inspector, "web", []string{"ERROR", "FATAL", "Exception"})

	result := checker.Check(context.Background())
	if result.Status != StatusWarning {
		t.Fatalf("Status = %v, want StatusWarning", result.Status)
	}
	// Matches are reported in configuration order, not log order.
	if !reflect.DeepEqual(result.Patterns, []string{"FATAL", "Exception"}) {
		t.Errorf("Patterns = %v, want [FATAL Exception]", result.Patterns)
	}
	if result.Metrics["error_count"] != 2 {
		t.Errorf("Metrics[error_count] = %v, want 2", result.Metrics["error_count"])
	}
}

func TestLogChecker_CaseSensitive(t *testing.T) {
	inspector := &fakeInspector{logs: "a recoverable error occurred\n"}
	checker := NewLogChecker(inspector, "web", []string{"ERROR"})

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", result.Status)
	}
}

func TestLogChecker_FetchError(t *testing.T) {
	inspector := &fakeInspector{logsErr: errors.New("log stream closed")}
	checker := NewLogChecker(inspector, "web", []string{"ERROR"})

	result := checker.Check(context.Background())
	if result.Status != StatusError {
		t.Errorf("Status = %v, want StatusError", result.Status)
	}
}

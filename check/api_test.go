package check

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func statusServer(t *testing.T, code int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIChecker_Disabled(t *testing.T) {
	checker := NewAPIChecker(APICheckerConfig{Enabled: false})

	result := checker.Check(context.Background())
	if result.Status != StatusSkipped {
		t.Errorf("Status = %v, want StatusSkipped", result.Status)
	}
}

func TestAPIChecker_NoEndpoints(t *testing.T) {
	checker := NewAPIChecker(APICheckerConfig{Enabled: true})

	result := checker.Check(context.Background())
	if result.Status != StatusSkipped {
		t.Errorf("Status = %v, want StatusSkipped", result.Status)
	}
}

func TestAPIChecker_StatusClassification(t *testing.T) {
	tests := []struct {
		name string
		code int
		want Status
	}{
		{"ok", http.StatusOK, StatusHealthy},
		{"rate limited", http.StatusTooManyRequests, StatusWarning},
		{"server error", http.StatusInternalServerError, StatusError},
		{"not found", http.StatusNotFound, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := statusServer(t, tt.code)
			checker := NewAPIChecker(APICheckerConfig{
				Enabled:   true,
				Endpoints: []string{srv.URL},
			})

			result := checker.Check(context.Background())
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v", result.Status, tt.want)
			}
			if len(result.Endpoints) != 1 {
				t.Fatalf("len(Endpoints) = %d, want 1", len(result.Endpoints))
			}
			probe := result.Endpoints[0]
			if probe.StatusCode != tt.code {
				t.Errorf("StatusCode = %d, want %d", probe.StatusCode, tt.code)
			}
			if probe.Status != tt.want {
				t.Errorf("probe Status = %v, want %v", probe.Status, tt.want)
			}
		})
	}
}

func TestAPIChecker_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	checker := NewAPIChecker(APICheckerConfig{
		Enabled:   true,
		Endpoints: []string{url},
		Timeout:   time.Second,
	})

	result := checker.Check(context.Background())
	if result.Status != StatusError {
		t.Fatalf("Status = %v, want StatusError", result.Status)
	}
	probe := result.Endpoints[0]
	if probe.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", probe.StatusCode)
	}
	if probe.Error == "" {
		t.Error("probe Error should carry the transport failure")
	}
}

func TestAPIChecker_SlowResponseDowngraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(30 * time.Millisecond)
	}))
	defer srv.Close()

	checker := NewAPIChecker(APICheckerConfig{
		Enabled:      true,
		Endpoints:    []string{srv.URL},
		ResponseTime: time.Millisecond,
	})

	result := checker.Check(context.Background())
	if result.Status != StatusWarning {
		t.Errorf("Status = %v, want StatusWarning", result.Status)
	}
	if result.Endpoints[0].StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", result.Endpoints[0].StatusCode)
	}
}

func TestAPIChecker_SlowErrorStaysError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(30 * time.Millisecond)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	checker := NewAPIChecker(APICheckerConfig{
		Enabled:      true,
		Endpoints:    []string{srv.URL},
		ResponseTime: time.Millisecond,
	})

	result := checker.Check(context.Background())
	if result.Endpoints[0].Status != StatusError {
		t.Errorf("probe Status = %v, want StatusError", result.Endpoints[0].Status)
	}
}

func TestAPIChecker_AggregatesWorstEndpoint(t *testing.T) {
	healthy := statusServer(t, http.StatusOK)
	failing := statusServer(t, http.StatusInternalServerError)

	checker := NewAPIChecker(APICheckerConfig{
		Enabled:   true,
		Endpoints: []string{healthy.URL, failing.URL},
	})

	result := checker.Check(context.Background())
	if result.Status != StatusError {
		t.Errorf("Status = %v, want StatusError", result.Status)
	}
	if result.Message != "2 endpoint(s) probed" {
		t.Errorf("Message = %q, want '2 endpoint(s) probed'", result.Message)
	}
	if len(result.Endpoints) != 2 {
		t.Fatalf("len(Endpoints) = %d, want 2", len(result.Endpoints))
	}
	if result.Endpoints[0].Status != StatusHealthy {
		t.Errorf("first probe Status = %v, want StatusHealthy", result.Endpoints[0].Status)
	}
	if result.Endpoints[1].Status != StatusError {
		t.Errorf("second probe Status = %v, want StatusError", result.Endpoints[1].Status)
	}
}

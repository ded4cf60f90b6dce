package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonwraymond/dockwatch/check"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func TestServer_HandleHealth(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want 'healthy'", body["status"])
	}
	if body["timestamp"] == "" {
		t.Error("timestamp field missing")
	}
}

func TestServer_HandleReport_BeforeFirstCycle(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	s.handleReport(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "no report yet" {
		t.Errorf("error field = %v, want 'no report yet'", body["error"])
	}
}

func TestServer_HandleReport_ServesLatest(t *testing.T) {
	s := &Server{}
	first := &check.Report{Container: "web", Overall: check.StatusHealthy, Timestamp: time.Now()}
	second := &check.Report{Container: "web", Overall: check.StatusWarning, Timestamp: time.Now()}

	if err := s.Publish(context.Background(), first); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := s.Publish(context.Background(), second); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	rec := httptest.NewRecorder()
	s.handleReport(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["overall_status"] != "warning" {
		t.Errorf("overall_status = %v, want latest report's 'warning'", body["overall_status"])
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv, err := NewServer(freePort(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", srv.Port())
	var resp *http.Response
	for i := 0; i < 20; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil after shutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancellation")
	}
}

func TestNewServer_PortInUse(t *testing.T) {
	port := freePort(t)
	busy, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		t.Skipf("could not occupy port: %v", err)
	}
	defer busy.Close()

	if _, err := NewServer(port); err == nil {
		t.Error("NewServer() error = nil, want bind failure")
	}
}

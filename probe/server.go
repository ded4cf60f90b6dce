package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jonwraymond/dockwatch/check"
)

// Server is the embedded status-probe HTTP server.
//
// Contract:
// - Concurrency: Publish may run while handlers read; the last report is
//   guarded so reads always see a complete report.
type Server struct {
	listener net.Listener
	srv      *http.Server
	port     int

	mu   sync.RWMutex
	last *check.Report
}

// NewServer binds the probe endpoint to the given port.
func NewServer(port int) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("probe: listen on %d: %w", port, err)
	}

	s := &Server{
		listener: listener,
		port:     port,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/report", s.handleReport)
	s.srv = &http.Server{Handler: mux}

	return s, nil
}

// Port returns the bound port.
func (s *Server) Port() int {
	return s.port
}

// Publish stores the report as the latest; it is what /report serves.
func (s *Server) Publish(_ context.Context, r *check.Report) error {
	s.mu.Lock()
	s.last = r
	s.mu.Unlock()
	return nil
}

// Serve blocks until the context is cancelled, then shuts the server down
// gracefully and releases the listener.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")

	if last == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no report yet"})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(last)
}

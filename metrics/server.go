package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig configures the exporter HTTP server.
type ServerConfig struct {
	// BasePort is where the bounded linear port scan starts.
	// Default: 8000
	BasePort int

	// MaxAttempts bounds the scan; ports BasePort..BasePort+MaxAttempts-1
	// are tried in order.
	// Default: 10
	MaxAttempts int

	// Registry is the Prometheus registry whose state is exposed.
	Registry *prometheus.Registry
}

// Server exposes the metric state over a pull-based /metrics endpoint.
// The listener is acquired at construction, so the port found by the scan
// cannot be lost to another process before serving starts.
type Server struct {
	listener net.Listener
	srv      *http.Server
	port     int
}

// NewServer scans for a free port and binds the exporter to it. Scan
// exhaustion returns an error wrapping ErrNoPortAvailable.
func NewServer(config ServerConfig) (*Server, error) {
	if config.BasePort == 0 {
		config.BasePort = 8000
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 10
	}

	listener, port, err := scanPorts(config.BasePort, config.MaxAttempts)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))

	return &Server{
		listener: listener,
		srv:      &http.Server{Handler: mux},
		port:     port,
	}, nil
}

// Port returns the port the scan settled on.
func (s *Server) Port() int {
	return s.port
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

// scanPorts tries each port in [base, base+attempts) and keeps the first
// listener that binds.
func scanPorts(base, attempts int) (net.Listener, int, error) {
	for port := base; port < base+attempts; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			return listener, port, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %d-%d", ErrNoPortAvailable, base, base+attempts-1)
}

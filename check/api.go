package check

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// errorStatusCode is recorded for endpoints that could not be reached at
// all, mirroring a 503 from an absent upstream.
const errorStatusCode = http.StatusServiceUnavailable

// APICheckerConfig configures the API health checker.
type APICheckerConfig struct {
	// Enabled toggles the check; when false the check reports Skipped.
	Enabled bool

	// Endpoints are the URLs probed each cycle, in order.
	Endpoints []string

	// Timeout is the per-request timeout.
	// Default: 5 seconds
	Timeout time.Duration

	// ResponseTime is the latency limit above which a healthy endpoint is
	// downgraded to warning.
	ResponseTime time.Duration

	// Client is the HTTP client used for probes.
	// Default: a plain http.Client
	Client *http.Client
}

// APIChecker probes configured HTTP endpoints and classifies each response.
type APIChecker struct {
	config APICheckerConfig
}

// NewAPIChecker creates a new API health checker.
func NewAPIChecker(config APICheckerConfig) *APIChecker {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Client == nil {
		config.Client = &http.Client{}
	}

	return &APIChecker{config: config}
}

// Kind returns KindAPIHealth.
func (c *APIChecker) Kind() Kind {
	return KindAPIHealth
}

// Check probes every configured endpoint once. The check's status is the
// maximum severity across endpoints; one failing endpoint outweighs any
// number of healthy ones.
func (c *APIChecker) Check(ctx context.Context) Result {
	if !c.config.Enabled {
		return Skipped(KindAPIHealth, "api health check disabled")
	}
	if len(c.config.Endpoints) == 0 {
		return Skipped(KindAPIHealth, "no endpoints configured")
	}

	probes := make([]EndpointProbe, 0, len(c.config.Endpoints))
	severity := 0
	for _, url := range c.config.Endpoints {
		probe := c.probe(ctx, url)
		if probe.Status.Severity() > severity {
			severity = probe.Status.Severity()
		}
		probes = append(probes, probe)
	}

	result := Result{
		Kind:      KindAPIHealth,
		Status:    statusFromSeverity(severity),
		Message:   fmt.Sprintf("%d endpoint(s) probed", len(probes)),
		Endpoints: probes,
	}
	return result
}

// probe issues one request and classifies the outcome. Network failures
// resolve into an Error probe with a synthetic 503 status code.
func (c *APIChecker) probe(ctx context.Context, url string) EndpointProbe {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return EndpointProbe{
			URL:        url,
			Status:     StatusError,
			StatusCode: errorStatusCode,
			Error:      err.Error(),
		}
	}

	resp, err := c.config.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return EndpointProbe{
			URL:          url,
			Status:       StatusError,
			StatusCode:   errorStatusCode,
			ResponseTime: elapsed.Seconds(),
			Error:        err.Error(),
		}
	}
	resp.Body.Close()

	probe := EndpointProbe{
		URL:          url,
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsed.Seconds(),
	}

	switch resp.StatusCode {
	case http.StatusOK:
		probe.Status = StatusHealthy
	case http.StatusTooManyRequests:
		probe.Status = StatusWarning
	default:
		probe.Status = StatusError
	}

	// Slow responses downgrade healthy to warning; errors stay errors.
	if probe.Status == StatusHealthy && c.config.ResponseTime > 0 && elapsed > c.config.ResponseTime {
		probe.Status = StatusWarning
	}

	return probe
}

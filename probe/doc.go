// Package probe runs the embedded status endpoint the monitor exposes
// about itself: a plain liveness answer on /health and the most recent
// health report on /report. The default API health check probes /health,
// giving the monitor a self-test loop.
package probe

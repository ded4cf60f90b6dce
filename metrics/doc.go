// Package metrics turns completed health reports into metric emission
// events and exposes them through a pull-based Prometheus endpoint.
//
// Project is a pure function from a report to an ordered event list; for
// the same report content it always produces the same events, so applying
// a report twice is idempotent at the event level. The Sink applies events
// to OpenTelemetry instruments whose state the exporter serves concurrently
// with scheduler writes.
package metrics

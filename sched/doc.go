// Package sched drives the monitoring loop: one full check pass per
// interval, results handed to the metrics sink and the report publishers.
// Cycle errors are logged and the loop continues; only cancellation stops
// it. The interval sleep is sliced at one second so shutdown signals are
// honored promptly.
package sched

package metrics

import "errors"

var (
	// ErrUnknownEventKind indicates an event with an unrecognized kind.
	ErrUnknownEventKind = errors.New("metrics: unknown event kind")

	// ErrNoPortAvailable indicates the bounded port scan found no free port.
	ErrNoPortAvailable = errors.New("metrics: no available port in range")
)

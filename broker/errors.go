package broker

import "fmt"

// StatusError indicates the management API answered with a non-200 status.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("broker: %s returned status %d", e.Path, e.StatusCode)
}

package check

import "errors"

var (
	// ErrNotFound indicates the monitored container does not exist.
	ErrNotFound = errors.New("check: container not found")

	// ErrInvalidThreshold indicates a threshold value is out of range.
	ErrInvalidThreshold = errors.New("check: invalid threshold")
)

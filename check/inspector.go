package check

import "context"

// ContainerStats is a point-in-time resource snapshot pair for a container.
// CPU fields carry the current and previous readings needed to derive a
// usage percentage from deltas.
type ContainerStats struct {
	CPUTotal     uint64
	PreCPUTotal  uint64
	SystemCPU    uint64
	PreSystemCPU uint64
	MemoryUsage  uint64
	MemoryLimit  uint64
}

// Inspector exposes the container runtime state the checks evaluate.
//
// Contract:
// - Errors: lookups of a missing container return an error wrapping
//   ErrNotFound; any other error is a runtime/transport failure.
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods must honor cancellation/deadlines.
type Inspector interface {
	// Status returns the container's state string, e.g. "running".
	Status(ctx context.Context, name string) (string, error)

	// Stats returns a one-shot resource statistics snapshot pair.
	Stats(ctx context.Context, name string) (ContainerStats, error)

	// Logs returns up to tail lines from the end of the container log.
	Logs(ctx context.Context, name string, tail int) (string, error)

	// RestartCount returns the container's restart counter.
	RestartCount(ctx context.Context, name string) (int, error)
}

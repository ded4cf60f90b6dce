package docker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/docker/docker/api/types"
	dockerclient "github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/jonwraymond/dockwatch/check"
)

// InspectorConfig configures the engine-backed inspector.
type InspectorConfig struct {
	// InspectTTL is how long an inspect result is shared between checks.
	// Default: 2 seconds
	InspectTTL time.Duration
}

// Inspector queries container state through the Docker Engine API.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: missing containers are reported as errors wrapping
//   check.ErrNotFound.
type Inspector struct {
	client dockerclient.ContainerAPIClient
	cache  *inspectCache
}

// NewInspector creates an inspector from the environment (DOCKER_HOST et al).
func NewInspector(config InspectorConfig) (*Inspector, error) {
	cli, err := dockerclient.NewClientWithOpts(dockerclient.FromEnv, dockerclient.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("docker: create client: %w", err)
	}
	return NewInspectorWithClient(cli, config), nil
}

// NewInspectorWithClient creates an inspector around an existing API client.
func NewInspectorWithClient(cli dockerclient.ContainerAPIClient, config InspectorConfig) *Inspector {
	if config.InspectTTL <= 0 {
		config.InspectTTL = 2 * time.Second
	}
	return &Inspector{
		client: cli,
		cache:  newInspectCache(config.InspectTTL),
	}
}

// Status returns the container state string, e.g. "running".
func (i *Inspector) Status(ctx context.Context, name string) (string, error) {
	inspect, err := i.inspect(ctx, name)
	if err != nil {
		return "", err
	}
	if inspect.State == nil {
		return "", fmt.Errorf("docker: container %q has no state", name)
	}
	return inspect.State.Status, nil
}

// Stats returns a one-shot statistics snapshot pair for the container.
func (i *Inspector) Stats(ctx context.Context, name string) (check.ContainerStats, error) {
	resp, err := i.client.ContainerStats(ctx, name, false)
	if err != nil {
		return check.ContainerStats{}, i.wrapNotFound(name, err)
	}
	defer resp.Body.Close()

	var stats types.StatsJSON
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return check.ContainerStats{}, fmt.Errorf("docker: decode stats for %q: %w", name, err)
	}

	return check.ContainerStats{
		CPUTotal:     stats.CPUStats.CPUUsage.TotalUsage,
		PreCPUTotal:  stats.PreCPUStats.CPUUsage.TotalUsage,
		SystemCPU:    stats.CPUStats.SystemUsage,
		PreSystemCPU: stats.PreCPUStats.SystemUsage,
		MemoryUsage:  stats.MemoryStats.Usage,
		MemoryLimit:  stats.MemoryStats.Limit,
	}, nil
}

// Logs returns up to tail lines from the end of the container log, stdout
// and stderr combined.
func (i *Inspector) Logs(ctx context.Context, name string, tail int) (string, error) {
	inspect, err := i.inspect(ctx, name)
	if err != nil {
		return "", err
	}

	reader, err := i.client.ContainerLogs(ctx, name, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       strconv.Itoa(tail),
	})
	if err != nil {
		return "", i.wrapNotFound(name, err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if inspect.Config != nil && inspect.Config.Tty {
		// TTY containers produce a raw stream.
		_, err = io.Copy(&buf, reader)
	} else {
		// Non-TTY streams are multiplexed and need demuxing.
		_, err = stdcopy.StdCopy(&buf, &buf, reader)
	}
	if err != nil {
		return "", fmt.Errorf("docker: read logs for %q: %w", name, err)
	}

	return buf.String(), nil
}

// RestartCount returns the container's restart counter.
func (i *Inspector) RestartCount(ctx context.Context, name string) (int, error) {
	inspect, err := i.inspect(ctx, name)
	if err != nil {
		return 0, err
	}
	return inspect.RestartCount, nil
}

func (i *Inspector) inspect(ctx context.Context, name string) (types.ContainerJSON, error) {
	if cached, ok := i.cache.get(name); ok {
		return cached, nil
	}

	inspect, err := i.client.ContainerInspect(ctx, name)
	if err != nil {
		return types.ContainerJSON{}, i.wrapNotFound(name, err)
	}

	i.cache.set(name, inspect)
	return inspect, nil
}

func (i *Inspector) wrapNotFound(name string, err error) error {
	if dockerclient.IsErrNotFound(err) {
		return fmt.Errorf("docker: container %q: %w", name, check.ErrNotFound)
	}
	return fmt.Errorf("docker: container %q: %w", name, err)
}

// Ensure Inspector implements check.Inspector
var _ check.Inspector = (*Inspector)(nil)

package check

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// ResourceCheckerConfig configures the resource usage checker.
type ResourceCheckerConfig struct {
	// Thresholds are the warning limits for cpu, memory and disk percent.
	Thresholds Thresholds

	// DiskPath is the host filesystem path whose usage is measured.
	// Default: "/"
	DiskPath string

	// DiskPercent measures host disk usage for a path. Overridable in tests.
	// Default: gopsutil disk.UsageWithContext
	DiskPercent func(ctx context.Context, path string) (float64, error)
}

// ResourceChecker compares container CPU and memory usage plus host disk
// usage against configured thresholds.
type ResourceChecker struct {
	inspector Inspector
	container string
	config    ResourceCheckerConfig
}

// NewResourceChecker creates a new resource usage checker.
func NewResourceChecker(inspector Inspector, container string, config ResourceCheckerConfig) *ResourceChecker {
	if config.DiskPath == "" {
		config.DiskPath = "/"
	}
	if config.DiskPercent == nil {
		config.DiskPercent = hostDiskPercent
	}

	return &ResourceChecker{inspector: inspector, container: container, config: config}
}

// Kind returns KindResourceUsage.
func (c *ResourceChecker) Kind() Kind {
	return KindResourceUsage
}

// Check fetches a stats snapshot pair and classifies the derived percentages.
func (c *ResourceChecker) Check(ctx context.Context) Result {
	stats, err := c.inspector.Stats(ctx, c.container)
	if err != nil {
		return Errorf(KindResourceUsage, "container stats: %v", err)
	}

	cpuPercent := CPUPercent(stats)
	memPercent := MemoryPercent(stats)

	diskPercent, err := c.config.DiskPercent(ctx, c.config.DiskPath)
	if err != nil {
		return Errorf(KindResourceUsage, "disk usage: %v", err)
	}

	metrics := map[string]float64{
		"cpu_percent":    round2(cpuPercent),
		"memory_percent": round2(memPercent),
		"disk_percent":   round2(diskPercent),
	}

	var exceeded []string
	th := c.config.Thresholds
	if cpuPercent > th.CPUPercent {
		exceeded = append(exceeded, fmt.Sprintf("cpu %.1f%% > %.1f%%", cpuPercent, th.CPUPercent))
	}
	if memPercent > th.MemoryPercent {
		exceeded = append(exceeded, fmt.Sprintf("memory %.1f%% > %.1f%%", memPercent, th.MemoryPercent))
	}
	if diskPercent > th.DiskPercent {
		exceeded = append(exceeded, fmt.Sprintf("disk %.1f%% > %.1f%%", diskPercent, th.DiskPercent))
	}

	if len(exceeded) > 0 {
		return Warning(KindResourceUsage, "usage exceeds threshold: "+strings.Join(exceeded, ", ")).
			WithMetrics(metrics)
	}

	return Healthy(KindResourceUsage, "resource usage within thresholds").WithMetrics(metrics)
}

// CPUPercent derives the container CPU usage percentage from the snapshot
// pair. A zero system delta yields 0 rather than a division error.
func CPUPercent(s ContainerStats) float64 {
	cpuDelta := float64(s.CPUTotal) - float64(s.PreCPUTotal)
	systemDelta := float64(s.SystemCPU) - float64(s.PreSystemCPU)
	if systemDelta <= 0 {
		return 0
	}
	return (cpuDelta / systemDelta) * 100.0
}

// MemoryPercent derives the container memory usage percentage. A zero limit
// (unlimited container) yields 0.
func MemoryPercent(s ContainerStats) float64 {
	if s.MemoryLimit == 0 {
		return 0
	}
	return float64(s.MemoryUsage) / float64(s.MemoryLimit) * 100.0
}

func hostDiskPercent(ctx context.Context, path string) (float64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return usage.UsedPercent, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

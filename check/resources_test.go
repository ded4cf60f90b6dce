package check

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCPUPercent(t *testing.T) {
	tests := []struct {
		name  string
		stats ContainerStats
		want  float64
	}{
		{
			name: "quarter of system",
			stats: ContainerStats{
				CPUTotal: 150, PreCPUTotal: 100,
				SystemCPU: 1000, PreSystemCPU: 800,
			},
			want: 25.0,
		},
		{
			name: "full usage",
			stats: ContainerStats{
				CPUTotal: 300, PreCPUTotal: 100,
				SystemCPU: 400, PreSystemCPU: 200,
			},
			want: 100.0,
		},
		{
			name: "zero system delta",
			stats: ContainerStats{
				CPUTotal: 150, PreCPUTotal: 100,
				SystemCPU: 800, PreSystemCPU: 800,
			},
			want: 0,
		},
		{
			name: "negative system delta",
			stats: ContainerStats{
				CPUTotal: 150, PreCPUTotal: 100,
				SystemCPU: 700, PreSystemCPU: 800,
			},
			want: 0,
		},
		{
			name:  "zero snapshot",
			stats: ContainerStats{},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CPUPercent(tt.stats); got != tt.want {
				t.Errorf("CPUPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemoryPercent(t *testing.T) {
	tests := []struct {
		name  string
		stats ContainerStats
		want  float64
	}{
		{"partial", ContainerStats{MemoryUsage: 400, MemoryLimit: 1000}, 40.0},
		{"full", ContainerStats{MemoryUsage: 1000, MemoryLimit: 1000}, 100.0},
		{"zero limit", ContainerStats{MemoryUsage: 400, MemoryLimit: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemoryPercent(tt.stats); got != tt.want {
				t.Errorf("MemoryPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func stubDisk(percent float64, err error) func(context.Context, string) (float64, error) {
	return func(context.Context, string) (float64, error) {
		return percent, err
	}
}

func TestResourceChecker_Healthy(t *testing.T) {
	inspector := &fakeInspector{
		stats: ContainerStats{
			CPUTotal: 150, PreCPUTotal: 100,
			SystemCPU: 1000, PreSystemCPU: 800,
			MemoryUsage: 400, MemoryLimit: 1000,
		},
	}
	checker := NewResourceChecker(inspector, "web", ResourceCheckerConfig{
		Thresholds:  Thresholds{CPUPercent: 75, MemoryPercent: 80, DiskPercent: 90},
		DiskPercent: stubDisk(55.5, nil),
	})

	if checker.Kind() != KindResourceUsage {
		t.Errorf("Kind() = %v, want KindResourceUsage", checker.Kind())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("Status = %v, want StatusHealthy (%s)", result.Status, result.Message)
	}
	if result.Metrics["cpu_percent"] != 25.0 {
		t.Errorf("Metrics[cpu_percent] = %v, want 25.0", result.Metrics["cpu_percent"])
	}
	if result.Metrics["memory_percent"] != 40.0 {
		t.Errorf("Metrics[memory_percent] = %v, want 40.0", result.Metrics["memory_percent"])
	}
	if result.Metrics["disk_percent"] != 55.5 {
		t.Errorf("Metrics[disk_percent] = %v, want 55.5", result.Metrics["disk_percent"])
	}
}

func TestResourceChecker_Warning(t *testing.T) {
	tests := []struct {
		name       string
		stats      ContainerStats
		disk       float64
		wantInMsg  string
		thresholds Thresholds
	}{
		{
			name: "cpu exceeds",
			stats: ContainerStats{
				CPUTotal: 300, PreCPUTotal: 100,
				SystemCPU: 400, PreSystemCPU: 200,
				MemoryUsage: 100, MemoryLimit: 1000,
			},
			disk:       10,
			wantInMsg:  "cpu",
			thresholds: Thresholds{CPUPercent: 75, MemoryPercent: 80, DiskPercent: 90},
		},
		{
			name: "memory exceeds",
			stats: ContainerStats{
				SystemCPU: 800, PreSystemCPU: 800,
				MemoryUsage: 900, MemoryLimit: 1000,
			},
			disk:       10,
			wantInMsg:  "memory",
			thresholds: Thresholds{CPUPercent: 75, MemoryPercent: 80, DiskPercent: 90},
		},
		{
			name:       "disk exceeds",
			stats:      ContainerStats{MemoryLimit: 1000},
			disk:       95,
			wantInMsg:  "disk",
			thresholds: Thresholds{CPUPercent: 75, MemoryPercent: 80, DiskPercent: 90},
		},
		{
			name: "at threshold stays healthy boundary strict",
			stats: ContainerStats{
				CPUTotal: 175, PreCPUTotal: 100,
				SystemCPU: 900, PreSystemCPU: 800,
				MemoryUsage: 800, MemoryLimit: 1000,
			},
			disk:       90,
			wantInMsg:  "",
			thresholds: Thresholds{CPUPercent: 75, MemoryPercent: 80, DiskPercent: 90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewResourceChecker(&fakeInspector{stats: tt.stats}, "web", ResourceCheckerConfig{
				Thresholds:  tt.thresholds,
				DiskPercent: stubDisk(tt.disk, nil),
			})

			result := checker.Check(context.Background())
			if tt.wantInMsg == "" {
				if result.Status != StatusHealthy {
					t.Fatalf("Status = %v, want StatusHealthy (%s)", result.Status, result.Message)
				}
				return
			}
			if result.Status != StatusWarning {
				t.Fatalf("Status = %v, want StatusWarning (%s)", result.Status, result.Message)
			}
			if !strings.Contains(result.Message, tt.wantInMsg) {
				t.Errorf("Message = %q, want mention of %q", result.Message, tt.wantInMsg)
			}
		})
	}
}

func TestResourceChecker_StatsError(t *testing.T) {
	inspector := &fakeInspector{statsErr: errors.New("stream closed")}
	checker := NewResourceChecker(inspector, "web", ResourceCheckerConfig{
		DiskPercent: stubDisk(10, nil),
	})

	result := checker.Check(context.Background())
	if result.Status != StatusError {
		t.Errorf("Status = %v, want StatusError", result.Status)
	}
	if !strings.Contains(result.Message, "container stats") {
		t.Errorf("Message = %q, want mention of container stats", result.Message)
	}
}

func TestResourceChecker_DiskError(t *testing.T) {
	checker := NewResourceChecker(&fakeInspector{}, "web", ResourceCheckerConfig{
		DiskPercent: stubDisk(0, errors.New("statfs failed")),
	})

	result := checker.Check(context.Background())
	if result.Status != StatusError {
		t.Errorf("Status = %v, want StatusError", result.Status)
	}
	if !strings.Contains(result.Message, "disk usage") {
		t.Errorf("Message = %q, want mention of disk usage", result.Message)
	}
}

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/jonwraymond/dockwatch/check"
)

var (
	healthyColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	skippedColor = color.New(color.FgCyan)
)

// ConsoleConfig configures the console reporter.
type ConsoleConfig struct {
	// Out is the destination writer.
	// Default: os.Stdout
	Out io.Writer

	// Verbose additionally dumps the full report JSON after the summary.
	Verbose bool
}

// Console renders a per-check summary with colorized statuses.
type Console struct {
	config ConsoleConfig
}

// NewConsole creates a console reporter.
func NewConsole(config ConsoleConfig) *Console {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &Console{config: config}
}

// Publish renders the report to the configured writer.
func (c *Console) Publish(_ context.Context, r *check.Report) error {
	out := c.config.Out

	fmt.Fprintf(out, "%s %s %s\n",
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.Container,
		statusColor(r.Overall).Sprintf("[%s]", r.Overall),
	)

	for _, entry := range r.Checks {
		fmt.Fprintf(out, "  %-18s %s",
			entry.Name,
			statusColor(entry.Result.Status).Sprint(entry.Result.Status),
		)
		if entry.Result.Message != "" {
			fmt.Fprintf(out, "  %s", entry.Result.Message)
		}
		fmt.Fprintln(out)
	}

	if c.config.Verbose {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("report: marshal: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}

	return nil
}

func statusColor(s check.Status) *color.Color {
	switch s {
	case check.StatusHealthy:
		return healthyColor
	case check.StatusWarning:
		return warningColor
	case check.StatusError:
		return errorColor
	default:
		return skippedColor
	}
}

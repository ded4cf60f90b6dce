package sched

import (
	"context"
	"time"

	"github.com/jonwraymond/dockwatch/check"
	"github.com/jonwraymond/dockwatch/metrics"
	"github.com/jonwraymond/dockwatch/observe"
)

// Publisher receives completed reports on the reporting path.
type Publisher interface {
	// Publish hands over one completed report. The report must not be
	// mutated.
	Publish(ctx context.Context, r *check.Report) error
}

// Config configures the scheduler.
type Config struct {
	// Interval is the pause between cycles.
	// Default: 60 seconds
	Interval time.Duration
}

// Scheduler runs the single-threaded monitoring loop. Each cycle builds a
// report, projects it into the sink and publishes it; no check execution
// overlaps between cycles.
type Scheduler struct {
	suite      *check.Suite
	sink       metrics.Sink
	publishers []Publisher
	logger     observe.Logger
	interval   time.Duration
}

// New creates a scheduler.
func New(suite *check.Suite, sink metrics.Sink, logger observe.Logger, config Config, publishers ...Publisher) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = 60 * time.Second
	}

	return &Scheduler{
		suite:      suite,
		sink:       sink,
		publishers: publishers,
		logger:     logger,
		interval:   config.Interval,
	}
}

// Run loops until the context is cancelled, then returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.cycle(ctx)

		if !s.sleep(ctx) {
			return ctx.Err()
		}
	}
}

// cycle runs one full check pass. Emission failures are logged; they never
// stop the loop.
func (s *Scheduler) cycle(ctx context.Context) {
	report := s.suite.Run(ctx)

	s.logger.Info(ctx, "health check cycle complete",
		observe.Field{Key: "overall_status", Value: report.Overall.String()},
		observe.Field{Key: "checks", Value: len(report.Checks)},
	)

	events := metrics.Project(report)
	if err := s.sink.Apply(ctx, events); err != nil {
		s.logger.Error(ctx, "metrics emission failed",
			observe.Field{Key: "error", Value: err.Error()},
		)
	}

	for _, publisher := range s.publishers {
		if err := publisher.Publish(ctx, report); err != nil {
			s.logger.Error(ctx, "report publish failed",
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
	}
}

// sleep waits out the interval in one-second slices, returning false as
// soon as the context is cancelled.
func (s *Scheduler) sleep(ctx context.Context) bool {
	remaining := s.interval
	for remaining > 0 {
		slice := time.Second
		if remaining < slice {
			slice = remaining
		}

		timer := time.NewTimer(slice)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
		remaining -= slice
	}
	return true
}

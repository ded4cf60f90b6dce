package check

import (
	"context"
	"time"
)

// Suite runs all configured checks for one cycle and aggregates their
// results into a Report.
//
// Contract:
// - Ordering: the liveness check always runs first; the remaining checkers
//   run sequentially in the order given to NewSuite.
// - Short-circuit: a liveness Error terminates the cycle with a
//   single-entry report and overall status Error.
// - Aggregation: the overall status is the maximum severity observed;
//   Skipped results never change it, and the overall status is never
//   Skipped.
type Suite struct {
	container string
	liveness  Checker
	checkers  []Checker
	now       func() time.Time
}

// NewSuite creates a suite for one container. liveness must be the
// container running checker; the remaining checkers run after it in the
// given order.
func NewSuite(container string, liveness Checker, checkers ...Checker) *Suite {
	return &Suite{
		container: container,
		liveness:  liveness,
		checkers:  checkers,
		now:       time.Now,
	}
}

// Run executes one full check pass and returns the cycle's report.
func (s *Suite) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: s.now(),
		Container: s.container,
	}

	live := s.liveness.Check(ctx)
	report.Checks = append(report.Checks, Entry{Name: s.liveness.Kind().String(), Result: live})

	if live.Status == StatusError {
		report.Overall = StatusError
		return report
	}

	severity := live.Status.Severity()
	for _, checker := range s.checkers {
		result := checker.Check(ctx)
		report.Checks = append(report.Checks, Entry{Name: checker.Kind().String(), Result: result})
		if result.Status.Severity() > severity {
			severity = result.Status.Severity()
		}
	}

	report.Overall = statusFromSeverity(severity)
	return report
}

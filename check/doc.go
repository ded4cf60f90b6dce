// Package check implements the health evaluation core: the individual
// container health checks, their classification against configured
// thresholds, and the aggregation of per-check results into a single
// report for one monitoring cycle.
//
// # Core Concepts
//
// A Checker evaluates one aspect of container health and returns a Result.
// Results carry a Status (Healthy, Warning, Error, or Skipped) plus any
// numeric metrics and kind-specific detail the check produced. A Suite runs
// all configured checkers sequentially, always starting with the container
// liveness check, and folds the results into a Report.
//
// # Severity and Aggregation
//
// Statuses are totally ordered by severity: Error > Warning > Healthy.
// Skipped carries Healthy's severity so a disabled check can never change
// the overall outcome. If the liveness check reports Error the cycle is
// short-circuited: no further checks run and the report contains only the
// container_running entry.
//
// # Basic Usage
//
//	suite := check.NewSuite("web", check.NewRunningChecker(inspector, "web"),
//	    check.NewResourceChecker(inspector, "web", check.ResourceCheckerConfig{Thresholds: th}),
//	    check.NewRestartChecker(inspector, "web", th.RestartCountMax),
//	)
//	report := suite.Run(ctx)
//	fmt.Println(report.Overall) // healthy, warning or error
//
// Checkers never return errors; every failure path resolves into a Result
// with Error status and a descriptive message.
package check

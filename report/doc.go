// Package report renders completed health reports for humans: a colorized
// console summary and optional timestamped JSON output files.
package report

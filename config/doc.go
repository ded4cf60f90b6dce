// Package config loads and validates monitor configuration from
// environment variables and an optional .env file. Validation failures are
// fatal: the process refuses to start monitoring with bad thresholds or
// ports.
package config

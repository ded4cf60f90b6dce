// Package docker implements the check.Inspector contract on top of the
// Docker Engine API. Inspect results are cached for a short TTL so the
// several checks of one cycle share a single ContainerInspect round trip.
package docker

// Package broker provides a minimal client for the RabbitMQ management
// HTTP API, covering only the overview and queue listing the broker health
// check needs.
package broker

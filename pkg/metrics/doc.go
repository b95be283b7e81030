// Package metrics defines Prometheus metrics for the example application,
// covering uptime, build information, and HTTP request counts.
package metrics

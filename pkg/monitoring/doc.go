// Package monitoring registers provisioned applications as Prometheus
// scrape targets by merging job entries into an existing configuration
// document without disturbing unrelated content.
package monitoring

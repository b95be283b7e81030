// Package health probes a provisioned application's /health endpoint before
// it is wired into the reverse proxy and monitoring.
package health

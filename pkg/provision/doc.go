// Package provision assembles the full derived resource set for onboarding
// an application domain: identifier, nginx site paths, systemd unit,
// certificate locations, and Prometheus scrape job.
package provision

// Package exampleapp implements the reference application deployed by the
// droplet stack: a small HTTP server exposing an index page, a health check,
// and Prometheus metrics, demonstrating the contract every provisioned
// application is expected to satisfy.
package exampleapp

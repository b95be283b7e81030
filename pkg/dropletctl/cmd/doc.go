// Package cmd implements the cobra command tree for the dropletctl CLI,
// including subcommands for identifier sanitization, provisioning plans,
// config rendering, port assignment, Prometheus target registration, and
// shell completion.
package cmd

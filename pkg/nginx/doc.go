// Package nginx computes per-application site configuration paths and
// renders the reverse-proxy server block installed for a provisioned domain.
package nginx

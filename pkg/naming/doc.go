// Package naming derives OS-safe identifiers (usernames) from domain names,
// handling sanitization, truncation, and collision-resistant hash suffixing,
// plus root-domain vs subdomain classification.
package naming

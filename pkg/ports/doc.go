// Package ports checks candidate application ports against the set already
// in use on a droplet and suggests the lowest free port in a range.
package ports

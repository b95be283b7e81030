// Package systemd derives unit names and paths for provisioned applications
// and renders their service unit files.
package systemd

// Package cert computes Let's Encrypt certificate locations and the domain
// argument list handed to certbot for an application domain.
package cert

package cert

import (
	"path"

	"github.com/dropletstack/provision/pkg/naming"
)

const (
	// DefaultLiveDir is where certbot materializes issued certificates.
	DefaultLiveDir = "/etc/letsencrypt/live"

	FullchainFile = "fullchain.pem"
	PrivkeyFile   = "privkey.pem"
)

// Layout locates certificate material on disk. The zero value is not usable;
// call DefaultLayout.
type Layout struct {
	LiveDir string
}

// DefaultLayout returns the standard certbot directory layout.
func DefaultLayout() Layout {
	return Layout{LiveDir: DefaultLiveDir}
}

// LivePath returns the certificate directory for a domain.
//
// Certificates are keyed by the raw domain, not the derived username: the
// directory is certbot's, and certbot names it after the first domain on the
// certificate. Uniqueness therefore follows from domain uniqueness directly,
// unlike the nginx/systemd/Prometheus resources which key on the username.
func (l Layout) LivePath(domain string) string {
	return path.Join(l.LiveDir, domain)
}

// FullchainPath returns the full certificate chain file for a domain.
func (l Layout) FullchainPath(domain string) string {
	return path.Join(l.LivePath(domain), FullchainFile)
}

// PrivkeyPath returns the private key file for a domain.
func (l Layout) PrivkeyPath(domain string) string {
	return path.Join(l.LivePath(domain), PrivkeyFile)
}

// LivePath returns the certificate directory for a domain under the default
// layout.
func LivePath(domain string) string {
	return DefaultLayout().LivePath(domain)
}

// RequestDomains returns the list of domains to request on the certificate.
// Root domains also get their "www." alias; subdomains get only themselves
// (www.api.example.com would be wrong).
func RequestDomains(domain string) []string {
	if naming.IsSubdomain(domain) {
		return []string{domain}
	}
	return []string{domain, "www." + domain}
}

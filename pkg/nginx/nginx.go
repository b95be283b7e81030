package nginx

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/dropletstack/provision/pkg/cert"
	"github.com/dropletstack/provision/pkg/naming"
)

const (
	// DefaultSitesAvailableDir and DefaultSitesEnabledDir follow the
	// Debian/Ubuntu nginx packaging convention.
	DefaultSitesAvailableDir = "/etc/nginx/sites-available"
	DefaultSitesEnabledDir   = "/etc/nginx/sites-enabled"
)

// Layout locates nginx site configuration on disk.
type Layout struct {
	SitesAvailableDir string
	SitesEnabledDir   string
}

// DefaultLayout returns the standard Debian-style nginx layout.
func DefaultLayout() Layout {
	return Layout{
		SitesAvailableDir: DefaultSitesAvailableDir,
		SitesEnabledDir:   DefaultSitesEnabledDir,
	}
}

// ConfigPath returns the sites-available file for a derived username.
// Uniqueness of the path follows from uniqueness of the username.
func (l Layout) ConfigPath(username string) string {
	return path.Join(l.SitesAvailableDir, username)
}

// EnabledPath returns the sites-enabled symlink for a derived username.
func (l Layout) EnabledPath(username string) string {
	return path.Join(l.SitesEnabledDir, username)
}

// ConfigPath returns the sites-available file under the default layout.
func ConfigPath(username string) string {
	return DefaultLayout().ConfigPath(username)
}

// EnabledPath returns the sites-enabled symlink under the default layout.
func EnabledPath(username string) string {
	return DefaultLayout().EnabledPath(username)
}

// Site describes one application's reverse-proxy site.
type Site struct {
	// Domain is the raw domain the site serves.
	Domain string
	// Username is the derived identifier used for file naming.
	Username string
	// Port is the local port the application listens on.
	Port int
}

// ServerNames returns the server_name entries: the domain itself, plus the
// www alias for root domains.
func (s Site) ServerNames() []string {
	return cert.RequestDomains(s.Domain)
}

// serverBlockTemplate renders the HTTP-to-HTTPS redirect block and the TLS
// proxy block for a site. Sprig functions are available, matching how the
// rest of the stack renders templates.
const serverBlockTemplate = `server {
    listen 80;
    listen [::]:80;
    server_name {{ join " " .ServerNames }};

    location /.well-known/acme-challenge/ {
        root /var/www/html;
    }

    location / {
        return 301 https://$host$request_uri;
    }
}

server {
    listen 443 ssl http2;
    listen [::]:443 ssl http2;
    server_name {{ join " " .ServerNames }};

    ssl_certificate {{ .Fullchain }};
    ssl_certificate_key {{ .Privkey }};

    location / {
        proxy_pass http://127.0.0.1:{{ .Port }};
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection 'upgrade';
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
        proxy_cache_bypass $http_upgrade;
    }
}
`

// RenderServerBlock renders the nginx server block for a site. The TLS file
// locations come from the default certbot layout, keyed by the raw domain.
func RenderServerBlock(site Site) (string, error) {
	return RenderServerBlockWith(site, cert.DefaultLayout())
}

// RenderServerBlockWith renders the server block with an explicit certificate
// layout, so non-default live directories end up in the ssl_certificate
// directives.
func RenderServerBlockWith(site Site, certs cert.Layout) (string, error) {
	if site.Domain == "" {
		return "", fmt.Errorf("site domain is empty")
	}
	if site.Username == "" {
		site.Username = naming.DeriveUsername(site.Domain)
	}
	if site.Port <= 0 || site.Port > 65535 {
		return "", fmt.Errorf("invalid site port %d", site.Port)
	}

	tmpl, err := template.New("server-block").Funcs(sprig.FuncMap()).Parse(serverBlockTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse server block template: %w", err)
	}

	ctx := struct {
		Site
		ServerNames []string
		Fullchain   string
		Privkey     string
	}{
		Site:        site,
		ServerNames: site.ServerNames(),
		Fullchain:   certs.FullchainPath(site.Domain),
		Privkey:     certs.PrivkeyPath(site.Domain),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to execute server block template: %w", err)
	}

	return buf.String(), nil
}

// ValidateServerBlock performs a shallow sanity check on rendered output:
// balanced braces and the directives every site needs. It does not replace
// `nginx -t`, which runs on the droplet before reload.
func ValidateServerBlock(rendered string) error {
	if strings.Count(rendered, "{") != strings.Count(rendered, "}") {
		return fmt.Errorf("unbalanced braces in rendered server block")
	}
	for _, directive := range []string{"server_name", "proxy_pass", "ssl_certificate"} {
		if !strings.Contains(rendered, directive) {
			return fmt.Errorf("rendered server block missing %s directive", directive)
		}
	}
	return nil
}

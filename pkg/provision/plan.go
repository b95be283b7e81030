package provision

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dropletstack/provision/pkg/cert"
	"github.com/dropletstack/provision/pkg/monitoring"
	"github.com/dropletstack/provision/pkg/naming"
	"github.com/dropletstack/provision/pkg/nginx"
	"github.com/dropletstack/provision/pkg/systemd"
)

// Plan is the complete derived resource set for one application domain.
// Building a plan touches nothing on disk; the deployment tooling consumes
// it to create accounts, write configs, and request certificates.
type Plan struct {
	// RunID correlates log lines and output from one provisioning run.
	RunID string `json:"runId" yaml:"runId"`

	Domain    string `json:"domain" yaml:"domain"`
	Username  string `json:"username" yaml:"username"`
	Subdomain bool   `json:"subdomain" yaml:"subdomain"`
	Port      int    `json:"port" yaml:"port"`
	Home      string `json:"home" yaml:"home"`

	NginxConfigPath  string `json:"nginxConfigPath" yaml:"nginxConfigPath"`
	NginxEnabledPath string `json:"nginxEnabledPath" yaml:"nginxEnabledPath"`

	ServiceName string `json:"serviceName" yaml:"serviceName"`
	ServicePath string `json:"servicePath" yaml:"servicePath"`

	// CertificateDir is keyed by the raw domain (certbot's convention),
	// unlike the username-keyed resources above.
	CertificateDir     string   `json:"certificateDir" yaml:"certificateDir"`
	CertificateDomains []string `json:"certificateDomains" yaml:"certificateDomains"`

	PrometheusJob string `json:"prometheusJob" yaml:"prometheusJob"`

	// certs is the layout CertificateDir was derived from, kept so rendered
	// ssl_certificate directives agree with the plan.
	certs cert.Layout
}

// Option customizes plan building.
type Option func(*options)

type options struct {
	suffix naming.SuffixFunc
	nginx  nginx.Layout
	certs  cert.Layout
}

// WithSuffixFunc swaps the hash used for identifier suffixing.
func WithSuffixFunc(f naming.SuffixFunc) Option {
	return func(o *options) { o.suffix = f }
}

// WithNginxLayout overrides the nginx directory layout.
func WithNginxLayout(l nginx.Layout) Option {
	return func(o *options) { o.nginx = l }
}

// WithCertLayout overrides the certificate directory layout.
func WithCertLayout(l cert.Layout) Option {
	return func(o *options) { o.certs = l }
}

// Build derives the resource plan for a domain and port. Deterministic apart
// from the RunID: the same domain always yields the same identifier and
// paths.
func Build(domain string, port int, opts ...Option) (Plan, error) {
	if domain == "" {
		return Plan{}, fmt.Errorf("domain is empty")
	}
	if port <= 0 || port > 65535 {
		return Plan{}, fmt.Errorf("invalid port %d", port)
	}

	o := options{
		suffix: naming.MD5Suffix,
		nginx:  nginx.DefaultLayout(),
		certs:  cert.DefaultLayout(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	username := naming.DeriveUsernameWith(domain, o.suffix)

	return Plan{
		RunID:              uuid.NewString(),
		Domain:             domain,
		Username:           username,
		Subdomain:          naming.IsSubdomain(domain),
		Port:               port,
		Home:               systemd.HomeDir(username),
		NginxConfigPath:    o.nginx.ConfigPath(username),
		NginxEnabledPath:   o.nginx.EnabledPath(username),
		ServiceName:        systemd.UnitName(username),
		ServicePath:        systemd.UnitPath(username),
		CertificateDir:     o.certs.LivePath(domain),
		CertificateDomains: cert.RequestDomains(domain),
		PrometheusJob:      username,
		certs:              o.certs,
	}, nil
}

// NginxServerBlock renders the site's nginx config using the certificate
// layout the plan was built with.
func (p Plan) NginxServerBlock() (string, error) {
	certs := p.certs
	if certs.LiveDir == "" {
		certs = cert.DefaultLayout()
	}
	return nginx.RenderServerBlockWith(nginx.Site{
		Domain:   p.Domain,
		Username: p.Username,
		Port:     p.Port,
	}, certs)
}

// SystemdUnit renders the application's service unit file.
func (p Plan) SystemdUnit() (string, error) {
	return systemd.RenderUnit(systemd.Unit{
		Domain:   p.Domain,
		Username: p.Username,
		Home:     p.Home,
	})
}

// MonitoringJob returns the Prometheus scrape job for the application.
func (p Plan) MonitoringJob() monitoring.Job {
	return monitoring.NewAppJob(p.Username, p.Domain, p.Port)
}

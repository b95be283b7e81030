package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/dropletstack/provision/pkg/cert"
	"github.com/dropletstack/provision/pkg/nginx"
	"github.com/dropletstack/provision/pkg/ports"
)

const (
	VersionV1 = "v1"
)

type Config struct {
	Version      string       `yaml:"version"`
	Nginx        Nginx        `yaml:"nginx,omitempty"`
	Certificates Certificates `yaml:"certificates,omitempty"`
	Prometheus   Prometheus   `yaml:"prometheus,omitempty"`
	Ports        Ports        `yaml:"ports,omitempty"`
	Settings     Settings     `yaml:"settings,omitempty"`
}

type Nginx struct {
	SitesAvailable string `yaml:"sites-available,omitempty"`
	SitesEnabled   string `yaml:"sites-enabled,omitempty"`
}

type Certificates struct {
	LiveDir string `yaml:"live-dir,omitempty"`
}

type Prometheus struct {
	// ConfigPath is the scrape configuration document the monitoring
	// commands read and rewrite.
	ConfigPath string `yaml:"config-path,omitempty"`
}

type Ports struct {
	RangeStart int `yaml:"range-start,omitempty"`
	RangeEnd   int `yaml:"range-end,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: VersionV1,
		Nginx: Nginx{
			SitesAvailable: nginx.DefaultSitesAvailableDir,
			SitesEnabled:   nginx.DefaultSitesEnabledDir,
		},
		Certificates: Certificates{LiveDir: cert.DefaultLiveDir},
		Prometheus:   Prometheus{ConfigPath: "/etc/prometheus/prometheus.yml"},
		Ports: Ports{
			RangeStart: ports.DefaultRangeStart,
			RangeEnd:   ports.DefaultRangeEnd,
		},
		Settings: Settings{OutputFormat: "table"},
	}
}

// Load reads the config file at path, filling unset fields with defaults. A
// missing file is not an error; the defaults stand alone.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Nginx.SitesAvailable == "" {
		c.Nginx.SitesAvailable = def.Nginx.SitesAvailable
	}
	if c.Nginx.SitesEnabled == "" {
		c.Nginx.SitesEnabled = def.Nginx.SitesEnabled
	}
	if c.Certificates.LiveDir == "" {
		c.Certificates.LiveDir = def.Certificates.LiveDir
	}
	if c.Prometheus.ConfigPath == "" {
		c.Prometheus.ConfigPath = def.Prometheus.ConfigPath
	}
	if c.Ports.RangeStart == 0 {
		c.Ports.RangeStart = def.Ports.RangeStart
	}
	if c.Ports.RangeEnd == 0 {
		c.Ports.RangeEnd = def.Ports.RangeEnd
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = def.Settings.OutputFormat
	}
}

// NginxLayout returns the configured nginx directory layout.
func (c *Config) NginxLayout() nginx.Layout {
	return nginx.Layout{
		SitesAvailableDir: c.Nginx.SitesAvailable,
		SitesEnabledDir:   c.Nginx.SitesEnabled,
	}
}

// CertLayout returns the configured certificate directory layout.
func (c *Config) CertLayout() cert.Layout {
	return cert.Layout{LiveDir: c.Certificates.LiveDir}
}

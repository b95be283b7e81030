package systemd

import (
	"bytes"
	"fmt"
	"path"
	"text/template"
)

const (
	// DefaultUnitDir is where unit files for provisioned applications are
	// installed.
	DefaultUnitDir = "/etc/systemd/system"

	// UnitPrefix namespaces provisioned application units.
	UnitPrefix = "app-"
)

// UnitName returns the systemd unit name for a derived username: "app-{u}".
func UnitName(username string) string {
	return UnitPrefix + username
}

// UnitPath returns the unit file location for a derived username.
func UnitPath(username string) string {
	return path.Join(DefaultUnitDir, UnitName(username)+".service")
}

// Unit describes one application's service unit.
type Unit struct {
	// Domain is the raw domain, used only for the unit description.
	Domain string
	// Username is the derived identifier; also the Unix account the service
	// runs as.
	Username string
	// Home is the account's home directory; the application lives in
	// {Home}/app.
	Home string
}

// HomeDir returns the conventional home directory for a username.
func HomeDir(username string) string {
	return path.Join("/home", username)
}

const unitTemplate = `[Unit]
Description=Application for {{ .Domain }}
After=network.target

[Service]
Type=simple
User={{ .Username }}
WorkingDirectory={{ .Home }}/app
ExecStart={{ .Home }}/app/start.sh
Restart=always
RestartSec=10
StandardOutput=journal
StandardError=journal

# Security settings
NoNewPrivileges=true
PrivateTmp=true

[Install]
WantedBy=multi-user.target
`

// RenderUnit renders the service unit file for an application. Home defaults
// to /home/{username} when unset.
func RenderUnit(unit Unit) (string, error) {
	if unit.Username == "" {
		return "", fmt.Errorf("unit username is empty")
	}
	if unit.Home == "" {
		unit.Home = HomeDir(unit.Username)
	}

	tmpl, err := template.New("unit").Parse(unitTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse unit template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, unit); err != nil {
		return "", fmt.Errorf("failed to execute unit template: %w", err)
	}

	return buf.String(), nil
}

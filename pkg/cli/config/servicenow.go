package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/interfaces"
	"github.com/opsintake/incident-wizard/pkg/service/servicenow"
	"github.com/urfave/cli/v3"
)

// ServiceNow holds connection settings for the ticketing backend
type ServiceNow struct {
	instanceURL string
	username    string
	password    string `masq:"secret"`
	tablePath   string
}

// Flags returns CLI flags for ServiceNow configuration
func (s *ServiceNow) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "servicenow-url",
			Usage:       "ServiceNow instance URL (e.g., https://dev12345.service-now.com)",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_SERVICENOW_URL"),
			Destination: &s.instanceURL,
		},
		&cli.StringFlag{
			Name:        "servicenow-user",
			Usage:       "ServiceNow basic auth username",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_SERVICENOW_USER"),
			Destination: &s.username,
		},
		&cli.StringFlag{
			Name:        "servicenow-password",
			Usage:       "ServiceNow basic auth password",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_SERVICENOW_PASSWORD"),
			Destination: &s.password,
		},
		&cli.StringFlag{
			Name:        "servicenow-table-path",
			Usage:       "Override the incident table endpoint path",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_SERVICENOW_TABLE_PATH"),
			Destination: &s.tablePath,
		},
	}
}

// LogAttrs returns log attributes for the ServiceNow configuration.
// The password is never logged.
func (s *ServiceNow) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("instance_url", s.instanceURL),
		slog.String("username", s.username),
		slog.Bool("password_set", s.password != ""),
	}
}

// Configure creates a ticketing client from the configured flags
func (s *ServiceNow) Configure() (interfaces.Ticketing, error) {
	if s.instanceURL == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "servicenow-url is required")
	}
	if s.username == "" || s.password == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "servicenow-user and servicenow-password are required")
	}

	var opts []servicenow.Option
	if s.tablePath != "" {
		opts = append(opts, servicenow.WithTablePath(s.tablePath))
	}

	return servicenow.New(s.instanceURL, s.username, s.password, opts...)
}

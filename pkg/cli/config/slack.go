package config

import (
	"log/slog"

	"github.com/opsintake/incident-wizard/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration for the optional notification channel
type Slack struct {
	botToken  string `masq:"secret"`
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for incident notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID to notify",
			Category:    "Slack",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_SLACK_CHANNEL"),
			Destination: &x.channelID,
		},
	}
}

// LogAttrs returns log attributes for the Slack configuration
func (x *Slack) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("bot_token_set", x.botToken != ""),
		slog.String("channel_id", x.channelID),
	}
}

// IsConfigured reports whether notifications are enabled
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure creates a Slack notifier, or nil when not configured
func (x *Slack) Configure() (slack.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}
	return slack.New(x.botToken, x.channelID)
}

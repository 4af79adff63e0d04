package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Service posts incident notifications to a Slack channel. It is an
// optional collaborator: the intake pipeline works without it.
type Service interface {
	NotifyIncidentCreated(ctx context.Context, incident *model.Incident) error
	NotifyIncidentLinked(ctx context.Context, number, correlationID string, score float64) error
}

// client implements Service interface
type client struct {
	api       *slack.Client
	channelID string
}

// New creates a new Slack notifier with the provided bot token and
// target channel
func New(token, channelID string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	return &client{
		api:       slack.New(token),
		channelID: channelID,
	}, nil
}

// NotifyIncidentCreated posts a message about a newly filed incident
func (c *client) NotifyIncidentCreated(ctx context.Context, incident *model.Incident) error {
	text := fmt.Sprintf(":rotating_light: New incident filed: *%s*\n%s", incident.Number, incident.Description)

	if _, _, err := c.api.PostMessageContext(ctx, c.channelID, slack.MsgOptionText(text, false)); err != nil {
		return goerr.Wrap(err, "failed to post incident notification",
			goerr.V("channel_id", c.channelID),
			goerr.V("number", incident.Number),
		)
	}

	return nil
}

// NotifyIncidentLinked posts a message about a duplicate linked to an
// existing incident
func (c *client) NotifyIncidentLinked(ctx context.Context, number, correlationID string, score float64) error {
	text := fmt.Sprintf(":link: Duplicate report linked to *%s* (similarity %.2f, correlation %s)", number, score, correlationID)

	if _, _, err := c.api.PostMessageContext(ctx, c.channelID, slack.MsgOptionText(text, false)); err != nil {
		return goerr.Wrap(err, "failed to post link notification",
			goerr.V("channel_id", c.channelID),
			goerr.V("number", number),
		)
	}

	return nil
}

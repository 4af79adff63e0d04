package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/opsintake/incident-wizard/pkg/utils/async"
	"github.com/opsintake/incident-wizard/pkg/utils/logging"
)

// Submit files the draft with the ticketing system. Without a duplicate
// match it creates a new incident; with one it links the draft to the
// matched incident by appending the draft's correlation id to its
// related_issues, leaving the description untouched.
//
// The update path is a two-step read-then-write with no transactional
// guarantee: a concurrent external modification between the lookup and
// the patch is an accepted race.
func (uc *IntakeUseCase) Submit(ctx context.Context, draft *model.IncidentDraft, match *model.MatchResult) (*model.SubmissionOutcome, error) {
	if match == nil || !match.Matched {
		created, err := uc.ticketing.CreateIncident(ctx, draft)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create incident")
		}

		logging.From(ctx).Info("incident created",
			"number", created.Number,
			"sys_id", created.SysID,
		)
		uc.notifyCreated(ctx, created)

		return &model.SubmissionOutcome{
			Created: true,
			SysID:   created.SysID,
			Number:  created.Number,
		}, nil
	}

	target, err := uc.ticketing.LookupIncident(ctx, match.Incident.Number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up duplicate target",
			goerr.V("number", match.Incident.Number),
		)
	}

	related := append(target.RelatedIssues, draft.CorrelationID) //nolint:gocritic // new slice is intended
	fields := map[string]string{
		"related_issues": strings.Join(related, ","),
	}
	if err := uc.ticketing.UpdateIncident(ctx, target.SysID, fields); err != nil {
		return nil, goerr.Wrap(err, "failed to link duplicate incident",
			goerr.V("number", target.Number),
		)
	}

	logging.From(ctx).Info("duplicate linked to existing incident",
		"number", target.Number,
		"score", match.Score.Float64(),
		"correlation_id", draft.CorrelationID,
	)
	uc.notifyLinked(ctx, target.Number, draft.CorrelationID, match.Score.Float64())

	return &model.SubmissionOutcome{
		Created:         false,
		UpdatedIncident: target.Number,
		Score:           match.Score,
	}, nil
}

// notifyCreated posts a Slack notification without blocking the turn
func (uc *IntakeUseCase) notifyCreated(ctx context.Context, incident *model.Incident) {
	if uc.notifier == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notifier.NotifyIncidentCreated(ctx, incident)
	})
}

// notifyLinked posts a Slack notification without blocking the turn
func (uc *IntakeUseCase) notifyLinked(ctx context.Context, number, correlationID string, score float64) {
	if uc.notifier == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notifier.NotifyIncidentLinked(ctx, number, correlationID, score)
	})
}

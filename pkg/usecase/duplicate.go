package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/opsintake/incident-wizard/pkg/domain/types"
	"github.com/opsintake/incident-wizard/pkg/utils/logging"
)

// FindDuplicate scans existing incidents for the best semantic match
// against the draft description. The candidate list must be supplied in
// descending creation-time order: the maximum is tracked with a
// strictly-greater comparison, so on equal scores the first (most
// recent) candidate wins.
//
// Each candidate costs one independent scoring request; the scan is
// deliberately sequential with no batching. A draft without a
// description matches nothing.
func (uc *IntakeUseCase) FindDuplicate(ctx context.Context, draft *model.IncidentDraft, existing []*model.Incident, threshold float64) (*model.MatchResult, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(draft.Description) == "" {
		return &model.MatchResult{Matched: false}, nil
	}

	var best *model.Incident
	var bestScore types.SimilarityScore

	for _, incident := range existing {
		if strings.TrimSpace(incident.Description) == "" {
			// Nothing to compare against
			continue
		}

		score, err := uc.scorer.Score(ctx, draft.Description, incident.Description)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to score duplicate candidate",
				goerr.V("number", incident.Number),
			)
		}

		logger.Debug("scored duplicate candidate",
			"number", incident.Number,
			"score", score.Float64(),
		)

		if score > bestScore {
			best = incident
			bestScore = score
		}
	}

	if best != nil && bestScore.Float64() > threshold {
		return &model.MatchResult{
			Matched:  true,
			Incident: best,
			Score:    bestScore,
		}, nil
	}

	return &model.MatchResult{Matched: false}, nil
}

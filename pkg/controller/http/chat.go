package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/opsintake/incident-wizard/pkg/usecase"
	"github.com/opsintake/incident-wizard/pkg/utils/errutil"
	"github.com/opsintake/incident-wizard/pkg/utils/safe"
)

// chatRequest carries the caller-maintained conversation history. The
// server keeps no session state between requests.
type chatRequest struct {
	Messages model.Conversation `json:"messages"`
}

// chatHandler runs one intake turn per request
func chatHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode chat request"), http.StatusBadRequest)
			return
		}

		if err := req.Messages.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		result, err := uc.Intake.HandleTurn(r.Context(), req.Messages)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		data, err := json.Marshal(result)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal turn result"), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		safe.Write(r.Context(), w, data)
	}
}

// similarityRequest carries two texts to compare
type similarityRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

type similarityResponse struct {
	Score float64 `json:"score"`
}

// similarityHandler exposes the scorer directly, mainly for tuning the
// duplicate threshold against real incident pairs
func similarityHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req similarityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode similarity request"), http.StatusBadRequest)
			return
		}

		score, err := uc.Similarity.Score(r.Context(), req.TextA, req.TextB)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrEmptyInput) {
				status = http.StatusBadRequest
			}
			errutil.HandleHTTP(r.Context(), w, err, status)
			return
		}

		data, err := json.Marshal(similarityResponse{Score: score.Float64()})
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal similarity response"), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		safe.Write(r.Context(), w, data)
	}
}

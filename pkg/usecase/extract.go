package usecase

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
)

// Extract parses assistant output as a structured incident record and
// validates it against the active schema variant. Text that merely
// resembles a payload is rejected rather than heuristically repaired;
// the raw reply is attached to every failure for operator diagnosis.
func (uc *IntakeUseCase) Extract(raw string) (*model.IncidentDraft, error) {
	trimmed := strings.TrimSpace(raw)

	// Unmarshal accepts a bare "null" into a nil map, so the nil check
	// keeps non-objects on the malformed path.
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil || obj == nil {
		return nil, goerr.Wrap(ErrMalformedPayload, "reply is not a single structured object",
			goerr.V(RawReplyKey, raw),
		)
	}

	for _, field := range uc.cfg.Variant.RequiredFields() {
		if _, ok := obj[field]; !ok {
			return nil, goerr.Wrap(ErrMissingField, "required field is absent",
				goerr.V(FieldNameKey, field),
				goerr.V(RawReplyKey, raw),
			)
		}
	}

	var draft model.IncidentDraft
	if err := json.Unmarshal([]byte(trimmed), &draft); err != nil {
		return nil, goerr.Wrap(ErrMalformedPayload, "payload fields have unexpected types",
			goerr.V(RawReplyKey, raw),
		)
	}

	return &draft, nil
}

package model

import "github.com/opsintake/incident-wizard/pkg/domain/types"

// SubmissionOutcome reports what the submitter did with a draft:
// either a new incident was created, or an existing one was linked.
type SubmissionOutcome struct {
	Created bool `json:"created"`

	// Set when Created is true
	SysID  string `json:"sys_id,omitempty"`
	Number string `json:"number,omitempty"`

	// Set when Created is false
	UpdatedIncident string                `json:"updated_incident,omitempty"`
	Score           types.SimilarityScore `json:"score,omitempty"`
}

// TurnResult is the result of advancing a conversation by one turn.
// A malformed payload is a graceful, user-visible failure rather than
// an orchestrator crash; the conversation can continue afterwards.
type TurnResult struct {
	Submitted        bool               `json:"submitted"`
	Reply            string             `json:"reply,omitempty"`
	MalformedPayload bool               `json:"malformed_payload,omitempty"`
	Outcome          *SubmissionOutcome `json:"outcome,omitempty"`
}

package model

import (
	"time"

	"github.com/opsintake/incident-wizard/pkg/domain/types"
)

// IncidentDraft is a structured incident record extracted from
// assistant output. It is produced once per submit decision and is
// immutable after extraction.
type IncidentDraft struct {
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Urgency          string `json:"urgency"`
	Impact           string `json:"impact"`
	CallerID         string `json:"caller_id,omitempty"`
	Category         string `json:"category"`
	AssignmentGroup  string `json:"assignment_group,omitempty"`

	// Clickstream variant fields
	Version       string `json:"u_version,omitempty"`
	CorrelationID string `json:"u_correlation_id,omitempty"`
}

// Fields returns the draft as a field map suitable for a ticketing
// create request. Empty fields are omitted.
func (d *IncidentDraft) Fields() map[string]string {
	fields := map[string]string{
		"short_description": d.ShortDescription,
		"description":       d.Description,
		"urgency":           d.Urgency,
		"impact":            d.Impact,
		"caller_id":         d.CallerID,
		"category":          d.Category,
		"assignment_group":  d.AssignmentGroup,
		"u_version":         d.Version,
		"correlation_id":    d.CorrelationID,
	}
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}

// Incident is an existing record fetched from the external ticketing
// system. It is read-only for this core except for RelatedIssues, which
// the updater may append to.
type Incident struct {
	SysID         string
	Number        string
	Description   string
	CorrelationID string
	RelatedIssues []string
	CreatedAt     time.Time
}

// MatchResult is the outcome of duplicate detection against a list of
// previously filed incidents.
type MatchResult struct {
	Matched  bool
	Incident *Incident
	Score    types.SimilarityScore
}

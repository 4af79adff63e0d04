package config

import "github.com/opsintake/incident-wizard/pkg/domain/types"

// DefaultDuplicateThreshold is the similarity score above which a new
// draft is treated as a duplicate of an existing incident.
const DefaultDuplicateThreshold = 0.80

// DefaultCandidateLimit caps how many recent incidents are pulled for
// duplicate comparison.
const DefaultCandidateLimit = 100

// DefaultTriggerPhrases is the fixed set of substrings that signal
// intent to finalize and submit. Matching is case-insensitive
// containment with no negation handling.
func DefaultTriggerPhrases() []string {
	return []string{
		"submit incident",
		"create incident",
		"submit the incident",
		"create the incident",
		"go ahead",
		"send to servicenow",
		"file the incident",
	}
}

// IntakeConfig holds the intake pipeline settings. It is built once at
// startup and passed into each component at construction time; nothing
// reads ambient global state during a request.
type IntakeConfig struct {
	Variant            types.SchemaVariant
	DuplicateThreshold float64
	CandidateLimit     int
	TriggerPhrases     []string
	Applications       []string
}

// NewIntakeConfig returns an IntakeConfig populated with defaults
func NewIntakeConfig() *IntakeConfig {
	return &IntakeConfig{
		Variant:            types.SchemaVariantClassic,
		DuplicateThreshold: DefaultDuplicateThreshold,
		CandidateLimit:     DefaultCandidateLimit,
		TriggerPhrases:     DefaultTriggerPhrases(),
	}
}

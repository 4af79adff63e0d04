package usecase

import (
	"strings"

	"github.com/opsintake/incident-wizard/pkg/domain/model"
)

// ShouldSubmit reports whether the most recent user message signals
// intent to finalize and submit the incident. The check is a
// case-insensitive substring match against the configured trigger
// phrases. Negation is not handled: "don't submit yet" still matches.
func (uc *IntakeUseCase) ShouldSubmit(conversation model.Conversation) bool {
	return containsTrigger(conversation.LastUserMessage(), uc.cfg.TriggerPhrases)
}

// containsTrigger checks a single utterance against the trigger set
func containsTrigger(text string, triggers []string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range triggers {
		if phrase == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/types"
)

// Message is a single role-tagged utterance in a conversation
type Message struct {
	Role    types.Role `json:"role"`
	Content string     `json:"content"`
}

// Conversation is an ordered, append-only sequence of messages for one
// intake session. It is owned by the orchestrator for the lifetime of a
// turn and never persisted across process restarts.
type Conversation []Message

// LastUserMessage returns the content of the most recent user message,
// or empty string if the conversation has no user message.
func (c Conversation) LastUserMessage() string {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Role == types.RoleUser {
			return c[i].Content
		}
	}
	return ""
}

// WithSystem returns a copy of the conversation with the given system
// directive prepended. Caller-supplied system messages are dropped so
// the orchestrator's directive is the only one the model sees.
func (c Conversation) WithSystem(directive string) Conversation {
	out := make(Conversation, 0, len(c)+1)
	out = append(out, Message{Role: types.RoleSystem, Content: directive})
	for _, m := range c {
		if m.Role == types.RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Transcript renders the conversation as role-tagged lines for
// inclusion in a model prompt. System messages are skipped.
func (c Conversation) Transcript() string {
	var sb strings.Builder
	for _, m := range c {
		if m.Role == types.RoleSystem {
			continue
		}
		sb.WriteString(m.Role.String())
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Validate checks that the conversation is non-empty and that every
// message carries a valid role
func (c Conversation) Validate() error {
	if len(c) == 0 {
		return goerr.New("conversation has no messages")
	}
	for _, m := range c {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the message role
func (m Message) Validate() error {
	_, err := types.ParseRole(string(m.Role))
	return err
}

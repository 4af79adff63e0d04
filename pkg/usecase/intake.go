package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/opsintake/incident-wizard/pkg/domain/interfaces"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/opsintake/incident-wizard/pkg/domain/model/config"
	"github.com/opsintake/incident-wizard/pkg/service/slack"
	"github.com/opsintake/incident-wizard/pkg/utils/logging"
)

//go:embed prompt/intake_system.md
var intakeSystemPromptTmpl string

var intakeSystemPrompt = template.Must(
	template.New("intake_system").
		Funcs(template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		}).
		Parse(intakeSystemPromptTmpl),
)

// IntakeUseCase drives one conversational incident-intake turn: it owns
// the message history for the turn, calls the language model exactly
// once, and routes the reply either back to the user or through
// extraction, duplicate detection and submission.
type IntakeUseCase struct {
	llmClient gollem.LLMClient
	ticketing interfaces.Ticketing
	scorer    *SimilarityUseCase
	notifier  slack.Service
	cfg       *config.IntakeConfig
}

// IntakeOption is a functional option for IntakeUseCase
type IntakeOption func(*IntakeUseCase)

// WithNotifier attaches an optional Slack notifier
func WithNotifier(notifier slack.Service) IntakeOption {
	return func(uc *IntakeUseCase) {
		uc.notifier = notifier
	}
}

// NewIntakeUseCase creates a new IntakeUseCase. The configuration is
// bound at construction time; nothing is read from ambient state during
// a turn.
func NewIntakeUseCase(llmClient gollem.LLMClient, ticketing interfaces.Ticketing, scorer *SimilarityUseCase, cfg *config.IntakeConfig, opts ...IntakeOption) *IntakeUseCase {
	if cfg == nil {
		cfg = config.NewIntakeConfig()
	}

	uc := &IntakeUseCase{
		llmClient: llmClient,
		ticketing: ticketing,
		scorer:    scorer,
		cfg:       cfg,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// intakePromptData holds data for the system directive template
type intakePromptData struct {
	Applications []string
	Fields       []string
	Example      string
}

// buildSystemDirective renders the fixed system directive for the
// active schema variant
func (uc *IntakeUseCase) buildSystemDirective() (string, error) {
	fields := uc.cfg.Variant.RequiredFields()

	var example strings.Builder
	example.WriteString("{\n")
	for i, f := range fields {
		example.WriteString(fmt.Sprintf("  %q: \"...\"", f))
		if i < len(fields)-1 {
			example.WriteString(",")
		}
		example.WriteString("\n")
	}
	example.WriteString("}")

	var buf bytes.Buffer
	err := intakeSystemPrompt.Execute(&buf, intakePromptData{
		Applications: uc.cfg.Applications,
		Fields:       fields,
		Example:      example.String(),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render system directive")
	}

	return buf.String(), nil
}

// HandleTurn advances the conversation by one exchange. It makes
// exactly one language-model call, and zero or one ticketing call: a
// create or an update, never both.
func (uc *IntakeUseCase) HandleTurn(ctx context.Context, conversation model.Conversation) (*model.TurnResult, error) {
	logger := logging.From(ctx)

	if err := conversation.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid conversation")
	}

	directive, err := uc.buildSystemDirective()
	if err != nil {
		return nil, err
	}
	augmented := conversation.WithSystem(directive)

	var prompt strings.Builder
	prompt.WriteString("# Conversation so far\n\n")
	prompt.WriteString(augmented.Transcript())
	prompt.WriteString("\nRespond as the assistant.")

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(directive),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrUpstreamModel, "failed to create intake session",
			goerr.V("cause", err.Error()),
		)
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(prompt.String())})
	if err != nil {
		return nil, goerr.Wrap(ErrUpstreamModel, "failed to generate assistant reply",
			goerr.V("cause", err.Error()),
		)
	}
	if resp == nil || len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrUpstreamModel, "assistant returned an empty reply")
	}
	reply := strings.TrimSpace(strings.Join(resp.Texts, "\n"))

	// Intent is judged on what the user said, not on the model's reply
	if !uc.ShouldSubmit(conversation) {
		return &model.TurnResult{Submitted: false, Reply: reply}, nil
	}

	draft, err := uc.Extract(reply)
	if err != nil {
		logger.Warn("could not finalize incident from reply", "error", err.Error())
		return &model.TurnResult{
			Submitted:        false,
			MalformedPayload: true,
			Reply:            reply,
		}, nil
	}

	if draft.CorrelationID == "" {
		draft.CorrelationID = uuid.Must(uuid.NewV7()).String()
	}

	candidates, err := uc.ticketing.ListIncidents(ctx, interfaces.WithLimit(uc.cfg.CandidateLimit))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents for duplicate check")
	}

	match, err := uc.FindDuplicate(ctx, draft, candidates, uc.cfg.DuplicateThreshold)
	if err != nil {
		return nil, err
	}

	outcome, err := uc.Submit(ctx, draft, match)
	if err != nil {
		return nil, err
	}

	result := &model.TurnResult{
		Submitted: true,
		Outcome:   outcome,
	}
	if outcome.Created {
		result.Reply = fmt.Sprintf("Incident created successfully.\nNumber: %s\nSys_ID: %s", outcome.Number, outcome.SysID)
	} else {
		result.Reply = fmt.Sprintf("This looks very similar to existing incident %s. Your report was linked to it instead of creating a new one.", outcome.UpdatedIncident)
	}

	return result, nil
}

package usecase

import (
	"github.com/m-mizutani/gollem"
	"github.com/opsintake/incident-wizard/pkg/domain/interfaces"
	"github.com/opsintake/incident-wizard/pkg/domain/model/config"
	"github.com/opsintake/incident-wizard/pkg/service/slack"
)

// UseCases bundles the use cases behind the controllers
type UseCases struct {
	Similarity *SimilarityUseCase
	Intake     *IntakeUseCase
}

// Option is a functional option for UseCases
type Option func(*options)

type options struct {
	notifier slack.Service
}

// WithSlackNotifier enables Slack notifications on incident creation
// and duplicate linking
func WithSlackNotifier(notifier slack.Service) Option {
	return func(o *options) {
		o.notifier = notifier
	}
}

// New creates the use case set from its external collaborators
func New(llmClient gollem.LLMClient, ticketing interfaces.Ticketing, cfg *config.IntakeConfig, opts ...Option) *UseCases {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	scorer := NewSimilarityUseCase(llmClient)

	var intakeOpts []IntakeOption
	if o.notifier != nil {
		intakeOpts = append(intakeOpts, WithNotifier(o.notifier))
	}
	intake := NewIntakeUseCase(llmClient, ticketing, scorer, cfg, intakeOpts...)

	return &UseCases{
		Similarity: scorer,
		Intake:     intake,
	}
}

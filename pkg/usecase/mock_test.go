package usecase_test

import (
	"context"

	"github.com/m-mizutani/gollem"
	"github.com/opsintake/incident-wizard/pkg/domain/interfaces"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateFn func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error)
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, input, opts...)
	}
	return &gollem.Response{
		Texts: []string{"Understood. Could you tell me more about the issue?"},
	}, nil
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return s.Generate(ctx, input)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// promptText concatenates the text parts of a model input for
// inspection in tests
func promptText(input ...gollem.Input) string {
	var out string
	for _, in := range input {
		if text, ok := in.(gollem.Text); ok {
			out += string(text)
		}
	}
	return out
}

// replyWith builds an LLM client whose sessions always answer with the
// given text
func replyWith(text string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateFn: func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

// promptCapturingClient builds an LLM client that records the rendered
// prompt into dst before answering with the given text
func promptCapturingClient(dst *string, text string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateFn: func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
					*dst = promptText(input...)
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

// mockTicketing is a mock ticketing backend for testing
type mockTicketing struct {
	createFn func(ctx context.Context, draft *model.IncidentDraft) (*model.Incident, error)
	lookupFn func(ctx context.Context, number string) (*model.Incident, error)
	updateFn func(ctx context.Context, sysID string, fields map[string]string) error
	listFn   func(ctx context.Context, opts ...interfaces.ListIncidentsOption) ([]*model.Incident, error)

	created []*model.IncidentDraft
	updated map[string]map[string]string
}

func (m *mockTicketing) CreateIncident(ctx context.Context, draft *model.IncidentDraft) (*model.Incident, error) {
	m.created = append(m.created, draft)
	if m.createFn != nil {
		return m.createFn(ctx, draft)
	}
	return &model.Incident{
		SysID:         "sys-0001",
		Number:        "INC0010001",
		Description:   draft.Description,
		CorrelationID: draft.CorrelationID,
	}, nil
}

func (m *mockTicketing) LookupIncident(ctx context.Context, number string) (*model.Incident, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, number)
	}
	return &model.Incident{SysID: "sys-" + number, Number: number}, nil
}

func (m *mockTicketing) UpdateIncident(ctx context.Context, sysID string, fields map[string]string) error {
	if m.updated == nil {
		m.updated = map[string]map[string]string{}
	}
	m.updated[sysID] = fields
	if m.updateFn != nil {
		return m.updateFn(ctx, sysID, fields)
	}
	return nil
}

func (m *mockTicketing) ListIncidents(ctx context.Context, opts ...interfaces.ListIncidentsOption) ([]*model.Incident, error) {
	if m.listFn != nil {
		return m.listFn(ctx, opts...)
	}
	return nil, nil
}

// listLimit resolves the limit carried by a set of listing options
func listLimit(opts ...interfaces.ListIncidentsOption) int {
	return interfaces.BuildListIncidentsConfig(opts...).Limit()
}

// mockNotifier reports notification calls on channels so tests can
// wait for the async dispatch
type mockNotifier struct {
	created chan string
	linked  chan string
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		created: make(chan string, 8),
		linked:  make(chan string, 8),
	}
}

func (m *mockNotifier) NotifyIncidentCreated(ctx context.Context, incident *model.Incident) error {
	m.created <- incident.Number
	return nil
}

func (m *mockNotifier) NotifyIncidentLinked(ctx context.Context, number, correlationID string, score float64) error {
	m.linked <- number
	return nil
}

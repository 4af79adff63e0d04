package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	controller "github.com/opsintake/incident-wizard/pkg/controller/http"
	"github.com/opsintake/incident-wizard/pkg/domain/interfaces"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/opsintake/incident-wizard/pkg/usecase"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateFn func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error)
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, input, opts...)
	}
	return &gollem.Response{Texts: []string{"Could you describe the problem?"}}, nil
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
	generateFn func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &mockLLMSession{generateFn: c.generateFn}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// mockTicketing is a mock ticketing backend for testing
type mockTicketing struct {
	incidents []*model.Incident
}

func (m *mockTicketing) CreateIncident(ctx context.Context, draft *model.IncidentDraft) (*model.Incident, error) {
	return &model.Incident{SysID: "sys-1", Number: "INC0001"}, nil
}

func (m *mockTicketing) LookupIncident(ctx context.Context, number string) (*model.Incident, error) {
	for _, in := range m.incidents {
		if in.Number == number {
			return in, nil
		}
	}
	return nil, nil
}

func (m *mockTicketing) UpdateIncident(ctx context.Context, sysID string, fields map[string]string) error {
	return nil
}

func (m *mockTicketing) ListIncidents(ctx context.Context, opts ...interfaces.ListIncidentsOption) ([]*model.Incident, error) {
	return m.incidents, nil
}

func newTestServer(llm *mockLLMClient) *controller.Server {
	uc := usecase.New(llm, &mockTicketing{}, nil)
	return controller.New(uc)
}

func TestChatEndpoint(t *testing.T) {
	t.Run("one turn round trip", func(t *testing.T) {
		srv := newTestServer(&mockLLMClient{})

		body := `{"messages":[{"role":"user","content":"my laptop keeps rebooting"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/json")

		var result model.TurnResult
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
		gt.Value(t, result.Submitted).Equal(false)
		gt.Value(t, result.Reply).Equal("Could you describe the problem?")
	})

	t.Run("broken json is a bad request", func(t *testing.T) {
		srv := newTestServer(&mockLLMClient{})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("empty conversation is a bad request", func(t *testing.T) {
		srv := newTestServer(&mockLLMClient{})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[]}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("invalid role is a bad request", func(t *testing.T) {
		srv := newTestServer(&mockLLMClient{})

		body := `{"messages":[{"role":"wizard","content":"hello"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestSimilarityEndpoint(t *testing.T) {
	t.Run("scores two texts", func(t *testing.T) {
		llm := &mockLLMClient{
			generateFn: func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
				return &gollem.Response{Texts: []string{"0.42"}}, nil
			},
		}
		srv := newTestServer(llm)

		body := `{"text_a":"VPN down","text_b":"VPN unreachable"}`
		req := httptest.NewRequest(http.MethodPost, "/api/similarity", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Score float64 `json:"score"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.Score).Equal(0.42)
	})

	t.Run("blank text is a bad request", func(t *testing.T) {
		srv := newTestServer(&mockLLMClient{})

		body := `{"text_a":"","text_b":"VPN unreachable"}`
		req := httptest.NewRequest(http.MethodPost, "/api/similarity", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&mockLLMClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp["status"]).Equal("ok")
}

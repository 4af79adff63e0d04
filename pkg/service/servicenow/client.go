package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/interfaces"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/opsintake/incident-wizard/pkg/utils/safe"
)

const (
	// defaultTablePath is the incident table endpoint of the Table API
	defaultTablePath = "/api/now/table/incident"
	// defaultTimeout bounds a single ticketing request
	defaultTimeout = 30 * time.Second
)

// client implements interfaces.Ticketing against a ServiceNow instance
type client struct {
	baseURL    string
	username   string
	password   string
	tablePath  string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithTablePath overrides the incident table endpoint path
func WithTablePath(path string) Option {
	return func(c *client) {
		c.tablePath = path
	}
}

// New creates a ticketing client for the given ServiceNow instance.
// Credentials are provided by the surrounding configuration; the client
// never reads ambient state.
func New(baseURL, username, password string, opts ...Option) (interfaces.Ticketing, error) {
	if baseURL == "" {
		return nil, goerr.New("ServiceNow instance URL is required")
	}

	c := &client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		username:   username,
		password:   password,
		tablePath:  defaultTablePath,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do issues a single authenticated request. No retry: the caller
// decides whether a failed request is worth repeating.
func (c *client) do(ctx context.Context, method, rawURL string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.V("url", rawURL))
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(ErrTicketingSystem, "request failed",
			goerr.V("method", method),
			goerr.V("url", rawURL),
			goerr.V(DetailsKey, err.Error()),
		)
	}

	return resp, nil
}

// statusError drains the response body into a structured error. The raw
// body is kept as opaque diagnostic text for the operator.
func statusError(resp *http.Response, msg string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return goerr.Wrap(ErrTicketingSystem, msg,
		goerr.V(StatusCodeKey, resp.StatusCode),
		goerr.V(DetailsKey, string(body)),
	)
}

// CreateIncident files a new incident via POST
func (c *client) CreateIncident(ctx context.Context, draft *model.IncidentDraft) (*model.Incident, error) {
	payload, err := json.Marshal(draft.Fields())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal incident fields")
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+c.tablePath, payload)
	if err != nil {
		return nil, err
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return nil, statusError(resp, "failed to create incident")
	}

	var rec recordResponse
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode create response")
	}

	return rec.Result.toModel(), nil
}

// LookupIncident fetches a single record by incident number
func (c *client) LookupIncident(ctx context.Context, number string) (*model.Incident, error) {
	q := url.Values{}
	q.Set("sysparm_query", "number="+number)
	q.Set("sysparm_limit", "1")

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+c.tablePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "failed to look up incident")
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, goerr.Wrap(err, "failed to decode lookup response")
	}

	if len(list.Result) == 0 {
		return nil, goerr.Wrap(ErrIncidentNotFound, "no incident matches number",
			goerr.V(NumberKey, number),
		)
	}

	return list.Result[0].toModel(), nil
}

// UpdateIncident applies a partial field update via PATCH
func (c *client) UpdateIncident(ctx context.Context, sysID string, fields map[string]string) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal update fields")
	}

	resp, err := c.do(ctx, http.MethodPatch, c.baseURL+c.tablePath+"/"+url.PathEscape(sysID), payload)
	if err != nil {
		return err
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.Wrap(ErrTicketingSystem, "failed to update incident",
			goerr.V(StatusCodeKey, resp.StatusCode),
			goerr.V(DetailsKey, string(body)),
			goerr.V(SysIDKey, sysID),
		)
	}

	return nil
}

// ListIncidents returns incidents ordered newest-first
func (c *client) ListIncidents(ctx context.Context, opts ...interfaces.ListIncidentsOption) ([]*model.Incident, error) {
	cfg := interfaces.BuildListIncidentsConfig(opts...)

	query := []string{}
	if state := cfg.State(); state != "" {
		query = append(query, "state="+state)
	}
	if after := cfg.CreatedAfter(); after != nil {
		query = append(query, "sys_created_on>"+after.UTC().Format(sysCreatedOnFormat))
	}
	query = append(query, "ORDERBYDESCsys_created_on")

	q := url.Values{}
	q.Set("sysparm_query", strings.Join(query, "^"))
	if limit := cfg.Limit(); limit > 0 {
		q.Set("sysparm_limit", strconv.Itoa(limit))
	}

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+c.tablePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "failed to list incidents")
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, goerr.Wrap(err, "failed to decode list response")
	}

	incidents := make([]*model.Incident, 0, len(list.Result))
	for i := range list.Result {
		incidents = append(incidents, list.Result[i].toModel())
	}

	return incidents, nil
}

package interfaces

import "time"

// ListIncidentsOption is a functional option for filtering incidents in ListIncidents
type ListIncidentsOption func(*listIncidentsConfig)

type listIncidentsConfig struct {
	limit        int
	state        string
	createdAfter *time.Time
}

// WithLimit caps the number of returned incidents
func WithLimit(limit int) ListIncidentsOption {
	return func(c *listIncidentsConfig) {
		c.limit = limit
	}
}

// WithState filters incidents by state code
func WithState(state string) ListIncidentsOption {
	return func(c *listIncidentsConfig) {
		c.state = state
	}
}

// WithCreatedAfter filters incidents created on or after the given time
func WithCreatedAfter(t time.Time) ListIncidentsOption {
	return func(c *listIncidentsConfig) {
		c.createdAfter = &t
	}
}

// BuildListIncidentsConfig builds a listIncidentsConfig from options
func BuildListIncidentsConfig(opts ...ListIncidentsOption) *listIncidentsConfig {
	cfg := &listIncidentsConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Limit returns the result cap, or 0 if not set
func (c *listIncidentsConfig) Limit() int {
	return c.limit
}

// State returns the state filter, or empty string if not set
func (c *listIncidentsConfig) State() string {
	return c.state
}

// CreatedAfter returns the creation-time lower bound, or nil if not set
func (c *listIncidentsConfig) CreatedAfter() *time.Time {
	return c.createdAfter
}

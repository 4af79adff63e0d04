package interfaces

import (
	"context"

	"github.com/opsintake/incident-wizard/pkg/domain/model"
)

// Ticketing defines the interface to the external incident record
// system. All calls are blocking, single-shot requests with no internal
// retry; failures surface as structured errors with status code and raw
// body attached.
type Ticketing interface {
	// CreateIncident files a new incident and returns the created
	// record with its sys_id and number populated.
	CreateIncident(ctx context.Context, draft *model.IncidentDraft) (*model.Incident, error)

	// LookupIncident fetches a single incident by its business
	// identifier (incident number). A lookup miss is an error, not a
	// nil record.
	LookupIncident(ctx context.Context, number string) (*model.Incident, error)

	// UpdateIncident applies a partial field update to the record
	// identified by its internal sys_id.
	UpdateIncident(ctx context.Context, sysID string, fields map[string]string) error

	// ListIncidents returns incidents ordered newest-first.
	ListIncidents(ctx context.Context, opts ...ListIncidentsOption) ([]*model.Incident, error)
}

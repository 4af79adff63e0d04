package servicenow

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
)

// Sentinel errors for the ticketing client
var (
	ErrIncidentNotFound = goerr.New("incident not found")
	ErrTicketingSystem  = goerr.New("ticketing system request failed")
)

// Context keys for error values
const (
	StatusCodeKey = "status_code"
	DetailsKey    = "details"
	NumberKey     = "number"
	SysIDKey      = "sys_id"
)

// sysCreatedOnFormat is the timestamp format of the Table API
const sysCreatedOnFormat = "2006-01-02 15:04:05"

// incidentRecord is the wire shape of an incident row in the Table API
type incidentRecord struct {
	SysID         string `json:"sys_id"`
	Number        string `json:"number"`
	Description   string `json:"description"`
	CorrelationID string `json:"correlation_id"`
	RelatedIssues string `json:"related_issues"`
	SysCreatedOn  string `json:"sys_created_on"`
}

// recordResponse wraps a single record result
type recordResponse struct {
	Result incidentRecord `json:"result"`
}

// listResponse wraps a multi-record result
type listResponse struct {
	Result []incidentRecord `json:"result"`
}

// toModel converts a wire record into a domain incident. A malformed
// creation timestamp yields a zero time rather than an error; the
// record itself is still usable.
func (r *incidentRecord) toModel() *model.Incident {
	var related []string
	for _, ref := range strings.Split(r.RelatedIssues, ",") {
		if ref = strings.TrimSpace(ref); ref != "" {
			related = append(related, ref)
		}
	}

	createdAt, _ := time.Parse(sysCreatedOnFormat, r.SysCreatedOn)

	return &model.Incident{
		SysID:         r.SysID,
		Number:        r.Number,
		Description:   r.Description,
		CorrelationID: r.CorrelationID,
		RelatedIssues: related,
		CreatedAt:     createdAt,
	}
}

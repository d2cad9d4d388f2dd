package lifecycle

import (
	"context"
	"errors"

	"github.com/firvault/fir-vault-api/models"
)

// ErrStale is returned by CaseStore.Put when the record changed since the
// version the caller read. The engine retries the read-validate-write cycle
// a bounded number of times before giving up with Conflict.
var ErrStale = errors.New("case version is stale")

// CaseStore is the durable record of FIRs. Put is a conditional write: it
// commits the new details only if the stored version still equals
// expectedVersion, bumping the version on success.
type CaseStore interface {
	Get(ctx context.Context, id string) (*models.FIR, error)
	Insert(ctx context.Context, details models.FIRDetails) (*models.FIR, error)
	Put(ctx context.Context, id string, expectedVersion int32, details models.FIRDetails) (*models.FIR, error)
	List(ctx context.Context) ([]models.FIR, error)
}

// OfficerDirectory resolves officers by their HRMS id.
type OfficerDirectory interface {
	ByHRMS(ctx context.Context, hrms string) (*models.Officer, error)
}

// StationDirectory resolves stations by their station id.
type StationDirectory interface {
	BySID(ctx context.Context, sid string) (*models.Station, error)
}

package lifecycle

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/firvault/fir-vault-api/models"
)

// defaultRetries bounds the read-validate-write cycle on version conflicts.
const defaultRetries = 3

// errNoop signals that a mutation found nothing to change and the current
// snapshot should be returned without a write.
var errNoop = errors.New("no changes")

// Engine orchestrates every mutation of a FIR. It validates the requested
// transition against the transition table and the role authorizer, applies
// it atomically against the case store, and returns the new snapshot or a
// typed *Error. It is stateless between calls.
type Engine struct {
	Cases    CaseStore
	Officers OfficerDirectory
	Stations StationDirectory
	Now      func() time.Time
	Retries  int
}

// New creates an engine with the default clock and retry budget.
func New(cases CaseStore, officers OfficerDirectory, stations StationDirectory) *Engine {
	return &Engine{
		Cases:    cases,
		Officers: officers,
		Stations: stations,
		Now:      time.Now,
		Retries:  defaultRetries,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) retries() int {
	if e.Retries > 0 {
		return e.Retries
	}
	return defaultRetries
}

// FileCase creates a new FIR for the acting citizen. The case id is issued
// by the store, never by the client.
func (e *Engine) FileCase(ctx context.Context, p Principal, req models.FileFIRRequest) (*models.FIR, error) {
	if err := Authorize(p, ActionFile, nil); err != nil {
		return nil, err
	}

	station, err := e.Stations.BySID(ctx, req.StationID)
	if err != nil {
		return nil, err
	}
	if !station.Details.Approval {
		return nil, InvalidStation("station %s is not approved", req.StationID)
	}

	incidentDate, terr := time.Parse(time.RFC3339, req.IncidentDate)
	if terr != nil {
		return nil, InvalidState("incident date must be RFC 3339, got %q", req.IncidentDate)
	}

	now := e.now()
	details := models.FIRDetails{
		Status:           StatusSubmitted.String(),
		Closed:           false,
		StationID:        req.StationID,
		VictimID:         p.AccountID,
		ComplainDate:     primitive.NewDateTimeFromTime(now),
		IncidentDate:     primitive.NewDateTimeFromTime(incidentDate),
		IncidentLocation: req.IncidentLocation,
		Description:      req.Description,
		CreatedAt:        primitive.NewDateTimeFromTime(now),
		UpdatedAt:        primitive.NewDateTimeFromTime(now),
	}
	fir, err := e.Cases.Insert(ctx, details)
	if err != nil {
		return nil, err
	}
	zap.S().Infow("fir filed", "firID", fir.ID, "stationID", req.StationID, "victimID", p.AccountID)
	return fir, nil
}

// AssignOfficer sets the investigating officer on a case. Assigning an
// unassigned case advances submitted/reopened to assigned in the same
// write; reassignment past that point changes only the officer. Plain
// assignment of an already-held case fails InvalidState; station admins
// reassign by setting reassign.
func (e *Engine) AssignOfficer(ctx context.Context, p Principal, caseID, hrms string, reassign bool) (*models.FIR, error) {
	officer, err := e.Officers.ByHRMS(ctx, hrms)
	if err != nil {
		return nil, err
	}

	return e.update(ctx, caseID, func(fir *models.FIRDetails) error {
		if aerr := Authorize(p, ActionAssign, fir); aerr != nil {
			return aerr
		}
		if aerr := CheckAssignment(p, fir, &officer.Details); aerr != nil {
			return aerr
		}
		if fir.OfficerHRMS != "" && !reassign {
			return InvalidState("case is already assigned to officer %s", fir.OfficerHRMS)
		}
		if reassign && p.Role != RoleStationAdmin {
			return PermissionDenied("only station admins may reassign a case")
		}
		if fir.Closed {
			return InvalidState("case is closed; reopen it before assigning")
		}
		fir.OfficerHRMS = officer.Details.HRMS
		if Status(fir.Status).Rank() < StatusAssigned.Rank() {
			fir.Status = StatusAssigned.String()
		}
		return nil
	})
}

// AdvanceStatus moves a case to any forward stage of the lifecycle.
// Reaching resolved does not close the case; closing is its own explicit
// call, so "resolve and close" is an at-least-two-call protocol.
func (e *Engine) AdvanceStatus(ctx context.Context, p Principal, caseID string, target Status) (*models.FIR, error) {
	if !target.Valid() {
		return nil, InvalidState("unknown status %q", target)
	}
	return e.update(ctx, caseID, func(fir *models.FIRDetails) error {
		if aerr := Authorize(p, ActionAdvance, fir); aerr != nil {
			return aerr
		}
		if aerr := CanAdvance(fir, target); aerr != nil {
			return aerr
		}
		fir.Status = target.String()
		return nil
	})
}

// CloseCase marks a reviewed or resolved case closed, forcing its status to
// resolved. Closing an already-closed case fails InvalidState rather than
// toggling it back open.
func (e *Engine) CloseCase(ctx context.Context, p Principal, caseID string) (*models.FIR, error) {
	return e.update(ctx, caseID, func(fir *models.FIRDetails) error {
		if aerr := Authorize(p, ActionClose, fir); aerr != nil {
			return aerr
		}
		if aerr := CanClose(fir); aerr != nil {
			return aerr
		}
		fir.Closed = true
		fir.Status = StatusResolved.String()
		return nil
	})
}

// ReopenCase clears the closed flag on a closed case and parks the status on
// the reopened marker, from which any forward stage is reachable again.
func (e *Engine) ReopenCase(ctx context.Context, p Principal, caseID string) (*models.FIR, error) {
	return e.update(ctx, caseID, func(fir *models.FIRDetails) error {
		if aerr := Authorize(p, ActionReopen, fir); aerr != nil {
			return aerr
		}
		if aerr := CanReopen(fir); aerr != nil {
			return aerr
		}
		fir.Closed = false
		fir.Status = StatusReopened.String()
		return nil
	})
}

// LinkCriminal attaches a criminal record to the case. Linking the same
// record twice is a no-op success.
func (e *Engine) LinkCriminal(ctx context.Context, p Principal, caseID, criminalID string) (*models.FIR, error) {
	return e.update(ctx, caseID, func(fir *models.FIRDetails) error {
		if aerr := Authorize(p, ActionLinkCriminal, fir); aerr != nil {
			return aerr
		}
		if fir.CriminalID == criminalID {
			return errNoop
		}
		fir.CriminalID = criminalID
		return nil
	})
}

// update runs one bounded read-validate-write cycle. mutate sees a copy of
// the current details; returning an error aborts with no write, errNoop
// returns the unmodified snapshot, and a stale conditional write triggers a
// fresh read and re-validation.
func (e *Engine) update(ctx context.Context, caseID string, mutate func(*models.FIRDetails) error) (*models.FIR, error) {
	for attempt := 0; attempt < e.retries(); attempt++ {
		fir, err := e.Cases.Get(ctx, caseID)
		if err != nil {
			return nil, err
		}

		details := fir.Details
		if merr := mutate(&details); merr != nil {
			if errors.Is(merr, errNoop) {
				return fir, nil
			}
			return nil, merr
		}
		details.UpdatedAt = primitive.NewDateTimeFromTime(e.now())

		updated, err := e.Cases.Put(ctx, fir.ID, fir.Version, details)
		if errors.Is(err, ErrStale) {
			zap.S().Debugw("stale case write, retrying", "firID", caseID, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, Conflict("case %s kept changing concurrently, giving up", caseID)
}

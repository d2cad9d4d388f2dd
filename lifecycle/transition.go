package lifecycle

import (
	"github.com/firvault/fir-vault-api/models"
)

// The transition table. Status moves forward through the ordered chain;
// callers may jump over intermediate stages (the station portal selects a
// target directly while the officer portal walks stage by stage, and both
// are legal). The closed flag is a layered axis: it may only become true
// once status has reached under_review, and setting it forces resolved.
// Reopen is the single backward edge and the only writer that clears closed.

// CanAdvance checks that moving fir to target is a legal forward transition.
func CanAdvance(fir *models.FIRDetails, target Status) *Error {
	if fir.Closed {
		return InvalidState("case is closed; reopen it before advancing")
	}
	current := Status(fir.Status)
	if target.Rank() <= current.Rank() {
		return InvalidState("cannot move status backward or in place, %s -> %s", current, target)
	}
	return nil
}

// CanClose checks that fir may be closed: status must have reached
// under_review or resolved, and closing twice is not a toggle.
func CanClose(fir *models.FIRDetails) *Error {
	if fir.Closed {
		return InvalidState("case is already closed")
	}
	switch Status(fir.Status) {
	case StatusUnderReview, StatusResolved:
		return nil
	}
	return InvalidState("cannot close a case in status %s", fir.Status)
}

// CanReopen checks that fir is currently closed.
func CanReopen(fir *models.FIRDetails) *Error {
	if !fir.Closed {
		return InvalidState("cannot reopen a case that is not closed")
	}
	return nil
}

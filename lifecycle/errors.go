package lifecycle

import (
	"errors"
	"fmt"
)

// Kind classifies a lifecycle failure so the HTTP layer can map it to a
// status code and the portals can branch on it.
type Kind string

// Failure kinds returned by the engine. Never silently downgraded.
const (
	KindPermissionDenied   Kind = "PermissionDenied"
	KindInvalidState       Kind = "InvalidState"
	KindOfficerNotEligible Kind = "OfficerNotEligible"
	KindInvalidStation     Kind = "InvalidStation"
	KindNotFound           Kind = "NotFound"
	KindConflict           Kind = "Conflict"
)

// Error is the typed failure every engine operation returns on denial.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// PermissionDenied builds a denial for an actor not authorized for the
// requested transition.
func PermissionDenied(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

// InvalidState builds a failure for a transition not legal from the current
// status/closed combination.
func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// OfficerNotEligible builds a failure for an unapproved or wrong-station
// target officer.
func OfficerNotEligible(format string, args ...interface{}) *Error {
	return &Error{Kind: KindOfficerNotEligible, Message: fmt.Sprintf(format, args...)}
}

// InvalidStation builds a failure for an unapproved target station.
func InvalidStation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidStation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a failure for an unknown case, officer or station id.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a failure for an exhausted optimistic-concurrency retry
// budget.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind from err, or "" for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

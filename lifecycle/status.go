package lifecycle

import "fmt"

// Status is the single authority for where a FIR sits in its lifecycle.
type Status string

// Lifecycle stages in forward order, plus the reopened re-entry marker.
const (
	StatusSubmitted          Status = "submitted"
	StatusAssigned           Status = "assigned"
	StatusInvestigating      Status = "investigating"
	StatusEvidenceCollection Status = "evidence_collection"
	StatusUnderReview        Status = "under_review"
	StatusResolved           Status = "resolved"

	// StatusReopened marks a case a station admin pulled back after closing.
	// It ranks alongside submitted for forward movement but is a distinct
	// marker so reports can tell a fresh filing from a reopened one.
	StatusReopened Status = "reopened"
)

var statusRank = map[Status]int{
	StatusSubmitted:          0,
	StatusReopened:           0,
	StatusAssigned:           1,
	StatusInvestigating:      2,
	StatusEvidenceCollection: 3,
	StatusUnderReview:        4,
	StatusResolved:           5,
}

// ParseStatus validates a raw status string from the wire.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := statusRank[s]; !ok {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Rank returns the forward-order position of s. Reopened shares rank 0 with
// submitted: both accept any forward target.
func (s Status) Rank() int {
	return statusRank[s]
}

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

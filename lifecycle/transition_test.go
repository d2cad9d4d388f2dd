package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/firvault/fir-vault-api/models"
)

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		name    string
		current string
		closed  bool
		target  Status
		allowed bool
	}{
		{"step forward", "submitted", false, StatusAssigned, true},
		{"jump forward", "submitted", false, StatusUnderReview, true},
		{"jump to resolved", "assigned", false, StatusResolved, true},
		{"in place", "investigating", false, StatusInvestigating, false},
		{"backward", "under_review", false, StatusAssigned, false},
		{"resolved is terminal for advance", "resolved", false, StatusResolved, false},
		{"reopened moves forward", "reopened", false, StatusInvestigating, true},
		{"reopened cannot become submitted", "reopened", false, StatusSubmitted, false},
		{"closed rejects everything", "under_review", true, StatusResolved, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fir := &models.FIRDetails{Status: tt.current, Closed: tt.closed}
			err := CanAdvance(fir, tt.target)
			if tt.allowed {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
				assert.Equal(t, KindInvalidState, err.Kind)
			}
		})
	}
}

func TestCanClose(t *testing.T) {
	for status, allowed := range map[string]bool{
		"submitted":           false,
		"assigned":            false,
		"investigating":       false,
		"evidence_collection": false,
		"under_review":        true,
		"resolved":            true,
		"reopened":            false,
	} {
		err := CanClose(&models.FIRDetails{Status: status})
		if allowed {
			assert.Nil(t, err, status)
		} else {
			assert.NotNil(t, err, status)
		}
	}

	err := CanClose(&models.FIRDetails{Status: "resolved", Closed: true})
	assert.NotNil(t, err)
}

func TestCanReopen(t *testing.T) {
	assert.Nil(t, CanReopen(&models.FIRDetails{Status: "resolved", Closed: true}))

	err := CanReopen(&models.FIRDetails{Status: "resolved", Closed: false})
	assert.NotNil(t, err)
	assert.Equal(t, KindInvalidState, err.Kind)
}

func TestCheckAssignment(t *testing.T) {
	approved := &models.OfficerDetails{HRMS: "HR100", StationID: "PS1", Approval: true}
	unapproved := &models.OfficerDetails{HRMS: "HR300", StationID: "PS1", Approval: false}
	foreign := &models.OfficerDetails{HRMS: "HR900", StationID: "PS2", Approval: true}
	unassigned := &models.FIRDetails{StationID: "PS1"}
	held := &models.FIRDetails{StationID: "PS1", OfficerHRMS: "HR200"}

	assert.Nil(t, CheckAssignment(stationAdmin, unassigned, approved))
	assert.Nil(t, CheckAssignment(rakesh, unassigned, approved))

	err := CheckAssignment(stationAdmin, unassigned, unapproved)
	assert.Equal(t, KindOfficerNotEligible, err.Kind)

	err = CheckAssignment(stationAdmin, unassigned, foreign)
	assert.Equal(t, KindOfficerNotEligible, err.Kind)

	// officers may not pick a colleague
	err = CheckAssignment(meera, unassigned, approved)
	assert.Equal(t, KindPermissionDenied, err.Kind)

	// officers may not grab a held case
	err = CheckAssignment(rakesh, held, approved)
	assert.Equal(t, KindInvalidState, err.Kind)

	// station admins may, the engine gates it behind the reassign flag
	assert.Nil(t, CheckAssignment(stationAdmin, held, approved))
}

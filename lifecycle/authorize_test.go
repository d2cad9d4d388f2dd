package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/firvault/fir-vault-api/models"
)

func TestAuthorizeMatrix(t *testing.T) {
	assigned := &models.FIRDetails{Status: "investigating", StationID: "PS1", OfficerHRMS: "HR100"}
	unassigned := &models.FIRDetails{Status: "submitted", StationID: "PS1"}

	tests := []struct {
		name    string
		p       Principal
		action  Action
		fir     *models.FIRDetails
		allowed bool
	}{
		{"citizen files", citizen, ActionFile, nil, true},
		{"officer cannot file", rakesh, ActionFile, nil, false},
		{"station admin cannot file", stationAdmin, ActionFile, nil, false},
		{"system admin cannot file", systemAdmin, ActionFile, nil, false},

		{"station admin assigns", stationAdmin, ActionAssign, unassigned, true},
		{"officer assigns at own station", rakesh, ActionAssign, unassigned, true},
		{"citizen cannot assign", citizen, ActionAssign, unassigned, false},
		{"system admin cannot assign", systemAdmin, ActionAssign, unassigned, false},
		{"foreign station admin cannot assign", Principal{Role: RoleStationAdmin, StationID: "PS2"}, ActionAssign, unassigned, false},
		{"foreign officer cannot assign", Principal{Role: RoleOfficer, OfficerHRMS: "HR900", StationID: "PS2"}, ActionAssign, unassigned, false},

		{"assigned officer advances", rakesh, ActionAdvance, assigned, true},
		{"other officer cannot advance", meera, ActionAdvance, assigned, false},
		{"officer cannot advance unassigned case", rakesh, ActionAdvance, unassigned, false},
		{"station admin advances", stationAdmin, ActionAdvance, assigned, true},
		{"foreign station admin cannot advance", Principal{Role: RoleStationAdmin, StationID: "PS2"}, ActionAdvance, assigned, false},
		{"citizen cannot advance", citizen, ActionAdvance, assigned, false},
		{"system admin cannot advance", systemAdmin, ActionAdvance, assigned, false},

		{"assigned officer closes", rakesh, ActionClose, assigned, true},
		{"station admin closes", stationAdmin, ActionClose, assigned, true},
		{"other officer cannot close", meera, ActionClose, assigned, false},
		{"citizen cannot close", citizen, ActionClose, assigned, false},

		{"station admin reopens", stationAdmin, ActionReopen, assigned, true},
		{"system admin reopens", systemAdmin, ActionReopen, assigned, true},
		{"foreign station admin cannot reopen", Principal{Role: RoleStationAdmin, StationID: "PS2"}, ActionReopen, assigned, false},
		{"assigned officer cannot reopen", rakesh, ActionReopen, assigned, false},
		{"citizen cannot reopen", citizen, ActionReopen, assigned, false},

		{"assigned officer links criminal", rakesh, ActionLinkCriminal, assigned, true},
		{"station admin links criminal", stationAdmin, ActionLinkCriminal, assigned, true},
		{"other officer cannot link criminal", meera, ActionLinkCriminal, assigned, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.p, tt.action, tt.fir)
			if tt.allowed {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
				assert.Equal(t, KindPermissionDenied, err.Kind)
			}
		})
	}
}

package lifecycle

import (
	"github.com/firvault/fir-vault-api/models"
)

// Authorize decides whether principal may perform action on the given case.
// A nil return means allow; otherwise the returned *Error carries
// PermissionDenied and the reason. The engine performs no mutation on denial.
//
// The matrix, one role set per action:
//
//	file           citizen
//	assign         station admin of the case's station, or an officer of
//	               that station (self-assign only, enforced by the
//	               assignment policy)
//	advance        the assigned officer, or the station admin
//	close          the assigned officer, or the station admin
//	reopen         the station admin, or a system admin
//	link_criminal  the assigned officer, or the station admin
func Authorize(p Principal, action Action, fir *models.FIRDetails) *Error {
	switch action {
	case ActionFile:
		if p.Role != RoleCitizen {
			return PermissionDenied("only citizens may file a FIR, got role %s", p.Role)
		}
		return nil

	case ActionAssign:
		switch p.Role {
		case RoleStationAdmin:
			if p.StationID != fir.StationID {
				return PermissionDenied("station admin of %s cannot assign cases of station %s", p.StationID, fir.StationID)
			}
			return nil
		case RoleOfficer:
			if p.StationID != fir.StationID {
				return PermissionDenied("officer of station %s cannot assign cases of station %s", p.StationID, fir.StationID)
			}
			return nil
		}
		return PermissionDenied("role %s may not assign officers", p.Role)

	case ActionAdvance, ActionClose, ActionLinkCriminal:
		switch p.Role {
		case RoleOfficer:
			if fir.OfficerHRMS == "" || p.OfficerHRMS != fir.OfficerHRMS {
				return PermissionDenied("officer %s is not assigned to this case", p.OfficerHRMS)
			}
			return nil
		case RoleStationAdmin:
			if p.StationID != fir.StationID {
				return PermissionDenied("station admin of %s cannot act on cases of station %s", p.StationID, fir.StationID)
			}
			return nil
		}
		return PermissionDenied("role %s may not perform %s", p.Role, action)

	case ActionReopen:
		switch p.Role {
		case RoleStationAdmin:
			if p.StationID != fir.StationID {
				return PermissionDenied("station admin of %s cannot reopen cases of station %s", p.StationID, fir.StationID)
			}
			return nil
		case RoleSystemAdmin:
			return nil
		}
		return PermissionDenied("role %s may not reopen cases", p.Role)
	}

	return PermissionDenied("unknown action %s", action)
}

package lifecycle

import (
	"github.com/firvault/fir-vault-api/models"
)

// CheckAssignment applies the assignment policy: the target officer must be
// approved and belong to the case's station, and an officer principal may
// only assign themselves to a case nobody holds yet. Station admins may
// assign or reassign any officer of their station.
func CheckAssignment(p Principal, fir *models.FIRDetails, officer *models.OfficerDetails) *Error {
	if !officer.Approval {
		return OfficerNotEligible("officer %s is not approved", officer.HRMS)
	}
	if officer.StationID != fir.StationID {
		return OfficerNotEligible("officer %s belongs to station %s, case belongs to %s", officer.HRMS, officer.StationID, fir.StationID)
	}

	if p.Role == RoleOfficer {
		if p.OfficerHRMS != officer.HRMS {
			return PermissionDenied("officers may only assign themselves")
		}
		if fir.OfficerHRMS != "" {
			return InvalidState("case is already assigned to officer %s", fir.OfficerHRMS)
		}
	}
	return nil
}

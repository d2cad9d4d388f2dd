package lifecycle

// Role is the acting role invoking a transition.
type Role string

// The four roles the portals authenticate as.
const (
	RoleCitizen      Role = "citizen"
	RoleOfficer      Role = "officer"
	RoleStationAdmin Role = "station_admin"
	RoleSystemAdmin  Role = "system_admin"
)

// ParseRole validates a raw role string from an account record.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCitizen, RoleOfficer, RoleStationAdmin, RoleSystemAdmin:
		return Role(raw), true
	}
	return "", false
}

// Principal is the acting identity behind a request. AccountID is always
// set; OfficerHRMS and StationID are populated per role.
type Principal struct {
	Role        Role
	AccountID   string
	OfficerHRMS string // role officer
	StationID   string // roles officer and station_admin
}

// Action is a requested lifecycle transition, used by the authorizer to
// pattern-match the role/transition matrix exhaustively.
type Action string

// The engine's mutating operations.
const (
	ActionFile         Action = "file"
	ActionAssign       Action = "assign"
	ActionAdvance      Action = "advance"
	ActionClose        Action = "close"
	ActionReopen       Action = "reopen"
	ActionLinkCriminal Action = "link_criminal"
)

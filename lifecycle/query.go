package lifecycle

import (
	"sort"
	"strings"

	"github.com/firvault/fir-vault-api/models"
)

// Read-side projections consumed by the three portals. All of them are pure
// functions over a snapshot of cases and never touch the engine's mutating
// path; handlers may serve them from a listing refreshed after each write.

// PendingFor returns the station's cases waiting for an officer: unassigned
// and not closed.
func PendingFor(firs []models.FIR, stationID string) []models.FIR {
	out := []models.FIR{}
	for _, f := range firs {
		if f.Details.StationID == stationID && f.Details.OfficerHRMS == "" && !f.Details.Closed {
			out = append(out, f)
		}
	}
	return out
}

// ActiveFor returns the officer's open work queue: cases they hold that are
// neither resolved nor closed.
func ActiveFor(firs []models.FIR, hrms string) []models.FIR {
	out := []models.FIR{}
	for _, f := range firs {
		if f.Details.OfficerHRMS == hrms && !f.Details.Closed && f.Details.Status != StatusResolved.String() {
			out = append(out, f)
		}
	}
	return out
}

// ResolvedFor returns the officer's finished cases, closed or not.
func ResolvedFor(firs []models.FIR, hrms string) []models.FIR {
	out := []models.FIR{}
	for _, f := range firs {
		if f.Details.OfficerHRMS == hrms && f.Details.Status == StatusResolved.String() {
			out = append(out, f)
		}
	}
	return out
}

// Search filters cases by a case-insensitive substring match over the case
// id, incident location and description.
func Search(firs []models.FIR, query string) []models.FIR {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return firs
	}
	out := []models.FIR{}
	for _, f := range firs {
		if strings.Contains(strings.ToLower(f.ID), q) ||
			strings.Contains(strings.ToLower(f.Details.IncidentLocation), q) ||
			strings.Contains(strings.ToLower(f.Details.Description), q) {
			out = append(out, f)
		}
	}
	return out
}

// SortByComplainDate orders cases by complaint date, oldest first when
// ascending is true.
func SortByComplainDate(firs []models.FIR, ascending bool) {
	sort.SliceStable(firs, func(i, j int) bool {
		if ascending {
			return firs[i].Details.ComplainDate < firs[j].Details.ComplainDate
		}
		return firs[i].Details.ComplainDate > firs[j].Details.ComplainDate
	})
}

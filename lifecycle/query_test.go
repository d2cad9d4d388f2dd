package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/firvault/fir-vault-api/models"
)

func sampleFIRs() []models.FIR {
	day := func(d int) primitive.DateTime {
		return primitive.NewDateTimeFromTime(time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC))
	}
	return []models.FIR{
		{ID: "f1", Details: models.FIRDetails{StationID: "PS1", Status: "submitted", ComplainDate: day(3), IncidentLocation: "100 Feet Road", Description: "stolen scooter"}},
		{ID: "f2", Details: models.FIRDetails{StationID: "PS1", Status: "investigating", OfficerHRMS: "HR100", ComplainDate: day(1), IncidentLocation: "MG Road", Description: "chain snatching"}},
		{ID: "f3", Details: models.FIRDetails{StationID: "PS1", Status: "resolved", OfficerHRMS: "HR100", ComplainDate: day(2), IncidentLocation: "Church Street"}},
		{ID: "f4", Details: models.FIRDetails{StationID: "PS1", Status: "resolved", Closed: true, OfficerHRMS: "HR100", ComplainDate: day(5)}},
		{ID: "f5", Details: models.FIRDetails{StationID: "PS2", Status: "submitted", ComplainDate: day(4), Description: "missing person"}},
		{ID: "f6", Details: models.FIRDetails{StationID: "PS1", Status: "reopened", ComplainDate: day(6)}},
	}
}

func idsOf(firs []models.FIR) []string {
	out := make([]string, len(firs))
	for i, f := range firs {
		out[i] = f.ID
	}
	return out
}

func TestPendingFor(t *testing.T) {
	// unassigned and open only, reopened cases included
	assert.Equal(t, []string{"f1", "f6"}, idsOf(PendingFor(sampleFIRs(), "PS1")))
	assert.Equal(t, []string{"f5"}, idsOf(PendingFor(sampleFIRs(), "PS2")))
	assert.Empty(t, PendingFor(sampleFIRs(), "PS3"))
}

func TestActiveFor(t *testing.T) {
	assert.Equal(t, []string{"f2"}, idsOf(ActiveFor(sampleFIRs(), "HR100")))
	assert.Empty(t, ActiveFor(sampleFIRs(), "HR200"))
}

func TestResolvedFor(t *testing.T) {
	// resolved cases count whether closed or not
	assert.Equal(t, []string{"f3", "f4"}, idsOf(ResolvedFor(sampleFIRs(), "HR100")))
}

func TestSearch(t *testing.T) {
	assert.Equal(t, []string{"f2"}, idsOf(Search(sampleFIRs(), "mg road")))
	assert.Equal(t, []string{"f1"}, idsOf(Search(sampleFIRs(), "SCOOTER")))
	assert.Equal(t, []string{"f5"}, idsOf(Search(sampleFIRs(), "f5")))
	assert.Len(t, Search(sampleFIRs(), ""), 6)
	assert.Empty(t, Search(sampleFIRs(), "no such thing"))
}

func TestSortByComplainDate(t *testing.T) {
	firs := sampleFIRs()
	SortByComplainDate(firs, true)
	assert.Equal(t, []string{"f2", "f3", "f1", "f5", "f4", "f6"}, idsOf(firs))

	SortByComplainDate(firs, false)
	assert.Equal(t, []string{"f6", "f4", "f5", "f1", "f3", "f2"}, idsOf(firs))
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"submitted", "assigned", "investigating", "evidence_collection", "under_review", "resolved", "reopened"} {
		s, err := ParseStatus(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}
	_, err := ParseStatus("pending")
	assert.Error(t, err)
}

func TestStatusRank(t *testing.T) {
	assert.Equal(t, StatusSubmitted.Rank(), StatusReopened.Rank())
	assert.Less(t, StatusAssigned.Rank(), StatusInvestigating.Rank())
	assert.Less(t, StatusUnderReview.Rank(), StatusResolved.Rank())
}

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"citizen", "officer", "station_admin", "system_admin"} {
		role, ok := ParseRole(raw)
		assert.True(t, ok)
		assert.Equal(t, Role(raw), role)
	}
	_, ok := ParseRole("admin")
	assert.False(t, ok)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("busy")))
	assert.Equal(t, Kind(""), KindOf(assert.AnError))
	assert.Equal(t, Kind(""), KindOf(nil))
}

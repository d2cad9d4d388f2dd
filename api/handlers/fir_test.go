package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firvault/fir-vault-api/api"
	"github.com/firvault/fir-vault-api/databases"
	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
)

// fakeCaseStore is a map-backed lifecycle.CaseStore for handler tests.
type fakeCaseStore struct {
	seq   int
	cases map[string]models.FIR
}

func newFakeCaseStore() *fakeCaseStore {
	return &fakeCaseStore{cases: map[string]models.FIR{}}
}

func (s *fakeCaseStore) Get(_ context.Context, id string) (*models.FIR, error) {
	fir, ok := s.cases[id]
	if !ok {
		return nil, lifecycle.NotFound("case %s does not exist", id)
	}
	return &fir, nil
}

func (s *fakeCaseStore) Insert(_ context.Context, details models.FIRDetails) (*models.FIR, error) {
	s.seq++
	fir := models.FIR{ID: fmt.Sprintf("case-%d", s.seq), Details: details}
	s.cases[fir.ID] = fir
	return &fir, nil
}

func (s *fakeCaseStore) Put(_ context.Context, id string, expectedVersion int32, details models.FIRDetails) (*models.FIR, error) {
	fir, ok := s.cases[id]
	if !ok {
		return nil, lifecycle.NotFound("case %s does not exist", id)
	}
	if fir.Version != expectedVersion {
		return nil, lifecycle.ErrStale
	}
	fir.Details = details
	fir.Version = expectedVersion + 1
	s.cases[id] = fir
	return &fir, nil
}

func (s *fakeCaseStore) List(_ context.Context) ([]models.FIR, error) {
	out := make([]models.FIR, 0, len(s.cases))
	for _, fir := range s.cases {
		out = append(out, fir)
	}
	return out, nil
}

type fakeOfficers map[string]models.Officer

func (m fakeOfficers) ByHRMS(_ context.Context, hrms string) (*models.Officer, error) {
	officer, ok := m[hrms]
	if !ok {
		return nil, lifecycle.NotFound("officer %s does not exist", hrms)
	}
	return &officer, nil
}

type fakeStations map[string]models.Station

func (m fakeStations) BySID(_ context.Context, sid string) (*models.Station, error) {
	station, ok := m[sid]
	if !ok {
		return nil, lifecycle.NotFound("station %s does not exist", sid)
	}
	return &station, nil
}

// fakeAccountDB resolves principals by email.
type fakeAccountDB map[string]models.Account

func (m fakeAccountDB) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) (*models.Account, error) {
	email, _ := filter.(bson.M)["account.email"].(string)
	account, ok := m[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &account, nil
}

func (m fakeAccountDB) Find(_ context.Context, _ interface{}, _ ...*options.FindOptions) ([]models.Account, error) {
	return nil, nil
}

func (m fakeAccountDB) InsertOne(_ context.Context, _ interface{}, _ ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	return nil, nil
}

// fakeFIRDB serves a canned listing for the query handlers and records the
// find options each call carried.
type fakeFIRDB struct {
	firs []models.FIR

	mu    sync.Mutex
	skips []int64
}

func (f *fakeFIRDB) FindOne(_ context.Context, _ interface{}, _ ...*options.FindOneOptions) (*models.FIR, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeFIRDB) Find(_ context.Context, _ interface{}, opts ...*options.FindOptions) ([]models.FIR, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, opt := range opts {
		if opt.Skip != nil {
			f.skips = append(f.skips, *opt.Skip)
		}
	}
	return f.firs, nil
}

func (f *fakeFIRDB) InsertOne(_ context.Context, _ interface{}, _ ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	return nil, nil
}

func testFIRHandler(store *fakeCaseStore) FIR {
	accounts := fakeAccountDB{
		"citizen@example.in": {ID: "acc-1", Details: models.AccountDetails{Email: "citizen@example.in", Role: "citizen"}},
		"rakesh@ps1.in":      {ID: "acc-2", Details: models.AccountDetails{Email: "rakesh@ps1.in", Role: "officer", OfficerHRMS: "HR100", StationID: "PS1"}},
		"admin@ps1.in":       {ID: "acc-3", Details: models.AccountDetails{Email: "admin@ps1.in", Role: "station_admin", StationID: "PS1"}},
	}
	officers := fakeOfficers{
		"HR100": {ID: "o1", Details: models.OfficerDetails{HRMS: "HR100", StationID: "PS1", Approval: true}},
	}
	stations := fakeStations{
		"PS1": {ID: "s1", Details: models.StationDetails{SID: "PS1", Approval: true}},
	}
	return FIR{
		DB:     &fakeFIRDB{},
		ADB:    accounts,
		Engine: lifecycle.New(store, officers, stations),
	}
}

func authedRequest(method, target, email string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(api.WithUserEmail(req.Context(), email))
}

func TestFileFIRHandler(t *testing.T) {
	f := testFIRHandler(newFakeCaseStore())

	body, _ := json.Marshal(models.FileFIRRequest{
		StationID:        "PS1",
		IncidentDate:     "2026-02-28T22:15:00Z",
		IncidentLocation: "100 Feet Road",
		Description:      "stolen two wheeler",
	})
	req := authedRequest("POST", "/api/v1/fir", "citizen@example.in", body)
	rr := httptest.NewRecorder()
	f.FileFIRHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var fir models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fir))
	assert.Equal(t, "submitted", fir.Details.Status)
	assert.Equal(t, "acc-1", fir.Details.VictimID)
}

func TestFileFIRHandlerNoPrincipal(t *testing.T) {
	f := testFIRHandler(newFakeCaseStore())

	body, _ := json.Marshal(models.FileFIRRequest{StationID: "PS1", IncidentDate: "2026-02-28T22:15:00Z"})
	req := httptest.NewRequest("POST", "/api/v1/fir", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	f.FileFIRHandler(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestFileFIRHandlerOfficerForbidden(t *testing.T) {
	f := testFIRHandler(newFakeCaseStore())

	body, _ := json.Marshal(models.FileFIRRequest{StationID: "PS1", IncidentDate: "2026-02-28T22:15:00Z"})
	req := authedRequest("POST", "/api/v1/fir", "rakesh@ps1.in", body)
	rr := httptest.NewRecorder()
	f.FileFIRHandler(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)

	var lerr lifecycle.Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lerr))
	assert.Equal(t, lifecycle.KindPermissionDenied, lerr.Kind)
}

func TestAssignOfficerHandler(t *testing.T) {
	store := newFakeCaseStore()
	f := testFIRHandler(store)
	fir, err := store.Insert(context.Background(), models.FIRDetails{Status: "submitted", StationID: "PS1"})
	require.NoError(t, err)

	req := authedRequest("POST", "/api/v1/fir/"+fir.ID+"/assign/HR100", "admin@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID, "officer_hrms": "HR100"})
	rr := httptest.NewRecorder()
	f.AssignOfficerHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var updated models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "HR100", updated.Details.OfficerHRMS)
	assert.Equal(t, "assigned", updated.Details.Status)
}

func TestAssignOfficerHandlerAlreadyAssigned(t *testing.T) {
	store := newFakeCaseStore()
	f := testFIRHandler(store)
	fir, err := store.Insert(context.Background(), models.FIRDetails{Status: "assigned", StationID: "PS1", OfficerHRMS: "HR200"})
	require.NoError(t, err)

	req := authedRequest("POST", "/api/v1/fir/"+fir.ID+"/assign/HR100", "admin@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID, "officer_hrms": "HR100"})
	rr := httptest.NewRecorder()
	f.AssignOfficerHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAssignOfficerHandlerReassign(t *testing.T) {
	store := newFakeCaseStore()
	f := testFIRHandler(store)
	fir, err := store.Insert(context.Background(), models.FIRDetails{Status: "investigating", StationID: "PS1", OfficerHRMS: "HR200"})
	require.NoError(t, err)

	req := authedRequest("POST", "/api/v1/fir/"+fir.ID+"/assign/HR100?reassign=true", "admin@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID, "officer_hrms": "HR100"})
	rr := httptest.NewRecorder()
	f.AssignOfficerHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var updated models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "HR100", updated.Details.OfficerHRMS)
	assert.Equal(t, "investigating", updated.Details.Status)
}

func TestAdvanceStatusHandlerBadStatus(t *testing.T) {
	f := testFIRHandler(newFakeCaseStore())

	req := authedRequest("POST", "/api/v1/fir/case-1/status/bogus", "admin@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": "case-1", "status": "bogus"})
	rr := httptest.NewRecorder()
	f.AdvanceStatusHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdvanceStatusHandlerBackwardConflict(t *testing.T) {
	store := newFakeCaseStore()
	f := testFIRHandler(store)
	fir, err := store.Insert(context.Background(), models.FIRDetails{Status: "under_review", StationID: "PS1", OfficerHRMS: "HR100"})
	require.NoError(t, err)

	req := authedRequest("POST", "/api/v1/fir/"+fir.ID+"/status/assigned", "rakesh@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID, "status": "assigned"})
	rr := httptest.NewRecorder()
	f.AdvanceStatusHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)

	var lerr lifecycle.Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lerr))
	assert.Equal(t, lifecycle.KindInvalidState, lerr.Kind)
}

func TestCloseAndReopenHandlers(t *testing.T) {
	store := newFakeCaseStore()
	f := testFIRHandler(store)
	fir, err := store.Insert(context.Background(), models.FIRDetails{Status: "under_review", StationID: "PS1", OfficerHRMS: "HR100"})
	require.NoError(t, err)

	req := authedRequest("POST", "/api/v1/fir/"+fir.ID+"/close", "rakesh@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID})
	rr := httptest.NewRecorder()
	f.CloseFIRHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var closed models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &closed))
	assert.True(t, closed.Details.Closed)
	assert.Equal(t, "resolved", closed.Details.Status)

	// the assigned officer may not reopen, only the station admin
	req = authedRequest("POST", "/api/v1/fir/"+fir.ID+"/reopen", "rakesh@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID})
	rr = httptest.NewRecorder()
	f.ReopenFIRHandler(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = authedRequest("POST", "/api/v1/fir/"+fir.ID+"/reopen", "admin@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID})
	rr = httptest.NewRecorder()
	f.ReopenFIRHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var reopened models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reopened))
	assert.False(t, reopened.Details.Closed)
	assert.Equal(t, "reopened", reopened.Details.Status)
}

func TestLinkCriminalHandler(t *testing.T) {
	store := newFakeCaseStore()
	f := testFIRHandler(store)
	fir, err := store.Insert(context.Background(), models.FIRDetails{Status: "investigating", StationID: "PS1", OfficerHRMS: "HR100"})
	require.NoError(t, err)

	req := authedRequest("POST", "/api/v1/fir/"+fir.ID+"/criminal/crim-9", "rakesh@ps1.in", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": fir.ID, "criminal_id": "crim-9"})
	rr := httptest.NewRecorder()
	f.LinkCriminalHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var linked models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &linked))
	assert.Equal(t, "crim-9", linked.Details.CriminalID)
}

func TestFIRByIDHandlerNotFound(t *testing.T) {
	f := testFIRHandler(newFakeCaseStore())

	req := httptest.NewRequest("GET", "/api/v1/fir/ghost", nil)
	req = mux.SetURLVars(req, map[string]string{"fir_id": "ghost"})
	rr := httptest.NewRecorder()
	f.FIRByIDHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFIRHandlerSearchAndSort(t *testing.T) {
	day := func(d int) primitive.DateTime {
		return primitive.NewDateTimeFromTime(time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC))
	}
	f := testFIRHandler(newFakeCaseStore())
	f.DB = &fakeFIRDB{firs: []models.FIR{
		{ID: "f1", Details: models.FIRDetails{Description: "stolen scooter", ComplainDate: day(3)}},
		{ID: "f2", Details: models.FIRDetails{Description: "chain snatching", ComplainDate: day(1)}},
		{ID: "f3", Details: models.FIRDetails{Description: "stolen cycle", ComplainDate: day(2)}},
	}}

	req := httptest.NewRequest("GET", "/api/v1/firs?limit=10&search=stolen", nil)
	rr := httptest.NewRecorder()
	f.FIRHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var firs []models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &firs))
	require.Len(t, firs, 2)
	assert.Equal(t, "f3", firs[0].ID)
	assert.Equal(t, "f1", firs[1].ID)

	req = httptest.NewRequest("GET", "/api/v1/firs?limit=10&search=stolen&sort=desc", nil)
	rr = httptest.NewRecorder()
	f.FIRHandler(rr, req)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &firs))
	require.Len(t, firs, 2)
	assert.Equal(t, "f1", firs[0].ID)
}

func TestFIRHandlerPaginationPerRequest(t *testing.T) {
	f := testFIRHandler(newFakeCaseStore())
	db := &fakeFIRDB{}
	f.DB = db

	// each request's skip derives from its own page param, even when the
	// listings run concurrently
	pages := []int{0, 2, 7}
	var wg sync.WaitGroup
	for _, page := range pages {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/firs?limit=5&page=%d", page), nil)
			rr := httptest.NewRecorder()
			f.FIRHandler(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code)
		}(page)
	}
	wg.Wait()

	require.Len(t, db.skips, 3)
	assert.ElementsMatch(t, []int64{0, 10, 35}, db.skips)
}

func TestProjectionHandlers(t *testing.T) {
	f := testFIRHandler(newFakeCaseStore())
	f.DB = &fakeFIRDB{firs: []models.FIR{
		{ID: "f1", Details: models.FIRDetails{StationID: "PS1", Status: "submitted"}},
		{ID: "f2", Details: models.FIRDetails{StationID: "PS1", Status: "investigating", OfficerHRMS: "HR100"}},
		{ID: "f3", Details: models.FIRDetails{StationID: "PS1", Status: "resolved", OfficerHRMS: "HR100"}},
	}}

	req := httptest.NewRequest("GET", "/api/v1/firs/station/PS1/pending", nil)
	req = mux.SetURLVars(req, map[string]string{"station_id": "PS1"})
	rr := httptest.NewRecorder()
	f.PendingByStationHandler(rr, req)

	var firs []models.FIR
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &firs))
	require.Len(t, firs, 1)
	assert.Equal(t, "f1", firs[0].ID)

	req = httptest.NewRequest("GET", "/api/v1/firs/officer/HR100/active", nil)
	req = mux.SetURLVars(req, map[string]string{"officer_hrms": "HR100"})
	rr = httptest.NewRecorder()
	f.ActiveByOfficerHandler(rr, req)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &firs))
	require.Len(t, firs, 1)
	assert.Equal(t, "f2", firs[0].ID)

	req = httptest.NewRequest("GET", "/api/v1/firs/officer/HR100/resolved", nil)
	req = mux.SetURLVars(req, map[string]string{"officer_hrms": "HR100"})
	rr = httptest.NewRecorder()
	f.ResolvedByOfficerHandler(rr, req)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &firs))
	require.Len(t, firs, 1)
	assert.Equal(t, "f3", firs[0].ID)
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/firvault/fir-vault-api/api"
	"github.com/firvault/fir-vault-api/config"
	"github.com/firvault/fir-vault-api/databases"
	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
)

// FIR exported for testing purposes
type FIR struct {
	DB     databases.FIRDatabase
	ADB    databases.AccountDatabase
	Engine *lifecycle.Engine
}

// principal resolves the authenticated account on the request into the
// acting principal the engine authorizes against.
func (f FIR) principal(r *http.Request) (lifecycle.Principal, error) {
	email, ok := api.UserEmailFromContext(r.Context())
	if !ok {
		return lifecycle.Principal{}, errors.New("no authenticated account on request")
	}
	account, err := f.ADB.FindOne(r.Context(), bson.M{"account.email": email})
	if err != nil {
		return lifecycle.Principal{}, fmt.Errorf("failed to load account %s: %w", email, err)
	}
	role, ok := lifecycle.ParseRole(account.Details.Role)
	if !ok {
		return lifecycle.Principal{}, fmt.Errorf("account %s has unknown role %q", email, account.Details.Role)
	}
	return lifecycle.Principal{
		Role:        role,
		AccountID:   account.ID,
		OfficerHRMS: account.Details.OfficerHRMS,
		StationID:   account.Details.StationID,
	}, nil
}

// engineError writes a lifecycle failure as the structured {kind, message}
// body with the HTTP status the kind maps to.
func engineError(w http.ResponseWriter, err error) {
	var lerr *lifecycle.Error
	if !errors.As(err, &lerr) {
		config.ErrorStatus("case operation failed", http.StatusInternalServerError, w, err)
		return
	}
	var status int
	switch lerr.Kind {
	case lifecycle.KindPermissionDenied:
		status = http.StatusForbidden
	case lifecycle.KindNotFound:
		status = http.StatusNotFound
	case lifecycle.KindInvalidState, lifecycle.KindConflict:
		status = http.StatusConflict
	case lifecycle.KindOfficerNotEligible, lifecycle.KindInvalidStation:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}
	zap.S().Warnw("case operation denied", "kind", lerr.Kind, "message", lerr.Message)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(lerr)
}

func writeFIR(w http.ResponseWriter, fir *models.FIR, status int) {
	b, err := json.Marshal(fir)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}

// FileFIRHandler creates a new FIR for the acting citizen
func (f FIR) FileFIRHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody models.FileFIRRequest
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	p, err := f.principal(r)
	if err != nil {
		config.ErrorStatus("failed to resolve principal", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	fir, err := f.Engine.FileCase(ctx, p, requestBody)
	if err != nil {
		engineError(w, err)
		return
	}
	writeFIR(w, fir, http.StatusCreated)
}

// FIRByIDHandler returns a FIR by ID
func (f FIR) FIRByIDHandler(w http.ResponseWriter, r *http.Request) {
	firID := mux.Vars(r)["fir_id"]

	zap.S().Debugf("fir_id: %v", firID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	fir, err := f.Engine.Cases.Get(ctx, firID)
	if err != nil {
		engineError(w, err)
		return
	}
	writeFIR(w, fir, http.StatusOK)
}

// AssignOfficerHandler assigns an officer to a FIR. Station admins may pass
// ?reassign=true to move a held case to another officer.
func (f FIR) AssignOfficerHandler(w http.ResponseWriter, r *http.Request) {
	firID := mux.Vars(r)["fir_id"]
	hrms := mux.Vars(r)["officer_hrms"]
	reassign, _ := strconv.ParseBool(r.URL.Query().Get("reassign"))

	p, err := f.principal(r)
	if err != nil {
		config.ErrorStatus("failed to resolve principal", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	fir, err := f.Engine.AssignOfficer(ctx, p, firID, hrms, reassign)
	if err != nil {
		engineError(w, err)
		return
	}
	writeFIR(w, fir, http.StatusOK)
}

// AdvanceStatusHandler moves a FIR to a forward lifecycle stage
func (f FIR) AdvanceStatusHandler(w http.ResponseWriter, r *http.Request) {
	firID := mux.Vars(r)["fir_id"]

	target, err := lifecycle.ParseStatus(mux.Vars(r)["status"])
	if err != nil {
		config.ErrorStatus("invalid status value", http.StatusBadRequest, w, err)
		return
	}

	p, err := f.principal(r)
	if err != nil {
		config.ErrorStatus("failed to resolve principal", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	fir, err := f.Engine.AdvanceStatus(ctx, p, firID, target)
	if err != nil {
		engineError(w, err)
		return
	}
	writeFIR(w, fir, http.StatusOK)
}

// CloseFIRHandler closes a reviewed or resolved FIR
func (f FIR) CloseFIRHandler(w http.ResponseWriter, r *http.Request) {
	firID := mux.Vars(r)["fir_id"]

	p, err := f.principal(r)
	if err != nil {
		config.ErrorStatus("failed to resolve principal", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	fir, err := f.Engine.CloseCase(ctx, p, firID)
	if err != nil {
		engineError(w, err)
		return
	}
	writeFIR(w, fir, http.StatusOK)
}

// ReopenFIRHandler reopens a closed FIR
func (f FIR) ReopenFIRHandler(w http.ResponseWriter, r *http.Request) {
	firID := mux.Vars(r)["fir_id"]

	p, err := f.principal(r)
	if err != nil {
		config.ErrorStatus("failed to resolve principal", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	fir, err := f.Engine.ReopenCase(ctx, p, firID)
	if err != nil {
		engineError(w, err)
		return
	}
	writeFIR(w, fir, http.StatusOK)
}

// LinkCriminalHandler attaches a criminal record to a FIR
func (f FIR) LinkCriminalHandler(w http.ResponseWriter, r *http.Request) {
	firID := mux.Vars(r)["fir_id"]
	criminalID := mux.Vars(r)["criminal_id"]

	p, err := f.principal(r)
	if err != nil {
		config.ErrorStatus("failed to resolve principal", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	fir, err := f.Engine.LinkCriminal(ctx, p, firID, criminalID)
	if err != nil {
		engineError(w, err)
		return
	}
	writeFIR(w, fir, http.StatusOK)
}

// FIRHandler returns all FIRs, filtered server-side by station, officer,
// status and closed, refined by free-text search and complaint-date sort
func (f FIR) FIRHandler(w http.ResponseWriter, r *http.Request) {
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
	}
	limit64 := int64(Limit)
	page := getPage(r)
	skip64 := int64(page * Limit)

	filter := bson.M{}
	if stationID := r.URL.Query().Get("stationID"); stationID != "" {
		filter["fir.stationID"] = stationID
	}
	if hrms := r.URL.Query().Get("officerHRMS"); hrms != "" {
		filter["fir.officerHRMS"] = hrms
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["fir.status"] = status
	}
	if closed := r.URL.Query().Get("closed"); closed != "" {
		closedB, cerr := strconv.ParseBool(closed)
		if cerr != nil {
			config.ErrorStatus("invalid closed value", http.StatusBadRequest, w, cerr)
			return
		}
		filter["fir.closed"] = closedB
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := f.DB.Find(ctx, filter, &options.FindOptions{Limit: &limit64, Skip: &skip64})
	if err != nil {
		config.ErrorStatus("failed to get firs", http.StatusNotFound, w, err)
		return
	}

	dbResp = lifecycle.Search(dbResp, r.URL.Query().Get("search"))
	lifecycle.SortByComplainDate(dbResp, r.URL.Query().Get("sort") != "desc")

	// Because the frontend requires that the data elements inside models.FIR exist, if
	// len == 0 then we will just return an empty data object
	if len(dbResp) == 0 {
		dbResp = []models.FIR{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PendingByStationHandler returns the station's unassigned open cases
func (f FIR) PendingByStationHandler(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["station_id"]

	f.projection(w, r, bson.M{"fir.stationID": stationID}, func(firs []models.FIR) []models.FIR {
		return lifecycle.PendingFor(firs, stationID)
	})
}

// ActiveByOfficerHandler returns the officer's open work queue
func (f FIR) ActiveByOfficerHandler(w http.ResponseWriter, r *http.Request) {
	hrms := mux.Vars(r)["officer_hrms"]

	f.projection(w, r, bson.M{"fir.officerHRMS": hrms}, func(firs []models.FIR) []models.FIR {
		return lifecycle.ActiveFor(firs, hrms)
	})
}

// ResolvedByOfficerHandler returns the officer's resolved cases
func (f FIR) ResolvedByOfficerHandler(w http.ResponseWriter, r *http.Request) {
	hrms := mux.Vars(r)["officer_hrms"]

	f.projection(w, r, bson.M{"fir.officerHRMS": hrms}, func(firs []models.FIR) []models.FIR {
		return lifecycle.ResolvedFor(firs, hrms)
	})
}

func (f FIR) projection(w http.ResponseWriter, r *http.Request, filter bson.M, project func([]models.FIR) []models.FIR) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := f.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get firs", http.StatusNotFound, w, err)
		return
	}

	dbResp = project(dbResp)
	lifecycle.SortByComplainDate(dbResp, r.URL.Query().Get("sort") != "desc")

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// getPage returns the page number from the request query params, defaulting
// to 0 when absent or unparseable
func getPage(r *http.Request) int {
	if page := r.URL.Query().Get("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil {
			zap.S().Warnf("page not set, using default of %v, err: %v", 0, err)
			return 0
		}
		return p
	}
	return 0
}

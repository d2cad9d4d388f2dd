package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/firvault/fir-vault-api/api"
	"github.com/firvault/fir-vault-api/config"
	"github.com/firvault/fir-vault-api/databases"
	"github.com/firvault/fir-vault-api/models"
)

// Officer exported for testing purposes
type Officer struct {
	DB databases.OfficerDatabase
}

// CreateOfficerHandler registers a new officer. Officers start unapproved
// and cannot be assigned work until a system admin approves them.
func (o Officer) CreateOfficerHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody models.OfficerDetails
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if requestBody.HRMS == "" || requestBody.StationID == "" {
		config.ErrorStatus("hrms and stationID are required", http.StatusBadRequest, w, errMissingFields)
		return
	}

	requestBody.Approval = false
	requestBody.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	requestBody.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	newOfficer := bson.M{
		"_id":     primitive.NewObjectID(),
		"officer": requestBody,
		"__v":     0,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := o.DB.InsertOne(ctx, newOfficer)
	if err != nil {
		config.ErrorStatus("failed to create officer", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Officer created successfully",
		"officer": newOfficer,
	})
}

// OfficerByHRMSHandler returns an officer by HRMS id
func (o Officer) OfficerByHRMSHandler(w http.ResponseWriter, r *http.Request) {
	hrms := mux.Vars(r)["officer_hrms"]

	zap.S().Debugf("officer_hrms: %v", hrms)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := o.DB.FindOne(ctx, bson.M{"officer.hrms": hrms})
	if err != nil {
		config.ErrorStatus("failed to get officer by hrms", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// OfficersByStationHandler returns all officers attached to a station
func (o Officer) OfficersByStationHandler(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["station_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := o.DB.Find(ctx, bson.M{"officer.stationID": stationID})
	if err != nil {
		config.ErrorStatus("failed to get officers by station", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Officer{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

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

// Station exported for testing purposes
type Station struct {
	DB databases.StationDatabase
}

// CreateStationHandler registers a new station. Stations start unapproved;
// citizens cannot file against them until a system admin approves.
func (s Station) CreateStationHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody models.StationDetails
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if requestBody.SID == "" {
		config.ErrorStatus("sid is required", http.StatusBadRequest, w, errMissingFields)
		return
	}

	requestBody.Approval = false
	requestBody.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	requestBody.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	newStation := bson.M{
		"_id":     primitive.NewObjectID(),
		"station": requestBody,
		"__v":     0,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := s.DB.InsertOne(ctx, newStation)
	if err != nil {
		config.ErrorStatus("failed to create station", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Station created successfully",
		"station": newStation,
	})
}

// StationBySIDHandler returns a station by station id
func (s Station) StationBySIDHandler(w http.ResponseWriter, r *http.Request) {
	sid := mux.Vars(r)["station_id"]

	zap.S().Debugf("station_id: %v", sid)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindOne(ctx, bson.M{"station.sid": sid})
	if err != nil {
		config.ErrorStatus("failed to get station by sid", http.StatusNotFound, w, err)
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

// StationHandler returns all stations
func (s Station) StationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.Find(ctx, bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get stations", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Station{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

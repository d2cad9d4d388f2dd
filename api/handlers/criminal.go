package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/firvault/fir-vault-api/api"
	"github.com/firvault/fir-vault-api/config"
	"github.com/firvault/fir-vault-api/databases"
)

// Criminal exported for testing purposes
type Criminal struct {
	DB databases.CriminalDatabase
}

// CreateCriminalHandler creates a new criminal record
func (c Criminal) CreateCriminalHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Name        string `json:"name"`
		Alias       string `json:"alias"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if requestBody.Name == "" {
		config.ErrorStatus("name is required", http.StatusBadRequest, w, errMissingFields)
		return
	}

	oid := primitive.NewObjectID()
	newCriminal := bson.M{
		"_id": oid,
		"criminal": bson.M{
			"name":        requestBody.Name,
			"alias":       requestBody.Alias,
			"description": requestBody.Description,
			"createdAt":   primitive.NewDateTimeFromTime(time.Now()),
			"updatedAt":   primitive.NewDateTimeFromTime(time.Now()),
		},
		"__v": 0,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := c.DB.InsertOne(ctx, newCriminal)
	if err != nil {
		config.ErrorStatus("failed to create criminal", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Criminal created successfully",
		"_id":      oid.Hex(),
		"criminal": newCriminal["criminal"],
	})
}

// CriminalByIDHandler returns a criminal record by ID
func (c Criminal) CriminalByIDHandler(w http.ResponseWriter, r *http.Request) {
	criminalID := mux.Vars(r)["criminal_id"]

	cID, err := primitive.ObjectIDFromHex(criminalID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get criminal by ID", http.StatusNotFound, w, err)
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

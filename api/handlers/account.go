package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/firvault/fir-vault-api/api"
	"github.com/firvault/fir-vault-api/config"
	"github.com/firvault/fir-vault-api/databases"
	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
)

var errMissingFields = errors.New("missing required fields")

// Account exported for testing purposes
type Account struct {
	DB databases.AccountDatabase
}

type createAccountRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	OfficerHRMS string `json:"officerHRMS"`
	StationID   string `json:"stationID"`
}

// CreateAccountHandler registers a new account with a bcrypt-hashed password
func (a Account) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if requestBody.Email == "" || requestBody.Password == "" {
		config.ErrorStatus("email and password are required", http.StatusBadRequest, w, errMissingFields)
		return
	}
	role, ok := lifecycle.ParseRole(requestBody.Role)
	if !ok {
		config.ErrorStatus("unknown role", http.StatusBadRequest, w, errors.New(requestBody.Role))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// reject duplicate emails
	if existing, _ := a.DB.FindOne(ctx, bson.M{"account.email": requestBody.Email}); existing != nil {
		config.ErrorStatus("email already registered", http.StatusConflict, w, errors.New(requestBody.Email))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(requestBody.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	details := models.AccountDetails{
		Email:       requestBody.Email,
		Name:        requestBody.Name,
		Password:    string(hashed),
		Role:        string(role),
		OfficerHRMS: requestBody.OfficerHRMS,
		StationID:   requestBody.StationID,
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
		UpdatedAt:   primitive.NewDateTimeFromTime(time.Now()),
	}

	oid := primitive.NewObjectID()
	_, err = a.DB.InsertOne(ctx, bson.M{
		"_id":     oid,
		"account": details,
		"__v":     0,
	})
	if err != nil {
		config.ErrorStatus("failed to create account", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Account created successfully",
		"_id":     oid.Hex(),
		"email":   details.Email,
		"role":    details.Role,
	})
}

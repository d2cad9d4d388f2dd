package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/firvault/fir-vault-api/api"
	"github.com/firvault/fir-vault-api/config"
	"github.com/firvault/fir-vault-api/databases"
	"github.com/firvault/fir-vault-api/lifecycle"
	templates "github.com/firvault/fir-vault-api/templates/html"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Admin struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"admin"`
}

// Admin holds the approval surface only system admins may touch
type Admin struct {
	ADB    databases.AccountDatabase
	ODB    databases.OfficerDatabase
	SDB    databases.StationDatabase
	Config config.Config
}

// AdminLoginHandler handles system admin login via email/password and returns a JWT
func (h Admin) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email and password required"})
		return
	}

	account, err := h.ADB.FindOne(r.Context(), bson.M{
		"account.email": email,
		"account.role":  string(lifecycle.RoleSystemAdmin),
	})
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(account.Details.Password), []byte(req.Password)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	if h.Config.JWTSecret == "" {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Details.Email,
		"scope": "admin",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.Config.JWTSecret))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	var resp adminLoginResponse
	resp.Token = signed
	resp.Admin.ID = account.ID
	resp.Admin.Email = account.Details.Email

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// requireAdmin verifies the Bearer JWT carries the admin scope
func (h Admin) requireAdmin(r *http.Request) error {
	reqToken := r.Header.Get("Authorization")
	splitToken := strings.Split(reqToken, "Bearer ")
	if len(splitToken) < 2 {
		return errors.New("missing bearer token")
	}

	token, err := jwt.Parse(splitToken[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(h.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["scope"] != "admin" {
		return errors.New("admin scope required")
	}
	return nil
}

// ApproveOfficerHandler flips an officer's approval gate on
func (h Admin) ApproveOfficerHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.requireAdmin(r); err != nil {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, err)
		return
	}
	hrms := mux.Vars(r)["officer_hrms"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	officer, err := h.ODB.UpdateOne(ctx,
		bson.M{"officer.hrms": hrms},
		bson.M{"$set": bson.M{"officer.approval": true}},
	)
	if err != nil {
		config.ErrorStatus("failed to approve officer", http.StatusNotFound, w, err)
		return
	}

	h.notify(officer.Details.Email, "Officer account approved",
		fmt.Sprintf("Officer %s (%s) has been approved and can now be assigned cases.", officer.Details.Name, hrms))

	b, err := json.Marshal(officer)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ApproveStationHandler flips a station's approval gate on
func (h Admin) ApproveStationHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.requireAdmin(r); err != nil {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, err)
		return
	}
	sid := mux.Vars(r)["station_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	station, err := h.SDB.UpdateOne(ctx,
		bson.M{"station.sid": sid},
		bson.M{"$set": bson.M{"station.approval": true}},
	)
	if err != nil {
		config.ErrorStatus("failed to approve station", http.StatusNotFound, w, err)
		return
	}

	h.notify(station.Details.Email, "Station approved",
		fmt.Sprintf("Station %s (%s) has been approved and can now receive FIRs.", station.Details.Name, sid))

	b, err := json.Marshal(station)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// notify sends a best-effort approval email, failures are logged and never surfaced
func (h Admin) notify(to, subject, body string) {
	if h.Config.SendgridKey == "" || to == "" {
		return
	}
	from := mail.NewEmail("FIR Vault", h.Config.SenderEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body,
		templates.RenderGenericEmail(subject, body))
	client := sendgrid.NewSendClient(h.Config.SendgridKey)
	if _, err := client.Send(message); err != nil {
		zap.S().Warnw("failed to send approval email", "to", to, "err", err)
	}
}

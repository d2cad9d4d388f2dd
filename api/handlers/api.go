package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/firvault/fir-vault-api/api"
	"github.com/firvault/fir-vault-api/api/scheduler"
	"github.com/firvault/fir-vault-api/config"
	"github.com/firvault/fir-vault-api/databases"
	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	DB        databases.CollectionHelper
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewAccountDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()
	r.Use(api.TimeoutMiddleware(30 * time.Second))

	engine := lifecycle.New(
		databases.NewCaseStore(a.dbHelper),
		databases.NewOfficerDirectory(a.dbHelper),
		databases.NewStationDirectory(a.dbHelper),
	)

	f := FIR{
		DB:     databases.NewFIRDatabase(a.dbHelper),
		ADB:    databases.NewAccountDatabase(a.dbHelper),
		Engine: engine,
	}
	o := Officer{DB: databases.NewOfficerDatabase(a.dbHelper)}
	s := Station{DB: databases.NewStationDatabase(a.dbHelper)}
	acc := Account{DB: databases.NewAccountDatabase(a.dbHelper)}
	cr := Criminal{DB: databases.NewCriminalDatabase(a.dbHelper)}
	adm := Admin{
		ADB:    databases.NewAccountDatabase(a.dbHelper),
		ODB:    databases.NewOfficerDatabase(a.dbHelper),
		SDB:    databases.NewStationDatabase(a.dbHelper),
		Config: a.Config,
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/account/create-account", http.HandlerFunc(acc.CreateAccountHandler)).Methods("POST")

	apiCreate.Handle("/fir", api.Middleware(http.HandlerFunc(f.FileFIRHandler))).Methods("POST")
	apiCreate.Handle("/fir/{fir_id}", api.Middleware(http.HandlerFunc(f.FIRByIDHandler))).Methods("GET")
	apiCreate.Handle("/fir/{fir_id}/assign/{officer_hrms}", api.Middleware(http.HandlerFunc(f.AssignOfficerHandler))).Methods("POST")
	apiCreate.Handle("/fir/{fir_id}/status/{status}", api.Middleware(http.HandlerFunc(f.AdvanceStatusHandler))).Methods("POST")
	apiCreate.Handle("/fir/{fir_id}/close", api.Middleware(http.HandlerFunc(f.CloseFIRHandler))).Methods("POST")
	apiCreate.Handle("/fir/{fir_id}/reopen", api.Middleware(http.HandlerFunc(f.ReopenFIRHandler))).Methods("POST")
	apiCreate.Handle("/fir/{fir_id}/criminal/{criminal_id}", api.Middleware(http.HandlerFunc(f.LinkCriminalHandler))).Methods("POST")
	apiCreate.Handle("/firs", api.Middleware(http.HandlerFunc(f.FIRHandler))).Methods("GET")
	apiCreate.Handle("/firs/station/{station_id}/pending", api.Middleware(http.HandlerFunc(f.PendingByStationHandler))).Methods("GET")
	apiCreate.Handle("/firs/officer/{officer_hrms}/active", api.Middleware(http.HandlerFunc(f.ActiveByOfficerHandler))).Methods("GET")
	apiCreate.Handle("/firs/officer/{officer_hrms}/resolved", api.Middleware(http.HandlerFunc(f.ResolvedByOfficerHandler))).Methods("GET")

	apiCreate.Handle("/officer", http.HandlerFunc(o.CreateOfficerHandler)).Methods("POST")
	apiCreate.Handle("/officer/{officer_hrms}", api.Middleware(http.HandlerFunc(o.OfficerByHRMSHandler))).Methods("GET")
	apiCreate.Handle("/officers/station/{station_id}", api.Middleware(http.HandlerFunc(o.OfficersByStationHandler))).Methods("GET")

	apiCreate.Handle("/station", http.HandlerFunc(s.CreateStationHandler)).Methods("POST")
	apiCreate.Handle("/station/{station_id}", api.Middleware(http.HandlerFunc(s.StationBySIDHandler))).Methods("GET")
	apiCreate.Handle("/stations", api.Middleware(http.HandlerFunc(s.StationHandler))).Methods("GET")

	apiCreate.Handle("/criminal", api.Middleware(http.HandlerFunc(cr.CreateCriminalHandler))).Methods("POST")
	apiCreate.Handle("/criminal/{criminal_id}", api.Middleware(http.HandlerFunc(cr.CriminalByIDHandler))).Methods("GET")

	apiCreate.Handle("/admin/login", http.HandlerFunc(adm.AdminLoginHandler)).Methods("POST")
	apiCreate.Handle("/admin/officer/{officer_hrms}/approve", http.HandlerFunc(adm.ApproveOfficerHandler)).Methods("PUT")
	apiCreate.Handle("/admin/station/{station_id}/approve", http.HandlerFunc(adm.ApproveStationHandler)).Methods("PUT")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("fir-vault-api has connected to the database")

	// start the pending-case digest when mail is configured
	if a.Config.SendgridKey != "" {
		a.Scheduler = scheduler.New(
			databases.NewFIRDatabase(a.dbHelper),
			databases.NewStationDatabase(a.dbHelper),
			databases.NewOfficerDatabase(a.dbHelper),
			&a.Config,
		)
		a.Scheduler.Start()
	}

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

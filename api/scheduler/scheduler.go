package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/firvault/fir-vault-api/config"
	"github.com/firvault/fir-vault-api/databases"
	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
	templates "github.com/firvault/fir-vault-api/templates/html"
)

// Scheduler handles periodic background jobs for station notifications
type Scheduler struct {
	cron *cron.Cron
	FDB  databases.FIRDatabase
	SDB  databases.StationDatabase
	ODB  databases.OfficerDatabase
	conf *config.Config
}

// New creates a new scheduler instance
func New(fDB databases.FIRDatabase, sDB databases.StationDatabase, oDB databases.OfficerDatabase, conf *config.Config) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		FDB:  fDB,
		SDB:  sDB,
		ODB:  oDB,
		conf: conf,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Email each station incharge their unassigned FIR backlog daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.sendPendingDigests)
	if err != nil {
		zap.S().Errorw("failed to register pending digest job", "error", err)
	}

	// Nudge officers sitting on stale investigations every Monday at 2 AM UTC
	_, err = s.cron.AddFunc("0 2 * * 1", s.sendStaleCaseReminders)
	if err != nil {
		zap.S().Errorw("failed to register stale case job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Station digest scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Station digest scheduler stopped")
}

// sendPendingDigests emails each approved station's incharge a summary of
// FIRs that are still waiting for an officer.
func (s *Scheduler) sendPendingDigests() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	zap.S().Info("Running pending FIR digest job")

	stations, err := s.SDB.Find(ctx, bson.M{"station.approval": true})
	if err != nil {
		zap.S().Errorw("failed to list approved stations", "error", err)
		return
	}

	sent := 0
	for _, station := range stations {
		pending, err := s.FDB.Find(ctx, bson.M{
			"fir.stationID":   station.Details.SID,
			"fir.officerHRMS": "",
			"fir.closed":      false,
		})
		if err != nil {
			zap.S().Errorw("failed to list pending FIRs", "error", err, "station", station.Details.SID)
			continue
		}
		if len(pending) == 0 {
			continue
		}

		to := s.inchargeEmail(ctx, station)
		if to == "" {
			zap.S().Debugw("no incharge email for station, skipping digest", "station", station.Details.SID)
			continue
		}

		subject := fmt.Sprintf("%d FIRs awaiting assignment at %s", len(pending), station.Details.Name)
		if err := s.sendEmail(to, subject, digestBody(pending)); err != nil {
			zap.S().Errorw("failed to send pending digest", "error", err, "station", station.Details.SID)
			continue
		}
		sent++
	}

	zap.S().Infow("Pending FIR digest complete", "stationsChecked", len(stations), "digestsSent", sent)
}

// sendStaleCaseReminders emails officers whose open investigations have not
// moved in 14 days.
func (s *Scheduler) sendStaleCaseReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-14 * 24 * time.Hour)
	stale, err := s.FDB.Find(ctx, bson.M{
		"fir.closed":      false,
		"fir.status":      bson.M{"$nin": []string{string(lifecycle.StatusResolved), string(lifecycle.StatusSubmitted), string(lifecycle.StatusReopened)}},
		"fir.officerHRMS": bson.M{"$ne": ""},
		"fir.updatedAt":   bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	})
	if err != nil {
		zap.S().Errorw("failed to list stale FIRs", "error", err)
		return
	}

	// Group by assigned officer so each gets a single reminder
	byOfficer := map[string][]models.FIR{}
	for _, fir := range stale {
		byOfficer[fir.Details.OfficerHRMS] = append(byOfficer[fir.Details.OfficerHRMS], fir)
	}

	for hrms, firs := range byOfficer {
		officer, err := s.ODB.FindOne(ctx, bson.M{"officer.hrms": hrms})
		if err != nil || officer.Details.Email == "" {
			continue
		}
		subject := fmt.Sprintf("%d of your cases have not moved in two weeks", len(firs))
		if err := s.sendEmail(officer.Details.Email, subject, digestBody(firs)); err != nil {
			zap.S().Errorw("failed to send stale case reminder", "error", err, "officer", hrms)
		}
	}

	zap.S().Infow("Stale case reminders complete", "staleCases", len(stale), "officersNotified", len(byOfficer))
}

// inchargeEmail resolves where a station's digest should go: the incharge
// officer's email if one is on file, else the station's own address.
func (s *Scheduler) inchargeEmail(ctx context.Context, station models.Station) string {
	if station.Details.InchargeHRMS != "" {
		officer, err := s.ODB.FindOne(ctx, bson.M{"officer.hrms": station.Details.InchargeHRMS})
		if err == nil && officer.Details.Email != "" {
			return officer.Details.Email
		}
	}
	return station.Details.Email
}

func digestBody(firs []models.FIR) string {
	var b strings.Builder
	for _, fir := range firs {
		fmt.Fprintf(&b, "%s | %s | filed %s | %s\n",
			fir.ID,
			fir.Details.Status,
			fir.Details.ComplainDate.Time().Format("2006-01-02"),
			fir.Details.IncidentLocation,
		)
	}
	return b.String()
}

func (s *Scheduler) sendEmail(toEmail, subject, plainText string) error {
	from := mail.NewEmail("FIR Vault", s.conf.SenderEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText,
		templates.RenderGenericEmail(subject, plainText))
	client := sendgrid.NewSendClient(s.conf.SendgridKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}

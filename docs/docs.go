// Package docs FIR Vault API.
//
// Documentation of FIR Vault API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://api.firvault.in
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/firvault/fir-vault-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/fir fir fileFIR
// Files a new FIR at a station.
// responses:
//   201: firResponse

// swagger:route GET /api/v1/fir/{fir_id} fir firByID
// Gets a single FIR by ID.
// responses:
//   200: firResponse

// swagger:route POST /api/v1/fir/{fir_id}/assign/{officer_hrms} fir assignOfficer
// Assigns an officer to a FIR. Station admins may pass ?reassign=true.
// responses:
//   200: firResponse

// swagger:route POST /api/v1/fir/{fir_id}/status/{status} fir advanceStatus
// Moves a FIR to a forward lifecycle stage.
// responses:
//   200: firResponse

// swagger:route POST /api/v1/fir/{fir_id}/close fir closeFIR
// Closes a reviewed or resolved FIR.
// responses:
//   200: firResponse

// swagger:route POST /api/v1/fir/{fir_id}/reopen fir reopenFIR
// Reopens a closed FIR.
// responses:
//   200: firResponse

// The current snapshot of a FIR.
// swagger:response firResponse
type firResponseWrapper struct {
	// in:body
	Body models.FIR
}

// swagger:route GET /api/v1/firs fir listFIRs
// Lists FIRs, filtered by station, officer, status and closed.
// responses:
//   200: firListResponse

// swagger:route GET /api/v1/firs/station/{station_id}/pending fir pendingByStation
// Lists the station's unassigned open FIRs.
// responses:
//   200: firListResponse

// swagger:route GET /api/v1/firs/officer/{officer_hrms}/active fir activeByOfficer
// Lists the officer's open work queue.
// responses:
//   200: firListResponse

// A listing of FIRs.
// swagger:response firListResponse
type firListResponseWrapper struct {
	// in:body
	Body []models.FIR
}

// swagger:route GET /api/v1/station/{station_id} station stationBySID
// Gets a single station by station id.
// responses:
//   200: stationResponse

// swagger:response stationResponse
type stationResponseWrapper struct {
	// in:body
	Body models.Station
}

// swagger:route GET /api/v1/officer/{officer_hrms} officer officerByHRMS
// Gets a single officer by HRMS id.
// responses:
//   200: officerResponse

// swagger:response officerResponse
type officerResponseWrapper struct {
	// in:body
	Body models.Officer
}

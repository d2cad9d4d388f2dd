package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FIR holds the structure for the fir collection in mongo
type FIR struct {
	ID      string     `json:"_id" bson:"_id"`
	Details FIRDetails `json:"fir" bson:"fir"`
	Version int32      `json:"__v" bson:"__v"`
}

// FIRDetails holds the structure for the inner fir structure as defined
// in the fir collection in mongo
type FIRDetails struct {
	Status           string             `json:"status" bson:"status"`
	Closed           bool               `json:"closed" bson:"closed"`
	StationID        string             `json:"stationID" bson:"stationID"`
	OfficerHRMS      string             `json:"officerHRMS" bson:"officerHRMS"` // empty means unassigned
	VictimID         string             `json:"victimID" bson:"victimID"`
	CriminalID       string             `json:"criminalID" bson:"criminalID"`
	ComplainDate     primitive.DateTime `json:"complainDate" bson:"complainDate"`
	IncidentDate     primitive.DateTime `json:"incidentDate" bson:"incidentDate"`
	IncidentLocation string             `json:"incidentLocation" bson:"incidentLocation"`
	Description      string             `json:"description" bson:"description"`
	CreatedAt        primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt        primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// FileFIRRequest is the payload a citizen submits to file a new FIR.
type FileFIRRequest struct {
	StationID        string `json:"stationID"`
	IncidentDate     string `json:"incidentDate"` // RFC 3339
	IncidentLocation string `json:"incidentLocation"`
	Description      string `json:"description"`
}

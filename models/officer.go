package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Officer holds the structure for the officer collection in mongo
type Officer struct {
	ID      string         `json:"_id" bson:"_id"`
	Details OfficerDetails `json:"officer" bson:"officer"`
	Version int32          `json:"__v" bson:"__v"`
}

// OfficerDetails holds the structure for the inner officer structure as
// defined in the officer collection in mongo
type OfficerDetails struct {
	HRMS      string             `json:"hrms" bson:"hrms"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	StationID string             `json:"stationID" bson:"stationID"`
	Approval  bool               `json:"approval" bson:"approval"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

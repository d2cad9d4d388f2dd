package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account holds the structure for the account collection in mongo. Citizens,
// officers, station admins and system admins all authenticate through it; the
// role decides which reference fields are populated.
type Account struct {
	ID      string         `json:"_id" bson:"_id"`
	Details AccountDetails `json:"account" bson:"account"`
	Version int32          `json:"__v" bson:"__v"`
}

// AccountDetails holds the structure for the inner account structure as
// defined in the account collection in mongo
type AccountDetails struct {
	Email       string             `json:"email" bson:"email"`
	Name        string             `json:"name" bson:"name"`
	Password    string             `json:"password" bson:"password"`
	Role        string             `json:"role" bson:"role"`
	OfficerHRMS string             `json:"officerHRMS" bson:"officerHRMS"` // set for role "officer"
	StationID   string             `json:"stationID" bson:"stationID"`     // set for roles "officer" and "station_admin"
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Station holds the structure for the station collection in mongo
type Station struct {
	ID      string         `json:"_id" bson:"_id"`
	Details StationDetails `json:"station" bson:"station"`
	Version int32          `json:"__v" bson:"__v"`
}

// StationDetails holds the structure for the inner station structure as
// defined in the station collection in mongo
type StationDetails struct {
	SID          string             `json:"sid" bson:"sid"`
	Name         string             `json:"name" bson:"name"`
	District     string             `json:"district" bson:"district"`
	Approval     bool               `json:"approval" bson:"approval"`
	InchargeHRMS string             `json:"inchargeHRMS" bson:"inchargeHRMS"`
	Email        string             `json:"email" bson:"email"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

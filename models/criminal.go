package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Criminal holds the structure for the criminal collection in mongo
type Criminal struct {
	ID      string          `json:"_id" bson:"_id"`
	Details CriminalDetails `json:"criminal" bson:"criminal"`
	Version int32           `json:"__v" bson:"__v"`
}

// CriminalDetails holds the structure for the inner criminal structure as
// defined in the criminal collection in mongo
type CriminalDetails struct {
	Name        string             `json:"name" bson:"name"`
	Alias       string             `json:"alias" bson:"alias"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

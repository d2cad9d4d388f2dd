package databases

// go generate: mockery --name OfficerDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
)

const officerName = "officers"

// OfficerDatabase contains the methods to use with the officer database
type OfficerDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Officer, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Officer, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*models.Officer, error)
}

type officerDatabase struct {
	db DatabaseHelper
}

// NewOfficerDatabase initializes a new instance of officer database with the provided db connection
func NewOfficerDatabase(db DatabaseHelper) OfficerDatabase {
	return &officerDatabase{
		db: db,
	}
}

func (c *officerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Officer, error) {
	officer := &models.Officer{}
	err := c.db.Collection(officerName).FindOne(ctx, filter, opts...).Decode(&officer)
	if err != nil {
		return nil, err
	}
	return officer, nil
}

func (c *officerDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Officer, error) {
	var officers []models.Officer
	cr := c.db.Collection(officerName).Find(ctx, filter, opts...)
	err := cr.Decode(&officers)
	if err != nil {
		return nil, err
	}
	return officers, nil
}

func (c *officerDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(officerName).InsertOne(ctx, document, opts...)
}

func (c *officerDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*models.Officer, error) {
	_, err := c.db.Collection(officerName).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return nil, err
	}
	officer := &models.Officer{}
	err = c.db.Collection(officerName).FindOne(ctx, filter).Decode(&officer)
	if err != nil {
		return nil, err
	}
	return officer, nil
}

// officerDirectory adapts the officer collection to the engine's lookup
// contract, translating missing documents into typed NotFound failures.
type officerDirectory struct {
	db OfficerDatabase
}

// NewOfficerDirectory returns a lifecycle.OfficerDirectory backed by the officer collection.
func NewOfficerDirectory(db DatabaseHelper) lifecycle.OfficerDirectory {
	return &officerDirectory{db: NewOfficerDatabase(db)}
}

func (d *officerDirectory) ByHRMS(ctx context.Context, hrms string) (*models.Officer, error) {
	officer, err := d.db.FindOne(ctx, bson.M{"officer.hrms": hrms})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, lifecycle.NotFound("officer %s does not exist", hrms)
	}
	if err != nil {
		return nil, err
	}
	return officer, nil
}

package databases

// go generate: mockery --name StationDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
)

const stationName = "stations"

// StationDatabase contains the methods to use with the station database
type StationDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Station, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Station, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*models.Station, error)
}

type stationDatabase struct {
	db DatabaseHelper
}

// NewStationDatabase initializes a new instance of station database with the provided db connection
func NewStationDatabase(db DatabaseHelper) StationDatabase {
	return &stationDatabase{
		db: db,
	}
}

func (c *stationDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Station, error) {
	station := &models.Station{}
	err := c.db.Collection(stationName).FindOne(ctx, filter, opts...).Decode(&station)
	if err != nil {
		return nil, err
	}
	return station, nil
}

func (c *stationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Station, error) {
	var stations []models.Station
	cr := c.db.Collection(stationName).Find(ctx, filter, opts...)
	err := cr.Decode(&stations)
	if err != nil {
		return nil, err
	}
	return stations, nil
}

func (c *stationDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(stationName).InsertOne(ctx, document, opts...)
}

func (c *stationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*models.Station, error) {
	_, err := c.db.Collection(stationName).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return nil, err
	}
	station := &models.Station{}
	err = c.db.Collection(stationName).FindOne(ctx, filter).Decode(&station)
	if err != nil {
		return nil, err
	}
	return station, nil
}

// stationDirectory adapts the station collection to the engine's lookup
// contract.
type stationDirectory struct {
	db StationDatabase
}

// NewStationDirectory returns a lifecycle.StationDirectory backed by the station collection.
func NewStationDirectory(db DatabaseHelper) lifecycle.StationDirectory {
	return &stationDirectory{db: NewStationDatabase(db)}
}

func (d *stationDirectory) BySID(ctx context.Context, sid string) (*models.Station, error) {
	station, err := d.db.FindOne(ctx, bson.M{"station.sid": sid})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, lifecycle.NotFound("station %s does not exist", sid)
	}
	if err != nil {
		return nil, err
	}
	return station, nil
}

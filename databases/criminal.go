package databases

// go generate: mockery --name CriminalDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firvault/fir-vault-api/models"
)

const criminalName = "criminals"

// CriminalDatabase contains the methods to use with the criminal database
type CriminalDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Criminal, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Criminal, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type criminalDatabase struct {
	db DatabaseHelper
}

// NewCriminalDatabase initializes a new instance of criminal database with the provided db connection
func NewCriminalDatabase(db DatabaseHelper) CriminalDatabase {
	return &criminalDatabase{
		db: db,
	}
}

func (c *criminalDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Criminal, error) {
	criminal := &models.Criminal{}
	err := c.db.Collection(criminalName).FindOne(ctx, filter, opts...).Decode(&criminal)
	if err != nil {
		return nil, err
	}
	return criminal, nil
}

func (c *criminalDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Criminal, error) {
	var criminals []models.Criminal
	cr := c.db.Collection(criminalName).Find(ctx, filter, opts...)
	err := cr.Decode(&criminals)
	if err != nil {
		return nil, err
	}
	return criminals, nil
}

func (c *criminalDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(criminalName).InsertOne(ctx, document, opts...)
}

package databases

// go generate: mockery --name FIRDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firvault/fir-vault-api/models"
)

const firName = "firs"

// FIRDatabase contains the methods to use with the fir database
type FIRDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.FIR, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.FIR, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type firDatabase struct {
	db DatabaseHelper
}

// NewFIRDatabase initializes a new instance of fir database with the provided db connection
func NewFIRDatabase(db DatabaseHelper) FIRDatabase {
	return &firDatabase{
		db: db,
	}
}

func (c *firDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.FIR, error) {
	fir := &models.FIR{}
	err := c.db.Collection(firName).FindOne(ctx, filter, opts...).Decode(&fir)
	if err != nil {
		return nil, err
	}
	return fir, nil
}

func (c *firDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FIR, error) {
	var firs []models.FIR
	cr := c.db.Collection(firName).Find(ctx, filter, opts...)
	err := cr.Decode(&firs)
	if err != nil {
		return nil, err
	}
	return firs, nil
}

func (c *firDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(firName).InsertOne(ctx, document, opts...)
}

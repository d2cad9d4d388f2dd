package databases

// go generate: mockery --name AccountDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firvault/fir-vault-api/models"
)

const accountName = "accounts"

// AccountDatabase contains the methods to use with the account database
type AccountDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Account, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Account, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type accountDatabase struct {
	db DatabaseHelper
}

// NewAccountDatabase initializes a new instance of account database with the provided db connection
func NewAccountDatabase(db DatabaseHelper) AccountDatabase {
	return &accountDatabase{
		db: db,
	}
}

func (c *accountDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Account, error) {
	account := &models.Account{}
	err := c.db.Collection(accountName).FindOne(ctx, filter, opts...).Decode(&account)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (c *accountDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Account, error) {
	var accounts []models.Account
	cr := c.db.Collection(accountName).Find(ctx, filter, opts...)
	err := cr.Decode(&accounts)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *accountDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(accountName).InsertOne(ctx, document, opts...)
}

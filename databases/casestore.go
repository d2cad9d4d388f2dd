package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/firvault/fir-vault-api/lifecycle"
	"github.com/firvault/fir-vault-api/models"
)

// caseStore adapts the fir collection to the engine's store contract. The
// document's __v field is the compare-and-swap token: Put only matches while
// the stored version equals the one the engine read, and bumps it on commit.
type caseStore struct {
	db DatabaseHelper
}

// NewCaseStore returns a lifecycle.CaseStore backed by the fir collection.
func NewCaseStore(db DatabaseHelper) lifecycle.CaseStore {
	return &caseStore{db: db}
}

func (s *caseStore) Get(ctx context.Context, id string) (*models.FIR, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, lifecycle.NotFound("invalid case id %q", id)
	}
	fir := &models.FIR{}
	err = s.db.Collection(firName).FindOne(ctx, bson.M{"_id": oid}).Decode(&fir)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, lifecycle.NotFound("case %s does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return fir, nil
}

func (s *caseStore) Insert(ctx context.Context, details models.FIRDetails) (*models.FIR, error) {
	oid := primitive.NewObjectID()
	doc := bson.M{
		"_id": oid,
		"fir": details,
		"__v": int32(0),
	}
	if _, err := s.db.Collection(firName).InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &models.FIR{
		ID:      oid.Hex(),
		Details: details,
		Version: 0,
	}, nil
}

func (s *caseStore) Put(ctx context.Context, id string, expectedVersion int32, details models.FIRDetails) (*models.FIR, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, lifecycle.NotFound("invalid case id %q", id)
	}

	res, err := s.db.Collection(firName).UpdateOne(ctx,
		bson.M{"_id": oid, "__v": expectedVersion},
		bson.M{
			"$set": bson.M{"fir": details},
			"$inc": bson.M{"__v": 1},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount() == 0 {
		// distinguish a vanished record from a concurrent writer
		fir := &models.FIR{}
		ferr := s.db.Collection(firName).FindOne(ctx, bson.M{"_id": oid}).Decode(&fir)
		if errors.Is(ferr, mongo.ErrNoDocuments) {
			return nil, lifecycle.NotFound("case %s does not exist", id)
		}
		return nil, lifecycle.ErrStale
	}

	return &models.FIR{
		ID:      id,
		Details: details,
		Version: expectedVersion + 1,
	}, nil
}

func (s *caseStore) List(ctx context.Context) ([]models.FIR, error) {
	var firs []models.FIR
	err := s.db.Collection(firName).Find(ctx, bson.D{}).Decode(&firs)
	if err != nil {
		return nil, err
	}
	return firs, nil
}

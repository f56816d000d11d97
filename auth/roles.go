package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ininahazwe/mfwa-memorial/model"
)

// MongoRoleStore reads admin role records from the "admins"
// collection, keyed by user id.
type MongoRoleStore struct {
	admins *mongo.Collection
}

func NewMongoRoleStore(db *mongo.Database) *MongoRoleStore {
	return &MongoRoleStore{admins: db.Collection("admins")}
}

// Lookup returns the role record for userID, nil when none exists.
func (s *MongoRoleStore) Lookup(ctx context.Context, userID string) (*model.AdminRecord, error) {
	var rec model.AdminRecord
	err := s.admins.FindOne(ctx, bson.M{"_id": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("admin record lookup: %w", err)
	}
	return &rec, nil
}

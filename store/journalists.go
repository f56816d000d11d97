package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ininahazwe/mfwa-memorial/metrics"
	"github.com/ininahazwe/mfwa-memorial/model"
)

// resolveCountryName snapshots the display name of the referenced
// country at this moment. A countryId that resolves to no country is a
// validation error, not a write.
func (s *Store) resolveCountryName(ctx context.Context, countryID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(countryID)
	if err != nil {
		return "", validationErr("countryId is not a valid id")
	}

	var country model.Country
	err = s.countries.FindOne(ctx, bson.M{"_id": oid}).Decode(&country)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", validationErr("countryId does not reference an existing country")
	}
	if err != nil {
		return "", fmt.Errorf("country lookup: %w", err)
	}
	return country.Name, nil
}

func (s *Store) ListJournalists(ctx context.Context, opts ListOptions) ([]model.Journalist, int64, error) {
	filter := bson.M{}
	if opts.CountryID != "" {
		filter["countryId"] = opts.CountryID
	}
	if opts.Published != nil {
		filter["isPublished"] = *opts.Published
	}

	field, dir := opts.sortDoc("createdAt")
	findOpts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}}).
		SetLimit(opts.limit()).
		SetSkip(opts.skip())

	cursor, err := s.journalists.Find(ctx, filter, findOpts)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "journalists", "error").Inc()
		return nil, 0, fmt.Errorf("journalists query: %w", err)
	}
	defer cursor.Close(ctx)

	results := []model.Journalist{}
	if err := cursor.All(ctx, &results); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "journalists", "error").Inc()
		return nil, 0, fmt.Errorf("journalists decode: %w", err)
	}

	total, err := s.journalists.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("journalists count: %w", err)
	}

	metrics.MongoOperationsTotal.WithLabelValues("find", "journalists", "success").Inc()
	return results, total, nil
}

func (s *Store) GetJournalist(ctx context.Context, id string) (*model.Journalist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var j model.Journalist
	err = s.journalists.FindOne(ctx, bson.M{"_id": oid}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("journalist lookup: %w", err)
	}
	return &j, nil
}

func (s *Store) CreateJournalist(ctx context.Context, in model.JournalistInput) (*model.Journalist, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	countryName, err := s.resolveCountryName(ctx, in.CountryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	j := model.Journalist{
		Name:          in.Name,
		CountryID:     in.CountryID,
		CountryName:   countryName,
		Role:          in.Role,
		YearOfDeath:   in.YearOfDeath,
		PhotoURL:      in.PhotoURL,
		Bio:           in.Bio,
		PlaceOfDeath:  in.PlaceOfDeath,
		Circumstances: in.Circumstances,
		IsPublished:   in.IsPublished,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := s.journalists.InsertOne(ctx, j)
	if err != nil {
		metrics.RecordWritesTotal.WithLabelValues("journalists", "create", "error").Inc()
		return nil, fmt.Errorf("journalist insert: %w", err)
	}
	j.ID = res.InsertedID.(primitive.ObjectID)

	metrics.RecordWritesTotal.WithLabelValues("journalists", "create", "success").Inc()
	log.Printf("[INFO] Created journalist id=%s name=%s country=%s", j.ID.Hex(), j.Name, j.CountryName)

	s.events.PublishChange("journalists", "created", j.ID.Hex(), j)
	return &j, nil
}

func (s *Store) UpdateJournalist(ctx context.Context, id string, in model.JournalistInput) (*model.Journalist, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	existing, err := s.GetJournalist(ctx, id)
	if err != nil {
		return nil, err
	}

	// The country name is a snapshot taken when countryId is set or
	// changed. An unchanged countryId keeps the stored name even if
	// the country was renamed since.
	countryName := existing.CountryName
	if in.CountryID != existing.CountryID {
		countryName, err = s.resolveCountryName(ctx, in.CountryID)
		if err != nil {
			return nil, err
		}
	}

	update := bson.M{"$set": bson.M{
		"name":          in.Name,
		"countryId":     in.CountryID,
		"countryName":   countryName,
		"role":          in.Role,
		"yearOfDeath":   in.YearOfDeath,
		"photoUrl":      in.PhotoURL,
		"bio":           in.Bio,
		"placeOfDeath":  in.PlaceOfDeath,
		"circumstances": in.Circumstances,
		"isPublished":   in.IsPublished,
		"updatedAt":     time.Now(),
	}}

	res, err := s.journalists.UpdateOne(ctx, bson.M{"_id": existing.ID}, update)
	if err != nil {
		metrics.RecordWritesTotal.WithLabelValues("journalists", "update", "error").Inc()
		return nil, fmt.Errorf("journalist update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	metrics.RecordWritesTotal.WithLabelValues("journalists", "update", "success").Inc()

	updated, err := s.GetJournalist(ctx, id)
	if err != nil {
		return nil, err
	}

	s.events.PublishChange("journalists", "updated", id, updated)
	return updated, nil
}

func (s *Store) DeleteJournalist(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.journalists.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		metrics.RecordWritesTotal.WithLabelValues("journalists", "delete", "error").Inc()
		return fmt.Errorf("journalist delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	metrics.RecordWritesTotal.WithLabelValues("journalists", "delete", "success").Inc()
	log.Printf("[INFO] Deleted journalist id=%s", id)

	s.events.PublishChange("journalists", "deleted", id, nil)
	return nil
}

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

func (s *Store) ListCountries(ctx context.Context, opts ListOptions) ([]model.Country, int64, error) {
	field, dir := opts.sortDoc("name")
	findOpts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}}).
		SetLimit(opts.limit()).
		SetSkip(opts.skip())

	cursor, err := s.countries.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "countries", "error").Inc()
		return nil, 0, fmt.Errorf("countries query: %w", err)
	}
	defer cursor.Close(ctx)

	results := []model.Country{}
	if err := cursor.All(ctx, &results); err != nil {
		metrics.MongoOperationsTotal.WithLabelValues("find", "countries", "error").Inc()
		return nil, 0, fmt.Errorf("countries decode: %w", err)
	}

	// journalistCount is derived here for display, never stored.
	for i := range results {
		count, err := s.journalists.CountDocuments(ctx, bson.M{"countryId": results[i].ID.Hex()})
		if err != nil {
			log.Printf("[WARN] journalist count failed for country=%s: %v", results[i].ID.Hex(), err)
			continue
		}
		results[i].JournalistCount = count
	}

	total, err := s.countries.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("countries count: %w", err)
	}

	metrics.MongoOperationsTotal.WithLabelValues("find", "countries", "success").Inc()
	return results, total, nil
}

func (s *Store) GetCountry(ctx context.Context, id string) (*model.Country, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var c model.Country
	err = s.countries.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("country lookup: %w", err)
	}

	count, err := s.journalists.CountDocuments(ctx, bson.M{"countryId": id})
	if err == nil {
		c.JournalistCount = count
	}
	return &c, nil
}

func (s *Store) CreateCountry(ctx context.Context, in model.CountryInput) (*model.Country, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	now := time.Now()
	c := model.Country{
		Name:        in.Name,
		Code:        in.Code,
		Coords:      in.Coords,
		Description: in.Description,
		RiskLevel:   in.RiskLevel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.countries.InsertOne(ctx, c)
	if err != nil {
		metrics.RecordWritesTotal.WithLabelValues("countries", "create", "error").Inc()
		return nil, fmt.Errorf("country insert: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)

	metrics.RecordWritesTotal.WithLabelValues("countries", "create", "success").Inc()
	log.Printf("[INFO] Created country id=%s name=%s code=%s", c.ID.Hex(), c.Name, c.Code)

	s.events.PublishChange("countries", "created", c.ID.Hex(), c)
	return &c, nil
}

// UpdateCountry rewrites the country document. Renaming a country
// never touches the countryName snapshots on journalists that
// reference it; the public site depends on the snapshot semantics.
func (s *Store) UpdateCountry(ctx context.Context, id string, in model.CountryInput) (*model.Country, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        in.Name,
		"code":        in.Code,
		"coords":      in.Coords,
		"description": in.Description,
		"riskLevel":   in.RiskLevel,
		"updatedAt":   time.Now(),
	}}

	res, err := s.countries.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		metrics.RecordWritesTotal.WithLabelValues("countries", "update", "error").Inc()
		return nil, fmt.Errorf("country update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	metrics.RecordWritesTotal.WithLabelValues("countries", "update", "success").Inc()

	updated, err := s.GetCountry(ctx, id)
	if err != nil {
		return nil, err
	}

	s.events.PublishChange("countries", "updated", id, updated)
	return updated, nil
}

// DeleteCountry removes the country only. Journalists referencing it
// keep their countryId and countryName untouched; the returned count
// of referencing journalists lets the UI phrase its confirmation.
func (s *Store) DeleteCountry(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	referencing, err := s.journalists.CountDocuments(ctx, bson.M{"countryId": id})
	if err != nil {
		return 0, fmt.Errorf("referencing count: %w", err)
	}

	res, err := s.countries.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		metrics.RecordWritesTotal.WithLabelValues("countries", "delete", "error").Inc()
		return 0, fmt.Errorf("country delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return 0, ErrNotFound
	}

	metrics.RecordWritesTotal.WithLabelValues("countries", "delete", "success").Inc()
	log.Printf("[INFO] Deleted country id=%s (%d journalists still reference it)", id, referencing)

	s.events.PublishChange("countries", "deleted", id, nil)
	return referencing, nil
}

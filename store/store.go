// Package store is the record access facade over the journalists and
// countries collections. Validation runs before any write; writes that
// reach the database carry storage-layer timestamps; the countryName
// field on journalists is a write-time snapshot of the referenced
// country's name with no cascade on later renames or deletes.
package store

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ininahazwe/mfwa-memorial/events"
)

var (
	// ErrNotFound covers get/update/delete of an id with no document.
	ErrNotFound = errors.New("record not found")
	// ErrValidation marks input rejected before any write attempt.
	ErrValidation = errors.New("validation failed")
)

func validationErr(detail string) error {
	return fmt.Errorf("%w: %s", ErrValidation, detail)
}

// ListOptions is the pagination/sort/filter surface passed through
// from the UI. Filters not applicable to a collection are ignored.
type ListOptions struct {
	Sort   string
	Order  string // "asc" or "desc"
	Limit  int64
	Offset int64

	// Journalist filters.
	CountryID string
	Published *bool
}

const (
	defaultLimit = 25
	maxLimit     = 100
)

func (o ListOptions) limit() int64 {
	if o.Limit <= 0 {
		return defaultLimit
	}
	if o.Limit > maxLimit {
		return maxLimit
	}
	return o.Limit
}

func (o ListOptions) skip() int64 {
	if o.Offset < 0 {
		return 0
	}
	return o.Offset
}

func (o ListOptions) sortDoc(defaultField string) (string, int) {
	field := o.Sort
	if field == "" {
		field = defaultField
	}
	dir := -1
	if o.Order == "asc" {
		dir = 1
	}
	return field, dir
}

// Store holds the two collections and an optional change publisher.
// A nil publisher disables events without branching at call sites.
type Store struct {
	journalists *mongo.Collection
	countries   *mongo.Collection
	events      *events.Publisher
}

func New(db *mongo.Database, pub *events.Publisher) *Store {
	return &Store{
		journalists: db.Collection("journalists"),
		countries:   db.Collection("countries"),
		events:      pub,
	}
}

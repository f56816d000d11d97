package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var photoURLPattern = regexp.MustCompile(`^https?://.+`)

// Journalist is a memorial record for a journalist who died or
// disappeared in connection with their work.
type Journalist struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	CountryID     string             `bson:"countryId" json:"countryId"`
	CountryName   string             `bson:"countryName" json:"countryName"`
	Role          string             `bson:"role" json:"role"`
	YearOfDeath   int                `bson:"yearOfDeath" json:"yearOfDeath"`
	PhotoURL      string             `bson:"photoUrl" json:"photoUrl"`
	Bio           string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PlaceOfDeath  string             `bson:"placeOfDeath,omitempty" json:"placeOfDeath,omitempty"`
	Circumstances string             `bson:"circumstances,omitempty" json:"circumstances,omitempty"`
	IsPublished   bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// JournalistInput is the payload accepted on create and update.
// CountryName is never taken from the client; the store snapshots it
// from the referenced country at write time.
type JournalistInput struct {
	Name          string `json:"name"`
	CountryID     string `json:"countryId"`
	Role          string `json:"role"`
	YearOfDeath   int    `json:"yearOfDeath"`
	PhotoURL      string `json:"photoUrl"`
	Bio           string `json:"bio"`
	PlaceOfDeath  string `json:"placeOfDeath"`
	Circumstances string `json:"circumstances"`
	IsPublished   bool   `json:"isPublished"`
}

// Validate applies the strict form rules before any write is attempted.
func (in JournalistInput) Validate() error {
	var problems []string

	if len(strings.TrimSpace(in.Name)) < 2 {
		problems = append(problems, "name must be at least 2 characters")
	}
	if strings.TrimSpace(in.CountryID) == "" {
		problems = append(problems, "countryId is required")
	}
	if strings.TrimSpace(in.Role) == "" {
		problems = append(problems, "role is required")
	}
	if in.YearOfDeath < 1900 || in.YearOfDeath > time.Now().Year() {
		problems = append(problems, fmt.Sprintf("yearOfDeath must be between 1900 and %d", time.Now().Year()))
	}
	if !photoURLPattern.MatchString(in.PhotoURL) {
		problems = append(problems, "photoUrl must be an absolute http(s) URL")
	}
	if len(in.Bio) > 500 {
		problems = append(problems, "bio must be at most 500 characters")
	}
	if len(in.Circumstances) > 1000 {
		problems = append(problems, "circumstances must be at most 1000 characters")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

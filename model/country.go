package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Risk levels form a closed set; anything else is invalid input.
const (
	RiskHigh     = "high"
	RiskCritical = "critical"
	RiskExtreme  = "extreme"
)

const minDescriptionLen = 20

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Coords is the center point of a country on the memorial map.
type Coords struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Country groups journalists by where they died or disappeared.
type Country struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Code        string             `bson:"code" json:"code"`
	Coords      Coords             `bson:"coords" json:"coords"`
	Description string             `bson:"description" json:"description"`
	RiskLevel   string             `bson:"riskLevel" json:"riskLevel"`
	// JournalistCount is derived at read time, never stored.
	JournalistCount int64     `bson:"-" json:"journalistCount"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CountryInput is the payload accepted on create and update.
type CountryInput struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Coords      Coords `json:"coords"`
	Description string `json:"description"`
	RiskLevel   string `json:"riskLevel"`
}

func ValidRiskLevel(level string) bool {
	switch level {
	case RiskHigh, RiskCritical, RiskExtreme:
		return true
	}
	return false
}

func (in CountryInput) Validate() error {
	var problems []string

	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !countryCodePattern.MatchString(in.Code) {
		problems = append(problems, "code must be exactly 2 uppercase letters (ISO 3166-1 alpha-2)")
	}
	if in.Coords.Lat < -90 || in.Coords.Lat > 90 {
		problems = append(problems, "coords.lat must be between -90 and 90")
	}
	if in.Coords.Lng < -180 || in.Coords.Lng > 180 {
		problems = append(problems, "coords.lng must be between -180 and 180")
	}
	if len(strings.TrimSpace(in.Description)) < minDescriptionLen {
		problems = append(problems, fmt.Sprintf("description must be at least %d characters", minDescriptionLen))
	}
	if !ValidRiskLevel(in.RiskLevel) {
		problems = append(problems, "riskLevel must be one of: high, critical, extreme")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

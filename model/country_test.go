package model

import (
	"strings"
	"testing"
)

func validCountryInput() CountryInput {
	return CountryInput{
		Name:        "Mali",
		Code:        "ML",
		Coords:      Coords{Lat: 17.57, Lng: -4.0},
		Description: "Zone de conflit armé depuis 2012, journalistes exposés.",
		RiskLevel:   RiskExtreme,
	}
}

func TestCountryInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CountryInput)
		wantErr string
	}{
		{"valid", func(in *CountryInput) {}, ""},
		{"code single letter", func(in *CountryInput) { in.Code = "M" }, "code"},
		{"code three letters", func(in *CountryInput) { in.Code = "mli" }, "code"},
		{"code lowercase", func(in *CountryInput) { in.Code = "ml" }, "code"},
		{"code with digit", func(in *CountryInput) { in.Code = "M1" }, "code"},
		{"missing name", func(in *CountryInput) { in.Name = "  " }, "name"},
		{"lat too low", func(in *CountryInput) { in.Coords.Lat = -90.5 }, "lat"},
		{"lat too high", func(in *CountryInput) { in.Coords.Lat = 91 }, "lat"},
		{"lng too low", func(in *CountryInput) { in.Coords.Lng = -180.01 }, "lng"},
		{"lng too high", func(in *CountryInput) { in.Coords.Lng = 200 }, "lng"},
		{"lat boundary ok", func(in *CountryInput) { in.Coords.Lat = 90 }, ""},
		{"lng boundary ok", func(in *CountryInput) { in.Coords.Lng = -180 }, ""},
		{"short description", func(in *CountryInput) { in.Description = "too short" }, "description"},
		{"unknown risk level", func(in *CountryInput) { in.RiskLevel = "medium" }, "riskLevel"},
		{"empty risk level", func(in *CountryInput) { in.RiskLevel = "" }, "riskLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCountryInput()
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidRiskLevel(t *testing.T) {
	for _, level := range []string{RiskHigh, RiskCritical, RiskExtreme} {
		if !ValidRiskLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	for _, level := range []string{"", "medium", "HIGH", "low"} {
		if ValidRiskLevel(level) {
			t.Errorf("expected %q to be invalid", level)
		}
	}
}

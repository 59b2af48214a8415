// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tomtom215/gamescout/internal/models"
)

func TestValidateStructWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights models.SignalWeights
		wantErr bool
	}{
		{"all zero is valid", models.SignalWeights{}, false},
		{"typical blend", models.SignalWeights{ML: 0.35, Content: 0.35, Preference: 0.2, Review: 0.1}, false},
		{"unnormalized is valid", models.SignalWeights{ML: 35, Content: 35, Preference: 20, Review: 10}, false},
		{"negative rejected", models.SignalWeights{ML: -0.1, Content: 0.5}, true},
		{"nan rejected", models.SignalWeights{Content: math.NaN()}, true},
		{"inf rejected", models.SignalWeights{Review: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.weights)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStructFilterConfig(t *testing.T) {
	bad := models.FilterConfig{MinReviews: -1, MinReviewScore: 150}
	err := ValidateStruct(&bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var serr *StructError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StructError, got %T", err)
	}
	if len(serr.Fields) != 2 {
		t.Errorf("got %d field errors, want 2: %v", len(serr.Fields), serr)
	}
	if !strings.Contains(serr.Error(), "MinReviews") {
		t.Errorf("error %q should name the failing field", serr.Error())
	}
}

func TestValidateStructUserConfiguration(t *testing.T) {
	cfg := models.UserConfiguration{
		Weights: models.SignalWeights{ML: 0.5, Content: 0.5},
		Filters: models.FilterConfig{MinReviews: 1000, MinReviewScore: 70},
	}
	if err := ValidateStruct(&cfg); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}

	cfg.Weights.ML = math.NaN()
	if err := ValidateStruct(&cfg); err == nil {
		t.Error("nested NaN weight accepted")
	}
}

// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package signals

import (
	"context"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/features"
)

// Signal names as reported in score breakdowns.
const (
	NameML         = "ml"
	NameContent    = "content"
	NamePreference = "preference"
	NameReview     = "review"
)

// Signal scores a single candidate on one axis. Implementations must
// return values in [0, 100] and be safe for concurrent use.
type Signal interface {
	// Name returns the signal identifier used in score breakdowns.
	Name() string

	// Score computes the signal score for a candidate. The feature
	// vector belongs to the same session vocabulary the signal was
	// constructed with.
	Score(ctx context.Context, item *models.CatalogItem, fv *features.FeatureVector) (float64, error)
}

// Compile-time interface checks.
var (
	_ Signal = (*ML)(nil)
	_ Signal = (*Content)(nil)
	_ Signal = (*Preference)(nil)
	_ Signal = (*Review)(nil)
)

// clamp bounds a score to [0, 100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// clampRange bounds v to [lo, hi].
func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package signals

import (
	"context"
	"math"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/features"
)

// defaultVolumeCap is the review count at which the volume factor reaches
// full credit.
const defaultVolumeCap = 50_000

// Review converts raw review counts into a bounded 0-100 quality score:
//
//	score = 100 × positive_ratio × (0.7 + 0.3 × volume_factor)
//
// The ratio dominates and volume is a secondary multiplier: a 95%-positive
// game with 200 reviews still scores well above a 60%-positive game with a
// million reviews, but popularity is not irrelevant.
type Review struct {
	volumeCap int
}

// NewReview creates the review quality signal. A non-positive cap selects
// the default (50,000 reviews).
func NewReview(volumeCap int) *Review {
	if volumeCap <= 0 {
		volumeCap = defaultVolumeCap
	}
	return &Review{volumeCap: volumeCap}
}

// Name returns the signal identifier.
func (r *Review) Name() string { return NameReview }

// Score computes the review quality score for a candidate.
func (r *Review) Score(_ context.Context, item *models.CatalogItem, _ *features.FeatureVector) (float64, error) {
	total := item.TotalReviews()
	if total == 0 {
		return 0, nil
	}

	positiveRatio := float64(item.PositiveReviews) / float64(total)

	volumeFactor := math.Log1p(float64(total)) / math.Log1p(float64(r.volumeCap))
	if volumeFactor > 1 {
		volumeFactor = 1
	}

	return clamp(100 * positiveRatio * (0.7 + 0.3*volumeFactor)), nil
}

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

// Boost and penalty clamp bounds. Configuration values outside these
// ranges are clamped at use, not rejected: they originate from UI sliders
// where a silent clamp is a better experience than a hard error.
const (
	boostMin = 5
	boostMax = 20

	penaltyMin = -20
	penaltyMax = -5
)

// Preference scores candidates from the user's explicit tag and genre
// boosts and penalties. It is a standalone 0-100 score, not a delta
// applied elsewhere, so it can be weighted and tested independently.
//
// Hard exclusions are NOT this signal's job; they are applied by the
// combiner after scoring so the score an excluded item would have received
// stays recoverable for diagnostics.
type Preference struct {
	boostTags     map[string]float64
	boostGenres   map[string]float64
	penaltyTags   map[string]float64
	penaltyGenres map[string]float64
}

// baselineScore is the neutral starting point for every candidate.
const baselineScore = 50

// NewPreference creates the preference signal from a user configuration.
func NewPreference(cfg *models.UserConfiguration) *Preference {
	return &Preference{
		boostTags:     cfg.BoostTags,
		boostGenres:   cfg.BoostGenres,
		penaltyTags:   cfg.PenaltyTags,
		penaltyGenres: cfg.PenaltyGenres,
	}
}

// Name returns the signal identifier.
func (p *Preference) Name() string { return NamePreference }

// Score starts at the neutral baseline, adds a clamped boost per matching
// boost tag/genre, subtracts a clamped penalty per matching penalty
// tag/genre, and clamps the final result to [0, 100].
func (p *Preference) Score(_ context.Context, item *models.CatalogItem, _ *features.FeatureVector) (float64, error) {
	score := float64(baselineScore)

	for tag := range item.Tags {
		if v, ok := p.boostTags[tag]; ok {
			score += clampRange(v, boostMin, boostMax)
		}
		if v, ok := p.penaltyTags[tag]; ok {
			score += clampRange(v, penaltyMin, penaltyMax)
		}
	}

	for _, genre := range item.Genres {
		if v, ok := p.boostGenres[genre]; ok {
			score += clampRange(v, boostMin, boostMax)
		}
		if v, ok := p.penaltyGenres[genre]; ok {
			score += clampRange(v, penaltyMin, penaltyMax)
		}
	}

	return clamp(score), nil
}

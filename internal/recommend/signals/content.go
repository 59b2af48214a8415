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

// ContentWeights blends the four content similarity sub-scores. The
// defaults are tunable reference values and are normalized to sum to 1 at
// construction.
type ContentWeights struct {
	// Tag is the weight of tag cosine similarity. Default: 0.45.
	Tag float64 `json:"tag" koanf:"tag"`

	// Genre is the weight of genre cosine similarity. Default: 0.20.
	Genre float64 `json:"genre" koanf:"genre"`

	// Playtime is the weight of community median playtime depth, a
	// quality signal independent of personal taste. Default: 0.20.
	Playtime float64 `json:"playtime" koanf:"playtime"`

	// Review is the weight of the review ratio contribution. This is a
	// deliberately light duplicate of review sentiment for similarity
	// purposes only; it reads the raw positive ratio, a different
	// normalized range than the standalone review signal's
	// volume-factored score, so sentiment is not triple-weighted in the
	// final hybrid sum. Default: 0.15.
	Review float64 `json:"review" koanf:"review"`
}

// DefaultContentWeights returns the reference sub-score weights.
func DefaultContentWeights() ContentWeights {
	return ContentWeights{Tag: 0.45, Genre: 0.20, Playtime: 0.20, Review: 0.15}
}

// Content scores candidates by similarity to the user's engagement-weighted
// loved profile.
type Content struct {
	vocab   *features.Vocabulary
	profile *features.Profile
	weights ContentWeights
}

// NewContent creates the content similarity signal for one session.
// Zero-valued weights fall back to the defaults; weights are normalized.
//
//nolint:gocritic // hugeParam: weights passed by value for immutability
func NewContent(vocab *features.Vocabulary, profile *features.Profile, weights ContentWeights) *Content {
	if weights.Tag == 0 && weights.Genre == 0 && weights.Playtime == 0 && weights.Review == 0 {
		weights = DefaultContentWeights()
	}

	total := weights.Tag + weights.Genre + weights.Playtime + weights.Review
	weights.Tag /= total
	weights.Genre /= total
	weights.Playtime /= total
	weights.Review /= total

	return &Content{vocab: vocab, profile: profile, weights: weights}
}

// Name returns the signal identifier.
func (c *Content) Name() string { return NameContent }

// Score combines tag similarity, genre similarity, community playtime
// depth, and review ratio into a 0-100 content score. An item with no tag
// or genre overlap (or an empty loved profile) earns 0 on the similarity
// components but can still collect the quality components.
func (c *Content) Score(_ context.Context, _ *models.CatalogItem, fv *features.FeatureVector) (float64, error) {
	var tagSim, genreSim float64
	if !c.profile.Empty() {
		tagSim = features.CosineSimilarity(c.vocab.TagVotes(fv.Values), c.profile.TagVector)
		genreSim = features.CosineSimilarity(c.vocab.GenreOneHot(fv.Values), c.profile.GenreVector)
	}

	playtime := c.vocab.MedianPlaytimeLog(fv.Values)
	reviewRatio := c.vocab.ReviewRatio(fv.Values)

	score := 100 * (c.weights.Tag*tagSim +
		c.weights.Genre*genreSim +
		c.weights.Playtime*playtime +
		c.weights.Review*reviewRatio)

	return clamp(score), nil
}

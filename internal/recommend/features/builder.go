// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package features

import (
	"math"

	"github.com/tomtom215/gamescout/internal/models"
)

// FeatureVector is the numeric representation of one catalog item for one
// user session. Values layout is defined by the session Vocabulary.
type FeatureVector struct {
	ItemID int64
	Values []float64
}

// UserContext aggregates how the user's playtime distributes over tags.
// It feeds the tag-playtime interaction features: a tag the user has sunk
// hundreds of hours into amplifies matching candidate tags.
type UserContext struct {
	tagMinutes map[string]float64
}

// BuildUserContext sums the user's playtime per tag across owned items.
// Owned items without catalog metadata contribute nothing; the catalog
// provider owns identifier reconciliation.
func BuildUserContext(owned []models.OwnedItem, metadata map[int64]*models.CatalogItem) *UserContext {
	tagMinutes := make(map[string]float64)

	for i := range owned {
		meta, ok := metadata[owned[i].ItemID]
		if !ok {
			continue
		}
		for tag := range meta.Tags {
			tagMinutes[tag] += float64(owned[i].PlayDurationMinutes)
		}
	}

	return &UserContext{tagMinutes: tagMinutes}
}

// PlaytimeWeight returns log1p of the user's total minutes on a tag.
func (u *UserContext) PlaytimeWeight(tag string) float64 {
	return math.Log1p(u.tagMinutes[tag])
}

// Builder constructs feature vectors against a fixed vocabulary and user
// context. Safe for concurrent use; all fields are read-only after creation.
type Builder struct {
	vocab            *Vocabulary
	user             *UserContext
	medianCapMinutes float64
}

// defaultMedianCapMinutes is the community median playtime that earns full
// credit in the normalized playtime features (50 hours).
const defaultMedianCapMinutes = 3000

// NewBuilder creates a feature builder. medianCapMinutes bounds the
// normalized community playtime features; zero selects the default.
func NewBuilder(vocab *Vocabulary, user *UserContext, medianCapMinutes float64) *Builder {
	if medianCapMinutes <= 0 {
		medianCapMinutes = defaultMedianCapMinutes
	}
	if user == nil {
		user = &UserContext{tagMinutes: map[string]float64{}}
	}
	return &Builder{
		vocab:            vocab,
		user:             user,
		medianCapMinutes: medianCapMinutes,
	}
}

// Vocabulary returns the builder's session vocabulary.
func (b *Builder) Vocabulary() *Vocabulary { return b.vocab }

// Build converts a catalog item into a feature vector. Items with no tags
// or genres produce an all-zero vector rather than an error; they will rank
// low but are not eliminated here.
func (b *Builder) Build(item *models.CatalogItem) FeatureVector {
	nTags := b.vocab.TagCount()
	values := make([]float64, b.vocab.VectorSize())

	for tag, votes := range item.Tags {
		idx := b.vocab.TagIndex(tag)
		if idx < 0 {
			continue // Outside the session vocabulary
		}
		values[idx] = float64(votes)
		values[nTags+idx] = float64(votes) * b.user.PlaytimeWeight(tag)
	}

	genreOffset := 2 * nTags
	for _, genre := range item.Genres {
		idx := b.vocab.GenreIndex(genre)
		if idx < 0 {
			continue
		}
		values[genreOffset+idx] = 1
	}

	trailing := genreOffset + b.vocab.GenreCount()
	total := item.TotalReviews()
	values[trailing] = math.Log1p(float64(total))
	values[trailing+1] = item.PositiveRatio()
	values[trailing+2] = normalizedPlaytime(item.MedianPlaytimeMinutes, b.medianCapMinutes)
	values[trailing+3] = logScaledPlaytime(item.MedianPlaytimeMinutes, b.medianCapMinutes)

	return FeatureVector{ItemID: item.ItemID, Values: values}
}

// normalizedPlaytime maps community median playtime onto [0, 1] linearly.
func normalizedPlaytime(minutes int, capMinutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	v := float64(minutes) / capMinutes
	if v > 1 {
		v = 1
	}
	return v
}

// logScaledPlaytime maps community median playtime onto [0, 1] with a
// log-scaled curve, rewarding depth without letting sandbox titles saturate.
func logScaledPlaytime(minutes int, capMinutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	v := math.Log1p(float64(minutes)/60) / math.Log1p(capMinutes/60)
	if v > 1 {
		v = 1
	}
	return v
}

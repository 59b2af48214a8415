// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package features

import "math"

// Profile is the engagement-weighted aggregate of a user's owned-item
// feature vectors: the reference point for "what the user loves". Items
// with engagement 90 dominate the profile far more than items with
// engagement 10; engagement score is the single source of truth for taste
// weighting, not raw playtime.
type Profile struct {
	vocab *Vocabulary

	// TagVector is the engagement-weighted sum of tag vote features.
	TagVector []float64

	// GenreVector is the engagement-weighted sum of genre memberships.
	GenreVector []float64

	// TotalWeight is the summed engagement weight; zero means the user
	// has no engaged items and similarity against the profile is 0.
	TotalWeight float64
}

// BuildProfile aggregates owned-item feature vectors weighted by their
// engagement scores. Vectors without an engagement record contribute
// nothing. Built once per session, then shared read-only across workers.
func BuildProfile(vocab *Vocabulary, owned []FeatureVector, engagement map[int64]float64) *Profile {
	p := &Profile{
		vocab:       vocab,
		TagVector:   make([]float64, vocab.TagCount()),
		GenreVector: make([]float64, vocab.GenreCount()),
	}

	for i := range owned {
		weight := engagement[owned[i].ItemID]
		if weight <= 0 {
			continue
		}

		tags := vocab.TagVotes(owned[i].Values)
		for j, v := range tags {
			p.TagVector[j] += weight * v
		}
		genres := vocab.GenreOneHot(owned[i].Values)
		for j, v := range genres {
			p.GenreVector[j] += weight * v
		}
		p.TotalWeight += weight
	}

	return p
}

// Empty reports whether the profile carries no engagement signal.
func (p *Profile) Empty() bool {
	return p.TotalWeight == 0
}

// CosineSimilarity computes cosine similarity between two vectors of the
// same length. A zero vector on either side yields 0, never NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

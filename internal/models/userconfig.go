// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package models

// SignalWeights defines the relative contribution of each scoring signal.
// Weights are normalized at combine time, so they don't need to sum to 1.0;
// {35, 35, 20, 10} and {0.35, 0.35, 0.20, 0.10} produce identical results.
type SignalWeights struct {
	// ML is the weight for the learned engagement predictor.
	ML float64 `json:"ml" koanf:"ml" validate:"finite_nonneg"`

	// Content is the weight for content similarity against the loved profile.
	Content float64 `json:"content" koanf:"content" validate:"finite_nonneg"`

	// Preference is the weight for explicit user boosts and penalties.
	Preference float64 `json:"preference" koanf:"preference" validate:"finite_nonneg"`

	// Review is the weight for community review quality.
	Review float64 `json:"review" koanf:"review" validate:"finite_nonneg"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
// If all weights are zero, equal weights (0.25 each) are returned rather
// than dividing by zero.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) Normalize() SignalWeights {
	sum := w.ML + w.Content + w.Preference + w.Review
	if sum == 0 {
		const equalWeight = 0.25
		return SignalWeights{
			ML: equalWeight, Content: equalWeight,
			Preference: equalWeight, Review: equalWeight,
		}
	}

	return SignalWeights{
		ML:         w.ML / sum,
		Content:    w.Content / sum,
		Preference: w.Preference / sum,
		Review:     w.Review / sum,
	}
}

// WithoutML returns a copy with the ML weight forced to zero and the
// remaining three weights renormalized. Used when the engagement predictor
// could not be trained. If the remaining weights are all zero, content,
// preference, and review fall back to equal thirds.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) WithoutML() SignalWeights {
	w.ML = 0
	sum := w.Content + w.Preference + w.Review
	if sum == 0 {
		const third = 1.0 / 3.0
		return SignalWeights{Content: third, Preference: third, Review: third}
	}

	return SignalWeights{
		Content:    w.Content / sum,
		Preference: w.Preference / sum,
		Review:     w.Review / sum,
	}
}

// ToMap returns the weights as a signal-name-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"ml":         w.ML,
		"content":    w.Content,
		"preference": w.Preference,
		"review":     w.Review,
	}
}

// FilterConfig holds the universal (non-personalized) appropriateness gates
// applied to every candidate before any scoring happens.
type FilterConfig struct {
	// AllowNSFW admits adult-only titles. Default false: NSFW items are
	// dropped unless the user opts in.
	AllowNSFW bool `json:"allow_nsfw" koanf:"allow_nsfw"`

	// ExcludeEarlyAccess drops early-access titles.
	ExcludeEarlyAccess bool `json:"exclude_early_access" koanf:"exclude_early_access"`

	// MinReviews drops items with fewer total reviews.
	MinReviews int `json:"min_reviews" koanf:"min_reviews" validate:"min=0"`

	// MinReviewScore drops items whose positive percentage (0-100) is lower.
	MinReviewScore float64 `json:"min_review_score" koanf:"min_review_score" validate:"min=0,max=100"`

	// MaxPrice drops items priced above this value. Zero disables the
	// filter; free items always pass.
	MaxPrice float64 `json:"max_price" koanf:"max_price" validate:"min=0"`

	// ReleaseYearMin and ReleaseYearMax bound the release year when set.
	// Items with an unknown release year are only dropped when the
	// corresponding bound is active.
	ReleaseYearMin *int `json:"release_year_min,omitempty" koanf:"release_year_min"`
	ReleaseYearMax *int `json:"release_year_max,omitempty" koanf:"release_year_max"`
}

// DiversityLimits caps how many admitted recommendations may share a genre,
// tag, or series. A zero-length map disables that dimension.
type DiversityLimits struct {
	// PerGenre caps admissions per genre name.
	PerGenre map[string]int `json:"per_genre,omitempty" koanf:"per_genre"`

	// PerTag caps admissions per tag name.
	PerTag map[string]int `json:"per_tag,omitempty" koanf:"per_tag"`

	// PerSeries caps admissions per series. Series membership is a
	// best-effort lowercase substring match of the series name against
	// the item name; the catalog has no canonical series taxonomy.
	PerSeries map[string]int `json:"per_series,omitempty" koanf:"per_series"`
}

// Empty reports whether no diversity caps are configured.
func (d *DiversityLimits) Empty() bool {
	return len(d.PerGenre) == 0 && len(d.PerTag) == 0 && len(d.PerSeries) == 0
}

// UserConfiguration is the per-request tuning payload supplied by the
// caller. The core never mutates it. Out-of-range boost and penalty values
// are clamped at use rather than rejected; these originate from UI sliders
// where silent clamping beats a hard error.
type UserConfiguration struct {
	// Weights blends the four signal scores at combine time.
	Weights SignalWeights `json:"weights" koanf:"weights"`

	// BoostTags and BoostGenres add points (clamped to +5..+20 per match)
	// to the preference score for matching items.
	BoostTags   map[string]float64 `json:"boost_tags,omitempty" koanf:"boost_tags"`
	BoostGenres map[string]float64 `json:"boost_genres,omitempty" koanf:"boost_genres"`

	// PenaltyTags and PenaltyGenres subtract points (clamped to -20..-5
	// per match) from the preference score for matching items.
	PenaltyTags   map[string]float64 `json:"penalty_tags,omitempty" koanf:"penalty_tags"`
	PenaltyGenres map[string]float64 `json:"penalty_genres,omitempty" koanf:"penalty_genres"`

	// HardExcludeTags and HardExcludeGenres veto items outright after
	// scoring. An excluded item never appears in output regardless of its
	// score, but the score it would have received stays inspectable in
	// pipeline diagnostics.
	HardExcludeTags   []string `json:"hard_exclude_tags,omitempty" koanf:"hard_exclude_tags"`
	HardExcludeGenres []string `json:"hard_exclude_genres,omitempty" koanf:"hard_exclude_genres"`

	// Filters are the universal quality gates applied before scoring.
	Filters FilterConfig `json:"filters" koanf:"filters"`

	// Diversity caps per-category admissions during final selection.
	Diversity DiversityLimits `json:"diversity" koanf:"diversity"`
}

// HasPreferenceSignal reports whether the user configured any boosts or
// penalties. When false, the preference score is a flat baseline for every
// candidate and its weight carries no information.
func (u *UserConfiguration) HasPreferenceSignal() bool {
	return len(u.BoostTags) > 0 || len(u.BoostGenres) > 0 ||
		len(u.PenaltyTags) > 0 || len(u.PenaltyGenres) > 0
}

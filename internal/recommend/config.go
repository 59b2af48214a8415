// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"fmt"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/predictor"
	"github.com/tomtom215/gamescout/internal/recommend/signals"
)

// Config holds engine-level tuning. These are operator settings, loaded
// once at startup; per-user knobs live in models.UserConfiguration.
type Config struct {
	// Content blends the content similarity sub-scores.
	Content signals.ContentWeights `json:"content" koanf:"content"`

	// Engagement tunes the engagement score derivation.
	Engagement models.EngagementParams `json:"engagement" koanf:"engagement"`

	// Predictor holds engagement forest training parameters.
	Predictor predictor.Config `json:"predictor" koanf:"predictor"`

	// BlockedTags are excluded from the feature vocabulary. Ubiquitous
	// storefront tags carry no taste signal and only add noise features.
	BlockedTags []string `json:"blocked_tags" koanf:"blocked_tags"`

	// MetaGenres are excluded from the feature vocabulary, and a candidate
	// whose genres are ALL meta genres is dropped by the universal filters:
	// such genre sets describe distribution, not content.
	MetaGenres []string `json:"meta_genres" koanf:"meta_genres"`

	// ReviewVolumeCap is the review count at which the review signal's
	// volume factor saturates.
	ReviewVolumeCap int `json:"review_volume_cap" koanf:"review_volume_cap"`

	// MedianPlaytimeCapMinutes bounds the normalized community playtime
	// features. Zero selects the feature builder default.
	MedianPlaytimeCapMinutes float64 `json:"median_playtime_cap_minutes" koanf:"median_playtime_cap_minutes"`

	// DedupeEditions collapses multiple editions of the same title down to
	// the highest-scored one during selection.
	DedupeEditions bool `json:"dedupe_editions" koanf:"dedupe_editions"`

	// EditionSuffixes are the lowercase title suffixes stripped when
	// grouping editions.
	EditionSuffixes []string `json:"edition_suffixes" koanf:"edition_suffixes"`

	// DefaultLimit is used when a request leaves Limit unset; MaxLimit
	// clamps requested limits.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`
	MaxLimit     int `json:"max_limit" koanf:"max_limit"`

	// Workers bounds scoring concurrency. Zero means runtime.NumCPU.
	Workers int `json:"workers" koanf:"workers"`

	// MaxCachedModels caps the per-user trained-model cache.
	MaxCachedModels int `json:"max_cached_models" koanf:"max_cached_models"`
}

// DefaultConfig returns the reference engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Content:    signals.DefaultContentWeights(),
		Engagement: models.DefaultEngagementParams(),
		Predictor:  predictor.DefaultConfig(),
		BlockedTags: []string{
			"Early Access",
			"Free to Play",
			"Indie",
			"Casual",
		},
		MetaGenres: []string{
			"Indie",
			"Casual",
			"Utilities",
			"Software",
		},
		ReviewVolumeCap: 50_000,
		DedupeEditions:  true,
		EditionSuffixes: []string{
			"game of the year edition",
			"goty edition",
			"definitive edition",
			"enhanced edition",
			"complete edition",
			"deluxe edition",
			"ultimate edition",
			"premium edition",
			"gold edition",
			"legendary edition",
			"anniversary edition",
			"special edition",
			"collector's edition",
			"director's cut",
			"remastered",
		},
		DefaultLimit:    20,
		MaxLimit:        100,
		Workers:         0,
		MaxCachedModels: 8,
	}
}

// Validate checks the configuration for operator mistakes.
func (c *Config) Validate() error {
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit %d below default_limit %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.ReviewVolumeCap <= 0 {
		return fmt.Errorf("review_volume_cap must be positive, got %d", c.ReviewVolumeCap)
	}
	if c.MedianPlaytimeCapMinutes < 0 {
		return fmt.Errorf("median_playtime_cap_minutes must not be negative, got %g", c.MedianPlaytimeCapMinutes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxCachedModels <= 0 {
		return fmt.Errorf("max_cached_models must be positive, got %d", c.MaxCachedModels)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	clone.BlockedTags = append([]string(nil), c.BlockedTags...)
	clone.MetaGenres = append([]string(nil), c.MetaGenres...)
	clone.EditionSuffixes = append([]string(nil), c.EditionSuffixes...)
	return &clone
}

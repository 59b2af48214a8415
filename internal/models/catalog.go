// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package models

// CatalogItem is one candidate game from the catalog provider. Items are
// immutable between catalog refreshes; a refresh replaces the catalog
// wholesale. Tag and genre names arrive already normalized (trimmed,
// consistent case) from the provider.
type CatalogItem struct {
	// ItemID is the unique catalog identifier (app ID).
	ItemID int64 `json:"item_id"`

	// Name is the store title.
	Name string `json:"name"`

	// Tags maps community tag names to their vote counts.
	// Insertion order carries no meaning.
	Tags map[string]int `json:"tags"`

	// Genres is the set of store genres.
	Genres []string `json:"genres"`

	// Price is the current price in the store currency. Zero means free.
	Price float64 `json:"price"`

	// ReleaseYear is the release year. Nil when unknown; coverage in the
	// catalog is sparse, so absence must not eliminate an item unless an
	// explicit release-year filter is active.
	ReleaseYear *int `json:"release_year,omitempty"`

	// PositiveReviews and NegativeReviews are raw community review counts.
	PositiveReviews int `json:"positive_reviews"`
	NegativeReviews int `json:"negative_reviews"`

	// MedianPlaytimeMinutes is the community median playtime in minutes.
	MedianPlaytimeMinutes int `json:"median_playtime_minutes"`

	// IsEarlyAccess marks early-access titles.
	IsEarlyAccess bool `json:"is_early_access"`

	// IsNSFW marks adult-only titles.
	IsNSFW bool `json:"is_nsfw"`
}

// TotalReviews returns the combined review count.
func (c *CatalogItem) TotalReviews() int {
	return c.PositiveReviews + c.NegativeReviews
}

// PositiveRatio returns the fraction of positive reviews, or 0 with no reviews.
func (c *CatalogItem) PositiveRatio() float64 {
	total := c.TotalReviews()
	if total == 0 {
		return 0
	}
	return float64(c.PositiveReviews) / float64(total)
}

// HasGenre reports whether the item carries the given genre.
func (c *CatalogItem) HasGenre(genre string) bool {
	for _, g := range c.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// HasTag reports whether the item carries the given community tag.
func (c *CatalogItem) HasTag(tag string) bool {
	_, ok := c.Tags[tag]
	return ok
}

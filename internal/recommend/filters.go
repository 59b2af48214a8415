// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"github.com/tomtom215/gamescout/internal/models"
)

// filterResult is the outcome of the universal filtering phase.
type filterResult struct {
	kept  []models.CatalogItem
	drops map[string]int
}

// applyUniversalFilters runs the non-personalized appropriateness gates
// over the catalog. Each dropped item is attributed to the first filter
// that rejected it, in a fixed order, so drop counts are deterministic.
func applyUniversalFilters(catalog []models.CatalogItem, owned map[int64]struct{}, f *models.FilterConfig, metaGenres map[string]struct{}) filterResult {
	res := filterResult{
		kept:  make([]models.CatalogItem, 0, len(catalog)),
		drops: make(map[string]int),
	}

	for i := range catalog {
		item := &catalog[i]
		if label := rejectionLabel(item, owned, f, metaGenres); label != "" {
			res.drops[label]++
			continue
		}
		res.kept = append(res.kept, catalog[i])
	}

	return res
}

// rejectionLabel returns the name of the first filter that rejects the
// item, or "" when the item passes all gates.
func rejectionLabel(item *models.CatalogItem, owned map[int64]struct{}, f *models.FilterConfig, metaGenres map[string]struct{}) string {
	if item.ItemID <= 0 || item.Name == "" {
		return filterMalformed
	}
	if _, has := owned[item.ItemID]; has {
		return filterOwned
	}
	if item.IsNSFW && !f.AllowNSFW {
		return filterNSFW
	}
	if item.IsEarlyAccess && f.ExcludeEarlyAccess {
		return filterEarlyAccess
	}
	if f.MinReviews > 0 && item.TotalReviews() < f.MinReviews {
		return filterMinReviews
	}
	if f.MinReviewScore > 0 && item.PositiveRatio()*100 < f.MinReviewScore {
		return filterMinReviewScore
	}
	// Free items always pass the price gate.
	if f.MaxPrice > 0 && item.Price > f.MaxPrice {
		return filterMaxPrice
	}
	if label := releaseYearLabel(item, f); label != "" {
		return label
	}
	if metaGenreOnly(item, metaGenres) {
		return filterMetaGenreOnly
	}
	return ""
}

// releaseYearLabel applies the release-year bounds. An unknown year only
// rejects when a bound is active; catalog year coverage is sparse and
// absence must not eliminate items by default.
func releaseYearLabel(item *models.CatalogItem, f *models.FilterConfig) string {
	if f.ReleaseYearMin == nil && f.ReleaseYearMax == nil {
		return ""
	}
	if item.ReleaseYear == nil {
		return filterReleaseYear
	}
	if f.ReleaseYearMin != nil && *item.ReleaseYear < *f.ReleaseYearMin {
		return filterReleaseYear
	}
	if f.ReleaseYearMax != nil && *item.ReleaseYear > *f.ReleaseYearMax {
		return filterReleaseYear
	}
	return ""
}

// metaGenreOnly reports whether the item's genre set is non-empty and
// consists entirely of meta genres. Items with no genres at all pass; they
// rank low on content similarity but are not eliminated here.
func metaGenreOnly(item *models.CatalogItem, metaGenres map[string]struct{}) bool {
	if len(item.Genres) == 0 || len(metaGenres) == 0 {
		return false
	}
	for _, g := range item.Genres {
		if _, meta := metaGenres[g]; !meta {
			return false
		}
	}
	return true
}

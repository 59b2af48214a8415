// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import "errors"

// Structural errors. These are the only failures that propagate to the
// caller; everything per-item or per-signal degrades gracefully instead.
var (
	// ErrEmptyCatalog is returned when the request carries no catalog.
	ErrEmptyCatalog = errors.New("recommend: empty catalog")

	// ErrEmptyLibrary is returned when the request carries no owned items.
	ErrEmptyLibrary = errors.New("recommend: empty library")

	// ErrInvalidConfig wraps user configuration validation failures.
	ErrInvalidConfig = errors.New("recommend: invalid user configuration")
)

// Reason is a diagnostic code attached to empty results so the caller can
// distinguish "your filters eliminated everything" from "nothing survived
// exclusion and selection" and react accordingly.
type Reason string

const (
	// ReasonOK accompanies a non-empty result.
	ReasonOK Reason = ""

	// ReasonFiltersEliminatedAll means the universal filters removed every
	// candidate before scoring. The caller should suggest loosening filters.
	ReasonFiltersEliminatedAll Reason = "filters_eliminated_all"

	// ReasonNoCandidates means candidates were scored, but hard exclusions
	// and diversity selection left nothing to return.
	ReasonNoCandidates Reason = "no_candidates"
)

// Universal filter labels, used both in drop diagnostics and as the
// Prometheus filter label.
const (
	filterMalformed      = "malformed"
	filterOwned          = "owned"
	filterNSFW           = "nsfw"
	filterEarlyAccess    = "early_access"
	filterMinReviews     = "min_reviews"
	filterMinReviewScore = "min_review_score"
	filterMaxPrice       = "max_price"
	filterReleaseYear    = "release_year"
	filterMetaGenreOnly  = "meta_genre_only"
)

// Mid-pipeline drop reasons for the candidates-dropped metric.
const (
	dropScoringError = "scoring_error"
	dropHardExcluded = "hard_excluded"
	dropDiversityCap = "diversity_cap"
	dropEditionDupe  = "edition_dupe"
)

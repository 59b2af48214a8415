// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"time"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/predictor"
)

// Request is one recommendation invocation. The engine never mutates the
// request or anything it references.
type Request struct {
	// RequestID correlates logs and metadata. Generated when empty.
	RequestID string

	// UserID identifies the requesting user for model caching.
	UserID int64

	// OwnedItems is the user's library snapshot. Must be non-empty.
	OwnedItems []models.OwnedItem

	// Catalog is the candidate universe, including entries for the user's
	// owned items (their metadata feeds the taste profile). Must be
	// non-empty.
	Catalog []models.CatalogItem

	// Config is the per-user tuning payload.
	Config models.UserConfiguration

	// Limit caps the returned list. Non-positive selects the configured
	// default; values above the configured maximum are clamped.
	Limit int

	// KeepEditions disables edition deduplication for this request.
	KeepEditions bool

	// Now overrides the pipeline clock. Zero means time.Now. Engagement
	// recency and snapshot hashing read this, so tests can pin it.
	Now time.Time
}

// ScoredCandidate is one ranked recommendation with its per-signal
// breakdown. Sub-scores are pre-weighting values in [0, 100].
type ScoredCandidate struct {
	ItemID int64  `json:"item_id"`
	Name   string `json:"name"`

	MLScore         float64 `json:"ml_score"`
	ContentScore    float64 `json:"content_score"`
	PreferenceScore float64 `json:"preference_score"`
	ReviewScore     float64 `json:"review_score"`

	// FinalScore is the weighted blend of the four sub-scores.
	FinalScore float64 `json:"final_score"`

	// Rank is the 1-based position in the returned list.
	Rank int `json:"rank"`
}

// Response is the pipeline output. Candidates may be shorter than the
// requested limit when too few candidates survive; an empty Candidates
// slice always carries a non-empty Reason.
type Response struct {
	Candidates []ScoredCandidate `json:"candidates"`

	// TotalCandidates is how many candidates entered scoring after the
	// universal filters.
	TotalCandidates int `json:"total_candidates"`

	// Reason explains an empty result. Empty for non-empty results.
	Reason Reason `json:"reason,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Metadata carries per-request diagnostics for logging and UI display.
type Metadata struct {
	RequestID   string        `json:"request_id"`
	UserID      int64         `json:"user_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`

	// Weights are the effective normalized weights actually used, after
	// ml fallback and preference redistribution.
	Weights models.SignalWeights `json:"weights"`

	// MLFallback reports that the engagement predictor was unavailable
	// and its weight was redistributed.
	MLFallback bool `json:"ml_fallback"`

	// SnapshotHash identifies the library snapshot the model was keyed by.
	SnapshotHash string `json:"snapshot_hash"`

	// ModelTrainedAt and ValidationMAE describe the model used, when any.
	ModelTrainedAt time.Time `json:"model_trained_at,omitempty"`
	ValidationMAE  float64   `json:"validation_mae,omitempty"`

	// TopFeatures are the model's strongest features, for explanations.
	TopFeatures []predictor.Importance `json:"top_features,omitempty"`

	// FilterDrops counts universal-filter eliminations by filter name.
	FilterDrops map[string]int `json:"filter_drops,omitempty"`

	// PhaseCounts records the candidate count surviving each phase.
	PhaseCounts map[string]int `json:"phase_counts,omitempty"`
}

// TrainingReport summarizes one explicit training run.
type TrainingReport struct {
	UserID        int64                  `json:"user_id"`
	SnapshotHash  string                 `json:"snapshot_hash"`
	SampleCount   int                    `json:"sample_count"`
	HoldoutCount  int                    `json:"holdout_count"`
	ValidationMAE float64                `json:"validation_mae"`
	TopFeatures   []predictor.Importance `json:"top_features,omitempty"`
	Duration      time.Duration          `json:"duration"`
}

// Pipeline phase names, used for phase timing metrics and PhaseCounts.
const (
	phaseUniversalFilter = "universal_filter"
	phaseFeatures        = "features"
	phaseTraining        = "training"
	phaseScoring         = "scoring"
	phaseCombine         = "combine"
	phaseHardExclude     = "hard_exclude"
	phaseDiversity       = "diversity"
	phaseRank            = "rank"
)

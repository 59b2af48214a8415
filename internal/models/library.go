// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package models

import (
	"math"
	"time"
)

// OwnedItem is an immutable snapshot of one game in the user's library,
// produced by the library sync collaborator. Snapshots are superseded
// wholesale on resync, never merged.
type OwnedItem struct {
	// ItemID is the unique catalog identifier (app ID).
	ItemID int64 `json:"item_id"`

	// Name is the game title. Optional; used only for diagnostics.
	Name string `json:"name,omitempty"`

	// PlayDurationMinutes is the total recorded playtime in minutes.
	PlayDurationMinutes int64 `json:"play_duration_minutes"`

	// LastPlayed is when the game was last launched. Nil if never played.
	LastPlayed *time.Time `json:"last_played,omitempty"`

	// AchievementRatio is the fraction of achievements unlocked (0-1).
	// Nil when the game has no achievements or stats are private.
	AchievementRatio *float64 `json:"achievement_ratio,omitempty"`
}

// EngagementRecord is the derived 0-100 engagement score for an owned item.
// It is recomputed from its source OwnedItem on every pipeline run and is
// never persisted independently.
type EngagementRecord struct {
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}

// EngagementParams tunes the engagement score derivation.
type EngagementParams struct {
	// PlaytimeCapMinutes is the playtime at which the playtime component
	// reaches its full 60 points. The curve is log-scaled, so half the
	// cap still earns well over half the points.
	// Default: 6000 (100 hours).
	PlaytimeCapMinutes float64 `json:"playtime_cap_minutes" koanf:"playtime_cap_minutes"`

	// RecencyHorizonDays is the window over which the recency component
	// decays linearly from 30 points to zero.
	// Default: 365.
	RecencyHorizonDays float64 `json:"recency_horizon_days" koanf:"recency_horizon_days"`
}

// DefaultEngagementParams returns the reference engagement parameters.
func DefaultEngagementParams() EngagementParams {
	return EngagementParams{
		PlaytimeCapMinutes: 6000,
		RecencyHorizonDays: 365,
	}
}

// ComputeEngagement derives the engagement score for an owned item:
//
//	playtime component:    0-60, log-scaled saturating curve
//	recency component:     0-30, linear decay since last played (0 if never)
//	achievement component: 0-10, linear in achievement ratio
//
// The result is always within [0, 100].
func ComputeEngagement(item OwnedItem, params EngagementParams, now time.Time) EngagementRecord {
	if params.PlaytimeCapMinutes <= 0 {
		params.PlaytimeCapMinutes = 6000
	}
	if params.RecencyHorizonDays <= 0 {
		params.RecencyHorizonDays = 365
	}

	score := playtimeComponent(item.PlayDurationMinutes, params.PlaytimeCapMinutes) +
		recencyComponent(item.LastPlayed, params.RecencyHorizonDays, now) +
		achievementComponent(item.AchievementRatio)

	return EngagementRecord{
		ItemID: item.ItemID,
		Score:  clampScore(score),
	}
}

// playtimeComponent maps minutes played onto [0, 60] using a log-scaled
// saturating curve over hours. Ten hours earns roughly half the component
// and the cap earns all of it, so a single thousand-hour outlier cannot
// dominate the taste signal.
func playtimeComponent(minutes int64, capMinutes float64) float64 {
	if minutes <= 0 {
		return 0
	}

	hours := float64(minutes) / 60
	capHours := capMinutes / 60
	v := 60 * math.Log1p(hours) / math.Log1p(capHours)
	if v > 60 {
		v = 60
	}
	return v
}

// recencyComponent maps time since last play onto [0, 30] with linear decay.
func recencyComponent(lastPlayed *time.Time, horizonDays float64, now time.Time) float64 {
	if lastPlayed == nil || lastPlayed.IsZero() {
		return 0
	}

	days := now.Sub(*lastPlayed).Hours() / 24
	if days < 0 {
		days = 0 // Clock skew from the sync collaborator
	}

	v := 30 * (1 - days/horizonDays)
	if v < 0 {
		return 0
	}
	return v
}

// achievementComponent maps achievement completion onto [0, 10].
func achievementComponent(ratio *float64) float64 {
	if ratio == nil {
		return 0
	}

	r := *ratio
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return 10 * r
}

// clampScore bounds a score to [0, 100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package models

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestComputeEngagementBounds(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	params := DefaultEngagementParams()

	tests := []struct {
		name string
		item OwnedItem
	}{
		{"never played", OwnedItem{ItemID: 1}},
		{"minimal playtime", OwnedItem{ItemID: 2, PlayDurationMinutes: 1}},
		{"extreme playtime", OwnedItem{ItemID: 3, PlayDurationMinutes: 1_000_000}},
		{
			"everything maxed",
			OwnedItem{
				ItemID:              4,
				PlayDurationMinutes: 100_000,
				LastPlayed:          timePtr(now),
				AchievementRatio:    floatPtr(1.0),
			},
		},
		{
			"corrupt achievement ratio",
			OwnedItem{ItemID: 5, PlayDurationMinutes: 60, AchievementRatio: floatPtr(5.0)},
		},
		{
			"future last played",
			OwnedItem{ItemID: 6, LastPlayed: timePtr(now.Add(48 * time.Hour))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ComputeEngagement(tt.item, params, now)
			if rec.Score < 0 || rec.Score > 100 {
				t.Errorf("score %.2f out of [0, 100]", rec.Score)
			}
			if rec.ItemID != tt.item.ItemID {
				t.Errorf("item ID %d, want %d", rec.ItemID, tt.item.ItemID)
			}
		})
	}
}

func TestComputeEngagementComponents(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	params := DefaultEngagementParams()

	// Played to the cap, just now, with all achievements: full marks.
	full := ComputeEngagement(OwnedItem{
		ItemID:              1,
		PlayDurationMinutes: 6000,
		LastPlayed:          timePtr(now),
		AchievementRatio:    floatPtr(1.0),
	}, params, now)
	if full.Score < 99.9 {
		t.Errorf("fully engaged item scored %.2f, want ~100", full.Score)
	}

	// Never played at all: zero.
	zero := ComputeEngagement(OwnedItem{ItemID: 2}, params, now)
	if zero.Score != 0 {
		t.Errorf("untouched item scored %.2f, want 0", zero.Score)
	}

	// The playtime curve saturates: 10x the playtime must earn far less
	// than 10x the score.
	small := ComputeEngagement(OwnedItem{ItemID: 3, PlayDurationMinutes: 600}, params, now)
	big := ComputeEngagement(OwnedItem{ItemID: 4, PlayDurationMinutes: 6000}, params, now)
	if big.Score <= small.Score {
		t.Fatalf("more playtime must not score lower: %.2f <= %.2f", big.Score, small.Score)
	}
	if big.Score > 2*small.Score {
		t.Errorf("playtime curve not saturating: %.2f vs %.2f", big.Score, small.Score)
	}

	// Recency decays linearly and bottoms out at the horizon.
	recent := ComputeEngagement(OwnedItem{ItemID: 5, LastPlayed: timePtr(now.AddDate(0, 0, -30))}, params, now)
	stale := ComputeEngagement(OwnedItem{ItemID: 6, LastPlayed: timePtr(now.AddDate(-2, 0, 0))}, params, now)
	if recent.Score <= stale.Score {
		t.Errorf("recent play %.2f should outscore stale play %.2f", recent.Score, stale.Score)
	}
	if stale.Score != 0 {
		t.Errorf("play beyond horizon scored %.2f, want 0", stale.Score)
	}

	// Achievements contribute linearly up to 10 points.
	half := ComputeEngagement(OwnedItem{ItemID: 7, AchievementRatio: floatPtr(0.5)}, params, now)
	if half.Score != 5 {
		t.Errorf("half achievements scored %.2f, want 5", half.Score)
	}
}

func TestComputeEngagementScenarioWeights(t *testing.T) {
	// A 300-hour RPG should land near 95 engagement, a one-hour
	// experiment near 5.
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	params := DefaultEngagementParams()

	loved := ComputeEngagement(OwnedItem{
		ItemID:              1,
		PlayDurationMinutes: 300 * 60,
		LastPlayed:          timePtr(now.AddDate(0, 0, -14)),
		AchievementRatio:    floatPtr(0.8),
	}, params, now)
	ignored := ComputeEngagement(OwnedItem{
		ItemID:              2,
		PlayDurationMinutes: 60,
		LastPlayed:          timePtr(now.AddDate(-1, 0, -1)),
	}, params, now)

	if loved.Score < 85 {
		t.Errorf("loved item scored %.2f, want >= 85", loved.Score)
	}
	if ignored.Score > 15 {
		t.Errorf("ignored item scored %.2f, want <= 15", ignored.Score)
	}
	if loved.Score <= ignored.Score {
		t.Errorf("loved %.2f must outrank ignored %.2f", loved.Score, ignored.Score)
	}
}

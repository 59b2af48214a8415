// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"testing"

	"github.com/tomtom215/gamescout/internal/models"
)

func TestDiversitySelectorGenreCap(t *testing.T) {
	sel := newDiversitySelector(models.DiversityLimits{
		PerGenre: map[string]int{"Action": 2},
	})

	action := func(id int64) *models.CatalogItem {
		return &models.CatalogItem{ItemID: id, Name: "A", Genres: []string{"Action"}}
	}

	if !sel.admit(action(1)) || !sel.admit(action(2)) {
		t.Fatal("first two Action items should be admitted")
	}
	if sel.admit(action(3)) {
		t.Error("third Action item admitted over the cap")
	}
	// An uncapped genre is unaffected.
	if !sel.admit(&models.CatalogItem{ItemID: 4, Name: "R", Genres: []string{"RPG"}}) {
		t.Error("uncapped genre rejected")
	}
}

func TestDiversitySelectorRejectionConsumesNoQuota(t *testing.T) {
	sel := newDiversitySelector(models.DiversityLimits{
		PerGenre: map[string]int{"Action": 1, "RPG": 1},
	})

	if !sel.admit(&models.CatalogItem{ItemID: 1, Name: "A", Genres: []string{"Action"}}) {
		t.Fatal("first Action item rejected")
	}

	// Action is full; this item must be rejected without spending the RPG slot.
	if sel.admit(&models.CatalogItem{ItemID: 2, Name: "AR", Genres: []string{"Action", "RPG"}}) {
		t.Fatal("over-cap item admitted")
	}
	if !sel.admit(&models.CatalogItem{ItemID: 3, Name: "R", Genres: []string{"RPG"}}) {
		t.Error("RPG slot was consumed by a rejected candidate")
	}
}

func TestDiversitySelectorTagAndSeriesCaps(t *testing.T) {
	sel := newDiversitySelector(models.DiversityLimits{
		PerTag:    map[string]int{"Roguelike": 1},
		PerSeries: map[string]int{"Dragonfall": 1},
	})

	if !sel.admit(&models.CatalogItem{ItemID: 1, Name: "Dungeon Crawl", Tags: map[string]int{"Roguelike": 90}}) {
		t.Fatal("first roguelike rejected")
	}
	if sel.admit(&models.CatalogItem{ItemID: 2, Name: "Pit Dive", Tags: map[string]int{"Roguelike": 80}}) {
		t.Error("tag cap not enforced")
	}

	if !sel.admit(&models.CatalogItem{ItemID: 3, Name: "Dragonfall II"}) {
		t.Fatal("first series entry rejected")
	}
	// Series matching is case-insensitive substring on the item name.
	if sel.admit(&models.CatalogItem{ItemID: 4, Name: "DRAGONFALL: Origins"}) {
		t.Error("series cap not enforced")
	}
	if !sel.admit(&models.CatalogItem{ItemID: 5, Name: "Unrelated Quest"}) {
		t.Error("non-series item rejected")
	}
}

func TestBaseEditionName(t *testing.T) {
	suffixes := DefaultConfig().EditionSuffixes

	tests := []struct {
		in   string
		want string
	}{
		{"Dragonfall", "dragonfall"},
		{"Dragonfall: Definitive Edition", "dragonfall"},
		{"Dragonfall™ - Game of the Year Edition", "dragonfall"},
		{"Dragonfall Deluxe Edition", "dragonfall"},
		{"Starbound Saga: Complete Edition Remastered", "starbound saga"},
		{"Edition Wars", "edition wars"},
	}

	for _, tt := range tests {
		if got := baseEditionName(tt.in, suffixes); got != tt.want {
			t.Errorf("baseEditionName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDedupeEditionsKeepsHighestScored(t *testing.T) {
	byID := map[int64]*models.CatalogItem{
		1: {ItemID: 1, Name: "Starbound Saga: Definitive Edition"},
		2: {ItemID: 2, Name: "Starbound Saga"},
		3: {ItemID: 3, Name: "Goal Rush"},
	}
	// Already sorted by final score descending.
	cands := []ScoredCandidate{
		{ItemID: 1, FinalScore: 90},
		{ItemID: 2, FinalScore: 85},
		{ItemID: 3, FinalScore: 80},
	}

	kept, dropped := dedupeEditions(cands, byID, DefaultConfig().EditionSuffixes)
	if dropped != 1 {
		t.Errorf("dropped %d, want 1", dropped)
	}
	if len(kept) != 2 || kept[0].ItemID != 1 || kept[1].ItemID != 3 {
		t.Errorf("kept = %v, want items 1 and 3", kept)
	}
}

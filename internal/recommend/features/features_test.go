// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package features

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/gamescout/internal/models"
)

func testCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{
			ItemID: 10,
			Name:   "Dragonfall",
			Tags:   map[string]int{"RPG": 100, "Open World": 80, "Singleplayer": 40},
			Genres: []string{"RPG", "Adventure"},

			PositiveReviews:       900,
			NegativeReviews:       100,
			MedianPlaytimeMinutes: 2400,
		},
		{
			ItemID: 11,
			Name:   "Goal Rush",
			Tags:   map[string]int{"Sports": 50, "Multiplayer": 30},
			Genres: []string{"Sports", "Indie"},

			PositiveReviews: 40,
			NegativeReviews: 60,
		},
	}
}

func TestBuildVocabularyBlocklists(t *testing.T) {
	vocab := BuildVocabulary(testCatalog(), []string{"Singleplayer", "Multiplayer"}, []string{"Indie"})

	if idx := vocab.TagIndex("Singleplayer"); idx != -1 {
		t.Errorf("blocklisted tag present at index %d", idx)
	}
	if idx := vocab.GenreIndex("Indie"); idx != -1 {
		t.Errorf("blocklisted genre present at index %d", idx)
	}
	if vocab.TagIndex("RPG") == -1 || vocab.GenreIndex("Sports") == -1 {
		t.Error("expected tags/genres missing from vocabulary")
	}
	if got, want := vocab.TagCount(), 3; got != want {
		t.Errorf("tag count %d, want %d", got, want)
	}
}

func TestBuildVocabularyDeterministic(t *testing.T) {
	a := BuildVocabulary(testCatalog(), nil, nil)
	b := BuildVocabulary(testCatalog(), nil, nil)

	if !reflect.DeepEqual(a.FeatureNames(), b.FeatureNames()) {
		t.Error("vocabulary layout differs between identical builds")
	}
	if a.VectorSize() != 2*a.TagCount()+a.GenreCount()+trailingFeatures {
		t.Errorf("vector size %d inconsistent with layout", a.VectorSize())
	}
}

func TestBuilderTagInteraction(t *testing.T) {
	catalog := testCatalog()
	vocab := BuildVocabulary(catalog, nil, nil)

	meta := map[int64]*models.CatalogItem{10: &catalog[0]}
	owned := []models.OwnedItem{{ItemID: 10, PlayDurationMinutes: 18000}}
	user := BuildUserContext(owned, meta)

	builder := NewBuilder(vocab, user, 0)
	fv := builder.Build(&catalog[0])

	rpgIdx := vocab.TagIndex("RPG")
	votes := vocab.TagVotes(fv.Values)
	interactions := vocab.TagInteractions(fv.Values)

	if votes[rpgIdx] != 100 {
		t.Errorf("RPG votes feature %.1f, want 100", votes[rpgIdx])
	}
	wantInteraction := 100 * math.Log1p(18000)
	if math.Abs(interactions[rpgIdx]-wantInteraction) > 1e-9 {
		t.Errorf("RPG interaction %.2f, want %.2f", interactions[rpgIdx], wantInteraction)
	}

	// A tag the user never played carries zero interaction weight.
	sportsItem := catalog[1]
	fvSports := builder.Build(&sportsItem)
	sportsIdx := vocab.TagIndex("Sports")
	if got := vocab.TagInteractions(fvSports.Values)[sportsIdx]; got != 0 {
		t.Errorf("unplayed tag interaction %.2f, want 0", got)
	}
}

func TestBuilderEmptyItemYieldsZeroVector(t *testing.T) {
	vocab := BuildVocabulary(testCatalog(), nil, nil)
	builder := NewBuilder(vocab, nil, 0)

	fv := builder.Build(&models.CatalogItem{ItemID: 99})
	for i, v := range fv.Values {
		if v != 0 {
			t.Fatalf("value %d is %.2f, want all-zero vector", i, v)
		}
	}
}

func TestBuilderIgnoresUnknownTags(t *testing.T) {
	vocab := BuildVocabulary(testCatalog(), nil, nil)
	builder := NewBuilder(vocab, nil, 0)

	// Tags outside the session vocabulary contribute nothing, not an error.
	fv := builder.Build(&models.CatalogItem{
		ItemID: 42,
		Tags:   map[string]int{"Roguelike": 500},
		Genres: []string{"Strategy"},
	})

	for _, v := range vocab.TagVotes(fv.Values) {
		if v != 0 {
			t.Fatal("unknown tag leaked into tag section")
		}
	}
}

func TestBuildProfileEngagementWeighting(t *testing.T) {
	// ItemA (RPG, engagement ~95) must dominate the
	// profile over ItemB (Sports, engagement ~5).
	catalog := testCatalog()
	vocab := BuildVocabulary(catalog, nil, nil)
	builder := NewBuilder(vocab, nil, 0)

	vecs := []FeatureVector{
		builder.Build(&catalog[0]),
		builder.Build(&catalog[1]),
	}
	profile := BuildProfile(vocab, vecs, map[int64]float64{10: 95, 11: 5})

	rpgIdx := vocab.TagIndex("RPG")
	sportsIdx := vocab.TagIndex("Sports")
	if profile.TagVector[rpgIdx] <= profile.TagVector[sportsIdx] {
		t.Errorf("RPG weight %.1f should dominate Sports %.1f",
			profile.TagVector[rpgIdx], profile.TagVector[sportsIdx])
	}

	// 95 * 100 votes vs 5 * 50 votes: a 38x ratio.
	ratio := profile.TagVector[rpgIdx] / profile.TagVector[sportsIdx]
	if ratio < 30 {
		t.Errorf("dominance ratio %.1f, want >= 30", ratio)
	}
	if profile.Empty() {
		t.Error("profile with engaged items reported empty")
	}
}

func TestBuildProfileNoEngagement(t *testing.T) {
	vocab := BuildVocabulary(testCatalog(), nil, nil)
	profile := BuildProfile(vocab, nil, nil)
	if !profile.Empty() {
		t.Error("profile without items should be empty")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0},
		{"scale invariant", []float64{2, 4}, []float64{1, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatal("similarity is NaN")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("similarity %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

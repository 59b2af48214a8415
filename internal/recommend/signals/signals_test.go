// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package signals

import (
	"context"
	"testing"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/features"
	"github.com/tomtom215/gamescout/internal/recommend/predictor"
)

func TestReviewScoreScenario(t *testing.T) {
	// Same 95% ratio at three volumes must order by volume; all must stay
	// below the ratio ceiling.
	review := NewReview(0)
	ctx := context.Background()

	score := func(pos, neg int) float64 {
		s, err := review.Score(ctx, &models.CatalogItem{PositiveReviews: pos, NegativeReviews: neg}, nil)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		return s
	}

	tiny := score(48, 2)        // 50 total
	mid := score(950, 50)       // 1,000 total
	huge := score(95_000, 5000) // 100,000 total

	if !(tiny < mid && mid < huge) {
		t.Errorf("volume ordering violated: %.2f, %.2f, %.2f", tiny, mid, huge)
	}
	if huge > 95 {
		t.Errorf("full-volume 95%%-positive score %.2f, want <= 95", huge)
	}

	// Ratio dominates: 95% positive at 200 reviews beats 60% positive at
	// a million reviews.
	niche := score(190, 10)
	massed := score(600_000, 400_000)
	if niche <= massed {
		t.Errorf("niche quality %.2f should beat massed mediocrity %.2f", niche, massed)
	}
}

func TestReviewScoreEdgeCases(t *testing.T) {
	review := NewReview(0)
	ctx := context.Background()

	tests := []struct {
		name     string
		item     models.CatalogItem
		wantZero bool
	}{
		{"no reviews", models.CatalogItem{}, true},
		{"all negative", models.CatalogItem{NegativeReviews: 500}, true},
		{"all positive", models.CatalogItem{PositiveReviews: 500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := review.Score(ctx, &tt.item, nil)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if got < 0 || got > 100 {
				t.Errorf("score %.2f out of [0, 100]", got)
			}
			if tt.wantZero && got != 0 {
				t.Errorf("score %.2f, want 0", got)
			}
			if !tt.wantZero && got == 0 {
				t.Error("score 0, want positive")
			}
		})
	}
}

func TestPreferenceScore(t *testing.T) {
	ctx := context.Background()
	item := &models.CatalogItem{
		Tags:   map[string]int{"RPG": 100, "Horror": 20},
		Genres: []string{"Adventure"},
	}

	tests := []struct {
		name string
		cfg  models.UserConfiguration
		want float64
	}{
		{"no adjustments stays neutral", models.UserConfiguration{}, 50},
		{
			"boost applies",
			models.UserConfiguration{BoostTags: map[string]float64{"RPG": 15}},
			65,
		},
		{
			"penalty applies",
			models.UserConfiguration{PenaltyTags: map[string]float64{"Horror": -10}},
			40,
		},
		{
			"boost clamped high",
			models.UserConfiguration{BoostTags: map[string]float64{"RPG": 500}},
			70,
		},
		{
			"boost clamped low",
			models.UserConfiguration{BoostTags: map[string]float64{"RPG": 1}},
			55,
		},
		{
			"penalty clamped",
			models.UserConfiguration{PenaltyTags: map[string]float64{"RPG": -500}},
			30,
		},
		{
			"genre and tag combine",
			models.UserConfiguration{
				BoostTags:   map[string]float64{"RPG": 20},
				BoostGenres: map[string]float64{"Adventure": 10},
			},
			80,
		},
		{
			"non-matching names ignored",
			models.UserConfiguration{BoostTags: map[string]float64{"Roguelike": 20}},
			50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref := NewPreference(&tt.cfg)
			got, err := pref.Score(ctx, item, nil)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if got != tt.want {
				t.Errorf("score %.1f, want %.1f", got, tt.want)
			}
		})
	}
}

func TestPreferenceScoreFinalClamp(t *testing.T) {
	ctx := context.Background()
	item := &models.CatalogItem{
		Tags: map[string]int{"A": 1, "B": 1, "C": 1, "D": 1},
	}

	pref := NewPreference(&models.UserConfiguration{
		BoostTags: map[string]float64{"A": 20, "B": 20, "C": 20, "D": 20},
	})
	got, err := pref.Score(ctx, item, nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != 100 {
		t.Errorf("stacked boosts scored %.1f, want clamp at 100", got)
	}
}

func contentFixture(t *testing.T) (*features.Vocabulary, *features.Builder, *features.Profile, []models.CatalogItem) {
	t.Helper()

	catalog := []models.CatalogItem{
		{
			ItemID: 1, Name: "Dragonfall",
			Tags: map[string]int{"RPG": 100}, Genres: []string{"RPG"},
			PositiveReviews: 90, NegativeReviews: 10, MedianPlaytimeMinutes: 3000,
		},
		{
			ItemID: 2, Name: "Goal Rush",
			Tags: map[string]int{"Sports": 50}, Genres: []string{"Sports"},
			PositiveReviews: 50, NegativeReviews: 50,
		},
		{
			ItemID: 3, Name: "Dragonfall II",
			Tags: map[string]int{"RPG": 80}, Genres: []string{"RPG"},
			PositiveReviews: 80, NegativeReviews: 20, MedianPlaytimeMinutes: 2400,
		},
	}

	vocab := features.BuildVocabulary(catalog, nil, nil)
	builder := features.NewBuilder(vocab, nil, 0)

	owned := []features.FeatureVector{
		builder.Build(&catalog[0]),
		builder.Build(&catalog[1]),
	}
	// ItemA at engagement 95 dominates ItemB at 5.
	profile := features.BuildProfile(vocab, owned, map[int64]float64{1: 95, 2: 5})

	return vocab, builder, profile, catalog
}

func TestContentScoreScenario(t *testing.T) {
	vocab, builder, profile, catalog := contentFixture(t)
	content := NewContent(vocab, profile, ContentWeights{})
	ctx := context.Background()

	fvRPG := builder.Build(&catalog[2])
	rpgScore, err := content.Score(ctx, &catalog[2], &fvRPG)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	sportsItem := models.CatalogItem{
		ItemID: 4, Tags: map[string]int{"Sports": 60}, Genres: []string{"Sports"},
	}
	fvSports := builder.Build(&sportsItem)
	sportsScore, err := content.Score(ctx, &sportsItem, &fvSports)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	if rpgScore <= sportsScore {
		t.Errorf("RPG candidate %.2f should outscore Sports candidate %.2f", rpgScore, sportsScore)
	}
	if rpgScore < 50 {
		t.Errorf("RPG candidate scored %.2f, want >= 50 (profile is RPG-dominated)", rpgScore)
	}
}

func TestContentScoreZeroVector(t *testing.T) {
	vocab, builder, profile, _ := contentFixture(t)
	content := NewContent(vocab, profile, ContentWeights{})

	bare := models.CatalogItem{ItemID: 99}
	fv := builder.Build(&bare)
	got, err := content.Score(context.Background(), &bare, &fv)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != 0 {
		t.Errorf("tagless, reviewless item scored %.2f, want 0", got)
	}
}

func TestContentScoreEmptyProfile(t *testing.T) {
	vocab, builder, _, catalog := contentFixture(t)
	empty := features.BuildProfile(vocab, nil, nil)
	content := NewContent(vocab, empty, ContentWeights{})

	fv := builder.Build(&catalog[0])
	got, err := content.Score(context.Background(), &catalog[0], &fv)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	// No similarity components, but quality components still contribute.
	if got <= 0 || got > 35 {
		t.Errorf("empty-profile score %.2f, want quality-only contribution in (0, 35]", got)
	}
}

func TestMLSignal(t *testing.T) {
	vectors := make([]features.FeatureVector, 0, 30)
	targets := make([]models.EngagementRecord, 0, 30)
	for i := 0; i < 30; i++ {
		id := int64(i + 1)
		v := float64(i % 10)
		vectors = append(vectors, features.FeatureVector{ItemID: id, Values: []float64{v, 0}})
		targets = append(targets, models.EngagementRecord{ItemID: id, Score: v * 10})
	}

	model, err := predictor.Train(predictor.DefaultConfig(), vectors, targets)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	ml := NewML(model)
	fv := features.FeatureVector{Values: []float64{9, 0}}
	got, err := ml.Score(context.Background(), nil, &fv)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got < 0 || got > 100 {
		t.Errorf("score %.2f out of [0, 100]", got)
	}

	var empty ML
	if _, err := empty.Score(context.Background(), nil, &fv); err == nil {
		t.Error("expected error from unwired ml signal")
	}
}

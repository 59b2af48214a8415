// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package predictor

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/features"
)

// ErrInsufficientData is returned when too few owned items exist to train.
// The pipeline recovers by forcing the ml weight to zero for the request;
// this error is never surfaced to the end caller as a hard failure.
var ErrInsufficientData = errors.New("insufficient training data")

// Config contains training parameters for the engagement forest.
type Config struct {
	// NumTrees is the forest size. Default: 60.
	NumTrees int `json:"num_trees" koanf:"num_trees" validate:"min=0"`

	// MaxDepth limits tree depth. Default: 8.
	MaxDepth int `json:"max_depth" koanf:"max_depth" validate:"min=0"`

	// MinLeafSize is the minimum samples per leaf. Default: 2.
	MinLeafSize int `json:"min_leaf_size" koanf:"min_leaf_size" validate:"min=0"`

	// FeatureFraction is the share of features considered per split.
	// Default: 1/3.
	FeatureFraction float64 `json:"feature_fraction" koanf:"feature_fraction" validate:"min=0,max=1"`

	// HoldoutFraction is withheld from training to report validation MAE.
	// Default: 0.2.
	HoldoutFraction float64 `json:"holdout_fraction" koanf:"holdout_fraction" validate:"min=0,max=0.5"`

	// MinTrainItems is the minimum viable library size. Default: 10.
	MinTrainItems int `json:"min_train_items" koanf:"min_train_items" validate:"min=0"`

	// Seed makes training reproducible. Default: 42.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns the reference training parameters.
func DefaultConfig() Config {
	return Config{
		NumTrees:        60,
		MaxDepth:        8,
		MinLeafSize:     2,
		FeatureFraction: 1.0 / 3.0,
		HoldoutFraction: 0.2,
		MinTrainItems:   10,
		Seed:            42,
	}
}

// withDefaults fills zero values with defaults.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.NumTrees <= 0 {
		c.NumTrees = def.NumTrees
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = def.MaxDepth
	}
	if c.MinLeafSize <= 0 {
		c.MinLeafSize = def.MinLeafSize
	}
	if c.FeatureFraction <= 0 || c.FeatureFraction > 1 {
		c.FeatureFraction = def.FeatureFraction
	}
	if c.HoldoutFraction < 0 || c.HoldoutFraction >= 1 {
		c.HoldoutFraction = def.HoldoutFraction
	}
	if c.MinTrainItems <= 0 {
		c.MinTrainItems = def.MinTrainItems
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	return c
}

// Model is a trained engagement forest. All fields are exported so the
// artifact store can gob-encode the model directly.
type Model struct {
	Trees        []RegressionTree
	FeatureNames []string
	Importances  []float64

	ValidationMAE float64
	TrainedAt     time.Time
	SampleCount   int
	HoldoutCount  int
	Seed          int64
}

// Importance pairs a feature name with its normalized importance weight.
type Importance struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Train fits a forest on owned-item feature vectors against engagement
// targets. Vectors without a matching engagement record are skipped.
// Returns ErrInsufficientData when fewer than MinTrainItems samples remain.
//
//nolint:gocritic // hugeParam: cfg passed by value for immutability
func Train(cfg Config, vectors []features.FeatureVector, targets []models.EngagementRecord) (*Model, error) {
	cfg = cfg.withDefaults()

	targetByID := make(map[int64]float64, len(targets))
	for _, rec := range targets {
		targetByID[rec.ItemID] = rec.Score
	}

	featureRows := make([][]float64, 0, len(vectors))
	targetRows := make([]float64, 0, len(vectors))
	for i := range vectors {
		score, ok := targetByID[vectors[i].ItemID]
		if !ok {
			continue
		}
		featureRows = append(featureRows, vectors[i].Values)
		targetRows = append(targetRows, score)
	}

	if len(featureRows) < cfg.MinTrainItems {
		return nil, fmt.Errorf("%w: %d owned items, need %d",
			ErrInsufficientData, len(featureRows), cfg.MinTrainItems)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic training, not crypto

	// Shuffled holdout split; the shuffle is the only randomness that
	// touches sample ordering, so a fixed seed pins the split.
	order := rng.Perm(len(featureRows))
	holdoutCount := int(float64(len(order)) * cfg.HoldoutFraction)
	if len(order)-holdoutCount < cfg.MinLeafSize*2 {
		holdoutCount = 0
	}
	holdout := order[:holdoutCount]
	train := order[holdoutCount:]

	featureTotal := len(featureRows[0])
	subsetSize := int(cfg.FeatureFraction * float64(featureTotal))
	if subsetSize < 1 {
		subsetSize = 1
	}

	builder := &treeBuilder{
		features:   featureRows,
		targets:    targetRows,
		maxDepth:   cfg.MaxDepth,
		minLeaf:    cfg.MinLeafSize,
		subsetSize: subsetSize,
		rng:        rng,
		importance: make([]float64, featureTotal),
	}

	model := &Model{
		Trees:       make([]RegressionTree, 0, cfg.NumTrees),
		TrainedAt:   time.Now(),
		SampleCount: len(train),
		Seed:        cfg.Seed,
	}

	for t := 0; t < cfg.NumTrees; t++ {
		bootstrap := make([]int, len(train))
		for i := range bootstrap {
			bootstrap[i] = train[rng.Intn(len(train))]
		}
		model.Trees = append(model.Trees, builder.grow(bootstrap))
	}

	model.Importances = normalizeImportance(builder.importance)
	model.HoldoutCount = len(holdout)
	model.ValidationMAE = meanAbsoluteError(model, featureRows, targetRows, holdout)

	return model, nil
}

// SetFeatureNames attaches the vocabulary's feature names for explanations.
func (m *Model) SetFeatureNames(names []string) {
	m.FeatureNames = names
}

// Predict returns the engagement prediction for one feature vector,
// clamped to [0, 100]. Trees may extrapolate slightly outside the target
// range on bootstrap averages.
func (m *Model) Predict(v features.FeatureVector) float64 {
	return m.predictValues(v.Values)
}

// PredictBatch scores multiple vectors, preserving input order.
func (m *Model) PredictBatch(vs []features.FeatureVector) []float64 {
	out := make([]float64, len(vs))
	for i := range vs {
		out[i] = m.predictValues(vs[i].Values)
	}
	return out
}

func (m *Model) predictValues(values []float64) float64 {
	if len(m.Trees) == 0 {
		return 0
	}

	var sum float64
	for i := range m.Trees {
		sum += m.Trees[i].Predict(values)
	}
	pred := sum / float64(len(m.Trees))

	if pred < 0 {
		return 0
	}
	if pred > 100 {
		return 100
	}
	return pred
}

// TopFeatures returns the n most important features, sorted by weight
// descending, name ascending on ties for determinism.
func (m *Model) TopFeatures(n int) []Importance {
	pairs := make([]Importance, 0, len(m.Importances))
	for i, w := range m.Importances {
		if w == 0 {
			continue
		}
		name := fmt.Sprintf("feature_%d", i)
		if i < len(m.FeatureNames) {
			name = m.FeatureNames[i]
		}
		pairs = append(pairs, Importance{Name: name, Weight: w})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Weight != pairs[j].Weight {
			return pairs[i].Weight > pairs[j].Weight
		}
		return pairs[i].Name < pairs[j].Name
	})

	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// normalizeImportance scales importance weights to sum to 1.
func normalizeImportance(raw []float64) []float64 {
	var sum float64
	for _, v := range raw {
		sum += v
	}

	out := make([]float64, len(raw))
	if sum == 0 {
		return out
	}
	for i, v := range raw {
		out[i] = v / sum
	}
	return out
}

// meanAbsoluteError computes MAE over the holdout indices, or over the
// whole sample when no holdout was withheld.
func meanAbsoluteError(m *Model, rows [][]float64, targets []float64, holdout []int) float64 {
	indices := holdout
	if len(indices) == 0 {
		indices = make([]int, len(rows))
		for i := range indices {
			indices[i] = i
		}
	}

	var total float64
	for _, i := range indices {
		total += math.Abs(m.predictValues(rows[i]) - targets[i])
	}
	return total / float64(len(indices))
}

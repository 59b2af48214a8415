// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package signals

import (
	"context"
	"errors"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/features"
	"github.com/tomtom215/gamescout/internal/recommend/predictor"
)

// ErrNoModel is returned when the ml signal is evaluated without a trained
// model. The pipeline never constructs the signal in that state; the error
// exists to fail loudly if wiring regresses.
var ErrNoModel = errors.New("ml signal has no trained model")

// ML scores candidates with the trained engagement forest. The model is
// read-only after construction.
type ML struct {
	model *predictor.Model
}

// NewML wraps a trained model as a scoring signal.
func NewML(model *predictor.Model) *ML {
	return &ML{model: model}
}

// Name returns the signal identifier.
func (m *ML) Name() string { return NameML }

// Score predicts engagement for the candidate, clamped to [0, 100].
func (m *ML) Score(_ context.Context, _ *models.CatalogItem, fv *features.FeatureVector) (float64, error) {
	if m.model == nil {
		return 0, ErrNoModel
	}
	return m.model.Predict(*fv), nil
}

// Model exposes the underlying model for explanation payloads.
func (m *ML) Model() *predictor.Model { return m.model }

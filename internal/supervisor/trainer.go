// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend"
	"github.com/tomtom215/gamescout/internal/recommend/predictor"
)

// TrainerConfig tunes the background training service.
type TrainerConfig struct {
	// Enabled turns the service on. Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// Interval is the sweep period. Default: 24h. A sweep retrains only
	// users whose library snapshot moved since the last successful train.
	Interval time.Duration `json:"interval" koanf:"interval"`

	// TrainOnStartup runs one sweep immediately instead of waiting a full
	// interval. Default: false.
	TrainOnStartup bool `json:"train_on_startup" koanf:"train_on_startup"`

	// PruneArtifacts removes superseded model artifacts after a
	// successful train. Default: true.
	PruneArtifacts bool `json:"prune_artifacts" koanf:"prune_artifacts"`
}

// DefaultTrainerConfig returns the reference trainer settings.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Enabled:        true,
		Interval:       24 * time.Hour,
		PruneArtifacts: true,
	}
}

// LibrarySource supplies user libraries for background training. The
// library sync collaborator implements this.
type LibrarySource interface {
	Users(ctx context.Context) ([]int64, error)
	Library(ctx context.Context, userID int64) (owned []models.OwnedItem, catalog []models.CatalogItem, err error)
}

// Trainer fits an engagement model outside the request path.
// *recommend.Engine satisfies this.
type Trainer interface {
	Train(ctx context.Context, userID int64, owned []models.OwnedItem, catalog []models.CatalogItem) (*recommend.TrainingReport, error)
}

// ArtifactPruner removes superseded model artifacts for a user.
// *storage.Store satisfies this.
type ArtifactPruner interface {
	Prune(ctx context.Context, userID int64, keepSnapshot string) (int, error)
}

// TrainerService periodically retrains engagement models for users whose
// library snapshot changed. It implements suture.Service.
type TrainerService struct {
	cfg     TrainerConfig
	source  LibrarySource
	trainer Trainer
	pruner  ArtifactPruner
	logger  zerolog.Logger

	// lastSnapshot tracks the snapshot each user was last trained on.
	// Serve owns it; no locking needed.
	lastSnapshot map[int64]string
}

// NewTrainerService creates the background trainer. pruner may be nil.
//
//nolint:gocritic // hugeParam: config and logger passed by value for immutability
func NewTrainerService(cfg TrainerConfig, source LibrarySource, trainer Trainer, pruner ArtifactPruner, logger zerolog.Logger) *TrainerService {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTrainerConfig().Interval
	}
	return &TrainerService{
		cfg:          cfg,
		source:       source,
		trainer:      trainer,
		pruner:       pruner,
		logger:       logger.With().Str("component", "trainer").Logger(),
		lastSnapshot: make(map[int64]string),
	}
}

// String names the service in supervisor logs.
func (s *TrainerService) String() string { return "trainer" }

// Serve runs training sweeps until the context is canceled.
func (s *TrainerService) Serve(ctx context.Context) error {
	if s.cfg.TrainOnStartup {
		s.sweep(ctx)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep retrains every user with a changed snapshot. Per-user failures
// are logged and skipped; a sweep never aborts the service.
func (s *TrainerService) sweep(ctx context.Context) {
	users, err := s.source.Users(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing users failed, skipping sweep")
		return
	}

	for _, userID := range users {
		if ctx.Err() != nil {
			return
		}
		s.trainUser(ctx, userID)
	}
}

func (s *TrainerService) trainUser(ctx context.Context, userID int64) {
	logger := s.logger.With().Int64("user_id", userID).Logger()

	owned, catalog, err := s.source.Library(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msg("library fetch failed")
		return
	}
	if len(owned) == 0 || len(catalog) == 0 {
		logger.Debug().Msg("empty library or catalog, skipping")
		return
	}

	snapshot := recommend.SnapshotHash(owned)
	if snapshot == s.lastSnapshot[userID] {
		logger.Debug().Str("snapshot", snapshot).Msg("snapshot unchanged, skipping retrain")
		return
	}

	report, err := s.trainer.Train(ctx, userID, owned, catalog)
	if err != nil {
		if errors.Is(err, predictor.ErrInsufficientData) {
			logger.Debug().Err(err).Msg("library too small to train")
			return
		}
		logger.Error().Err(err).Msg("training failed")
		return
	}
	s.lastSnapshot[userID] = report.SnapshotHash

	logger.Info().
		Str("snapshot", report.SnapshotHash).
		Float64("validation_mae", report.ValidationMAE).
		Int("samples", report.SampleCount).
		Dur("duration", report.Duration).
		Msg("engagement model retrained")

	if s.cfg.PruneArtifacts && s.pruner != nil {
		if _, err := s.pruner.Prune(ctx, userID, report.SnapshotHash); err != nil {
			logger.Warn().Err(err).Msg("artifact prune failed")
		}
	}
}

// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// defaultGCInterval and defaultGCDiscardRatio follow Badger's own
// recommendations for periodic value-log garbage collection.
const (
	defaultGCInterval     = 10 * time.Minute
	defaultGCDiscardRatio = 0.5
)

// GCTarget is a store that supports value-log garbage collection.
// *storage.Store satisfies this.
type GCTarget interface {
	RunGC(discardRatio float64) error
}

// StoreGCService periodically garbage-collects the artifact store's value
// log. It implements suture.Service.
type StoreGCService struct {
	target       GCTarget
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
}

// NewStoreGCService creates the GC service. Zero interval and ratio
// select the defaults.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStoreGCService(target GCTarget, interval time.Duration, discardRatio float64, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = defaultGCDiscardRatio
	}
	return &StoreGCService{
		target:       target,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("component", "store_gc").Logger(),
	}
}

// String names the service in supervisor logs.
func (s *StoreGCService) String() string { return "store-gc" }

// Serve runs GC rounds until the context is canceled. A failed round is
// logged and retried next tick, never escalated to the supervisor.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.target.RunGC(s.discardRatio); err != nil {
				s.logger.Warn().Err(err).Msg("value log gc round failed")
			}
		}
	}
}

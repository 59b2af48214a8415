// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamescout/internal/metrics"
	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/features"
	"github.com/tomtom215/gamescout/internal/recommend/signals"
)

// scoringDeps bundles the per-request read-only scoring collaborators.
// ml is nil when the engagement predictor is unavailable; the candidate's
// ml sub-score then stays zero and its weight is redistributed upstream.
type scoringDeps struct {
	builder *features.Builder
	ml      *signals.ML
	content *signals.Content
	pref    *signals.Preference
	review  *signals.Review
}

// scoreOne builds the candidate's feature vector and runs every active
// signal over it.
func scoreOne(ctx context.Context, deps *scoringDeps, item *models.CatalogItem) (ScoredCandidate, error) {
	fv := deps.builder.Build(item)
	cand := ScoredCandidate{ItemID: item.ItemID, Name: item.Name}

	var err error
	if deps.ml != nil {
		if cand.MLScore, err = deps.ml.Score(ctx, item, &fv); err != nil {
			return cand, err
		}
	}
	if cand.ContentScore, err = deps.content.Score(ctx, item, &fv); err != nil {
		return cand, err
	}
	if cand.PreferenceScore, err = deps.pref.Score(ctx, item, &fv); err != nil {
		return cand, err
	}
	if cand.ReviewScore, err = deps.review.Score(ctx, item, &fv); err != nil {
		return cand, err
	}
	return cand, nil
}

// scoreCandidates fans candidate scoring out over a bounded worker pool
// and gathers results in input order. A failed candidate is dropped with a
// logged reason, never propagated; cancellation stops the workers and the
// remaining candidates are simply absent from the result.
func (e *Engine) scoreCandidates(ctx context.Context, logger zerolog.Logger, deps *scoringDeps, items []models.CatalogItem) []ScoredCandidate {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	type slot struct {
		cand ScoredCandidate
		ok   bool
	}
	results := make([]slot, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				cand, err := scoreOne(ctx, deps, &items[idx])
				if err != nil {
					metrics.CandidatesDroppedTotal.WithLabelValues(dropScoringError).Inc()
					logger.Warn().
						Err(err).
						Int64("item_id", items[idx].ItemID).
						Str("item_name", items[idx].Name).
						Msg("candidate dropped: scoring failed")
					continue
				}
				results[idx] = slot{cand: cand, ok: true}
			}
		}()
	}

feed:
	for idx := range items {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	out := make([]ScoredCandidate, 0, len(items))
	for i := range results {
		if results[i].ok {
			out = append(out, results[i].cand)
		}
	}
	return out
}

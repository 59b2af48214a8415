// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamescout/internal/metrics"
	"github.com/tomtom215/gamescout/internal/models"
	"github.com/tomtom215/gamescout/internal/recommend/features"
	"github.com/tomtom215/gamescout/internal/recommend/predictor"
	"github.com/tomtom215/gamescout/internal/recommend/signals"
	"github.com/tomtom215/gamescout/internal/validation"
)

// topFeatureCount bounds the per-request feature importance explanation.
const topFeatureCount = 10

// ModelStore persists trained engagement models across restarts. Load
// misses and store failures are soft: the engine retrains instead.
type ModelStore interface {
	SaveModel(ctx context.Context, userID int64, snapshotHash string, model *predictor.Model) error
	LoadModel(ctx context.Context, userID int64, snapshotHash string) (*predictor.Model, error)
}

// Engine runs the recommendation pipeline. Safe for concurrent use.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger
	store  ModelStore

	mu    sync.Mutex
	cache map[int64]*cachedModel
}

type cachedModel struct {
	model    *predictor.Model
	snapshot string
	lastUsed time.Time
}

// New creates an engine. A nil config selects defaults; a nil store
// disables model persistence (models are still cached in memory).
func New(cfg *Config, logger zerolog.Logger, store ModelStore) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	return &Engine{
		cfg:    cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		store:  store,
		cache:  make(map[int64]*cachedModel),
	}, nil
}

// session holds the per-request feature state shared by training and
// scoring: one vocabulary, one builder, the owned-item vectors, and the
// derived engagement targets.
type session struct {
	snapshot     string
	byID         map[int64]*models.CatalogItem
	vocab        *features.Vocabulary
	builder      *features.Builder
	ownedVectors []features.FeatureVector
	records      []models.EngagementRecord
	engagement   map[int64]float64
}

func (e *Engine) newSession(owned []models.OwnedItem, catalog []models.CatalogItem, now time.Time) *session {
	byID := make(map[int64]*models.CatalogItem, len(catalog))
	for i := range catalog {
		byID[catalog[i].ItemID] = &catalog[i]
	}

	vocab := features.BuildVocabulary(catalog, e.cfg.BlockedTags, e.cfg.MetaGenres)
	builder := features.NewBuilder(vocab, features.BuildUserContext(owned, byID), e.cfg.MedianPlaytimeCapMinutes)

	sess := &session{
		snapshot:   SnapshotHash(owned),
		byID:       byID,
		vocab:      vocab,
		builder:    builder,
		records:    make([]models.EngagementRecord, 0, len(owned)),
		engagement: make(map[int64]float64, len(owned)),
	}

	for i := range owned {
		rec := models.ComputeEngagement(owned[i], e.cfg.Engagement, now)
		sess.records = append(sess.records, rec)
		sess.engagement[rec.ItemID] = rec.Score

		// Owned items without catalog metadata have no features; they
		// still contribute their engagement record for diagnostics.
		if meta, ok := byID[owned[i].ItemID]; ok {
			sess.ownedVectors = append(sess.ownedVectors, builder.Build(meta))
		}
	}

	return sess
}

// SnapshotHash fingerprints a library snapshot. Any change to the set
// of owned items, their playtime, recency, or achievement progress yields
// a new hash and therefore a retrain. Exported so the background trainer
// can skip users whose snapshot has not moved.
func SnapshotHash(owned []models.OwnedItem) string {
	sorted := make([]models.OwnedItem, len(owned))
	copy(sorted, owned)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })

	h := sha256.New()
	for i := range sorted {
		var last int64
		if sorted[i].LastPlayed != nil {
			last = sorted[i].LastPlayed.Unix()
		}
		ach := -1.0
		if sorted[i].AchievementRatio != nil {
			ach = *sorted[i].AchievementRatio
		}
		fmt.Fprintf(h, "%d|%d|%d|%.4f;", sorted[i].ItemID, sorted[i].PlayDurationMinutes, last, ach)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// trainModel fits the engagement forest for a session.
func (e *Engine) trainModel(sess *session) (*predictor.Model, error) {
	start := time.Now()
	model, err := predictor.Train(e.cfg.Predictor, sess.ownedVectors, sess.records)
	if err != nil {
		if errors.Is(err, predictor.ErrInsufficientData) {
			metrics.TrainingRunsTotal.WithLabelValues("insufficient_data").Inc()
		} else {
			metrics.TrainingRunsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	model.SetFeatureNames(sess.vocab.FeatureNames())
	metrics.TrainingRunsTotal.WithLabelValues("ok").Inc()
	metrics.TrainingDuration.Observe(time.Since(start).Seconds())
	return model, nil
}

// modelFor resolves the engagement model for a request: in-memory cache,
// then artifact store, then inline training. Returns nil when the library
// is too small to train; the caller redistributes the ml weight.
func (e *Engine) modelFor(ctx context.Context, userID int64, sess *session, logger zerolog.Logger) *predictor.Model {
	e.mu.Lock()
	if c, ok := e.cache[userID]; ok && c.snapshot == sess.snapshot {
		c.lastUsed = time.Now()
		e.mu.Unlock()
		metrics.ModelCacheHits.Inc()
		return c.model
	}
	e.mu.Unlock()
	metrics.ModelCacheMisses.Inc()

	if e.store != nil {
		model, err := e.store.LoadModel(ctx, userID, sess.snapshot)
		if err == nil {
			e.cacheModel(userID, sess.snapshot, model)
			return model
		}
		// A canceled request must not pay for inline training; the
		// caller surfaces ctx.Err() right after this phase.
		if ctx.Err() != nil {
			return nil
		}
	}

	model, err := e.trainModel(sess)
	if err != nil {
		logger.Warn().Err(err).Msg("engagement model unavailable, redistributing ml weight")
		return nil
	}
	logger.Info().
		Float64("validation_mae", model.ValidationMAE).
		Int("samples", model.SampleCount).
		Msg("engagement model trained inline")

	e.cacheModel(userID, sess.snapshot, model)
	if e.store != nil {
		if err := e.store.SaveModel(ctx, userID, sess.snapshot, model); err != nil {
			logger.Warn().Err(err).Msg("model artifact save failed")
		}
	}
	return model
}

// cacheModel stores the model in the per-user cache, evicting the least
// recently used entry when over capacity.
func (e *Engine) cacheModel(userID int64, snapshot string, model *predictor.Model) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache[userID] = &cachedModel{model: model, snapshot: snapshot, lastUsed: time.Now()}

	for len(e.cache) > e.cfg.MaxCachedModels {
		var oldestID int64
		var oldest time.Time
		first := true
		for id, c := range e.cache {
			if first || c.lastUsed.Before(oldest) {
				oldestID, oldest = id, c.lastUsed
				first = false
			}
		}
		delete(e.cache, oldestID)
	}
}

// Train fits and caches the engagement model for a user's library outside
// the request path. Returns a report the caller can surface or log.
func (e *Engine) Train(ctx context.Context, userID int64, owned []models.OwnedItem, catalog []models.CatalogItem) (*TrainingReport, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(owned) == 0 {
		return nil, ErrEmptyLibrary
	}

	start := time.Now()
	sess := e.newSession(owned, catalog, time.Now())

	model, err := e.trainModel(sess)
	if err != nil {
		return nil, fmt.Errorf("train user %d: %w", userID, err)
	}

	e.cacheModel(userID, sess.snapshot, model)
	if e.store != nil {
		if err := e.store.SaveModel(ctx, userID, sess.snapshot, model); err != nil {
			e.logger.Warn().Err(err).Int64("user_id", userID).Msg("model artifact save failed")
		}
	}

	return &TrainingReport{
		UserID:        userID,
		SnapshotHash:  sess.snapshot,
		SampleCount:   model.SampleCount,
		HoldoutCount:  model.HoldoutCount,
		ValidationMAE: model.ValidationMAE,
		TopFeatures:   model.TopFeatures(topFeatureCount),
		Duration:      time.Since(start),
	}, nil
}

// Recommend runs the full pipeline for one request.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	resp, err := e.recommend(ctx, req, start)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		metrics.RecommendRequestsTotal.WithLabelValues("error").Inc()
	case len(resp.Candidates) == 0:
		metrics.RecommendRequestsTotal.WithLabelValues("empty").Inc()
	default:
		metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()
	}
	return resp, err
}

//nolint:gocyclo // the pipeline is one linear phase sequence; splitting it obscures the flow
func (e *Engine) recommend(ctx context.Context, req *Request, start time.Time) (*Response, error) {
	if len(req.Catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(req.OwnedItems) == 0 {
		return nil, ErrEmptyLibrary
	}
	if err := validation.ValidateStruct(&req.Config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := e.logger.With().Str("request_id", requestID).Int64("user_id", req.UserID).Logger()

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = e.cfg.DefaultLimit
	case limit > e.cfg.MaxLimit:
		limit = e.cfg.MaxLimit
	}

	ownedSet := make(map[int64]struct{}, len(req.OwnedItems))
	for i := range req.OwnedItems {
		ownedSet[req.OwnedItems[i].ItemID] = struct{}{}
	}

	counts := make(map[string]int, 8)
	meta := Metadata{
		RequestID:   requestID,
		UserID:      req.UserID,
		GeneratedAt: now,
		PhaseCounts: counts,
	}

	phaseStart := time.Now()
	fr := applyUniversalFilters(req.Catalog, ownedSet, &req.Config.Filters, stringSet(e.cfg.MetaGenres))
	metrics.ObservePhase(phaseUniversalFilter, phaseStart)
	for name, n := range fr.drops {
		metrics.CandidatesFilteredTotal.WithLabelValues(name).Add(float64(n))
	}
	counts[phaseUniversalFilter] = len(fr.kept)
	meta.FilterDrops = fr.drops

	if len(fr.kept) == 0 {
		logger.Info().Interface("drops", fr.drops).Msg("universal filters eliminated every candidate")
		meta.Duration = time.Since(start)
		return &Response{Reason: ReasonFiltersEliminatedAll, Metadata: meta}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	phaseStart = time.Now()
	sess := e.newSession(req.OwnedItems, req.Catalog, now)
	metrics.ObservePhase(phaseFeatures, phaseStart)
	meta.SnapshotHash = sess.snapshot
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	phaseStart = time.Now()
	model := e.modelFor(ctx, req.UserID, sess, logger)
	metrics.ObservePhase(phaseTraining, phaseStart)
	meta.MLFallback = model == nil
	if model != nil {
		meta.ModelTrainedAt = model.TrainedAt
		meta.ValidationMAE = model.ValidationMAE
		meta.TopFeatures = model.TopFeatures(topFeatureCount)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile := features.BuildProfile(sess.vocab, sess.ownedVectors, sess.engagement)
	deps := &scoringDeps{
		builder: sess.builder,
		content: signals.NewContent(sess.vocab, profile, e.cfg.Content),
		pref:    signals.NewPreference(&req.Config),
		review:  signals.NewReview(e.cfg.ReviewVolumeCap),
	}
	if model != nil {
		deps.ml = signals.NewML(model)
	}

	phaseStart = time.Now()
	cands := e.scoreCandidates(ctx, logger, deps, fr.kept)
	metrics.ObservePhase(phaseScoring, phaseStart)
	counts[phaseScoring] = len(cands)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	phaseStart = time.Now()
	weights := effectiveWeights(req.Config.Weights, model != nil, req.Config.HasPreferenceSignal())
	combineScores(cands, weights)
	sortCandidates(cands)
	metrics.ObservePhase(phaseCombine, phaseStart)
	counts[phaseCombine] = len(cands)
	meta.Weights = weights

	phaseStart = time.Now()
	included := cands[:0]
	for i := range cands {
		item, ok := sess.byID[cands[i].ItemID]
		if ok && hardExcluded(item, &req.Config) {
			metrics.CandidatesDroppedTotal.WithLabelValues(dropHardExcluded).Inc()
			logger.Debug().
				Int64("item_id", cands[i].ItemID).
				Float64("final_score", cands[i].FinalScore).
				Msg("candidate hard-excluded after scoring")
			continue
		}
		included = append(included, cands[i])
	}
	cands = included
	metrics.ObservePhase(phaseHardExclude, phaseStart)
	counts[phaseHardExclude] = len(cands)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	phaseStart = time.Now()
	if e.cfg.DedupeEditions && !req.KeepEditions {
		var dupes int
		cands, dupes = dedupeEditions(cands, sess.byID, e.cfg.EditionSuffixes)
		metrics.CandidatesDroppedTotal.WithLabelValues(dropEditionDupe).Add(float64(dupes))
	}
	selected := cands
	if !req.Config.Diversity.Empty() {
		selector := newDiversitySelector(req.Config.Diversity)
		selected = make([]ScoredCandidate, 0, limit)
		for i := range cands {
			if len(selected) == limit {
				break
			}
			item, ok := sess.byID[cands[i].ItemID]
			if ok && !selector.admit(item) {
				metrics.CandidatesDroppedTotal.WithLabelValues(dropDiversityCap).Inc()
				continue
			}
			selected = append(selected, cands[i])
		}
	}
	metrics.ObservePhase(phaseDiversity, phaseStart)
	counts[phaseDiversity] = len(selected)

	if len(selected) > limit {
		selected = selected[:limit]
	}
	for i := range selected {
		selected[i].Rank = i + 1
	}
	counts[phaseRank] = len(selected)

	meta.Duration = time.Since(start)
	resp := &Response{
		Candidates:      selected,
		TotalCandidates: len(fr.kept),
		Metadata:        meta,
	}
	if len(selected) == 0 {
		resp.Reason = ReasonNoCandidates
	}

	logger.Info().
		Int("total_candidates", resp.TotalCandidates).
		Int("returned", len(selected)).
		Bool("ml_fallback", meta.MLFallback).
		Dur("duration", meta.Duration).
		Msg("recommendation request served")
	return resp, nil
}

func stringSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

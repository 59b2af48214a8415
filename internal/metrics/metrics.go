// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation request metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamescout_recommend_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gamescout_recommend_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	PipelinePhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamescout_pipeline_phase_duration_seconds",
			Help:    "Duration of individual pipeline phases in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"phase"},
	)

	// Candidate flow metrics
	CandidatesFilteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamescout_candidates_filtered_total",
			Help: "Candidates dropped by universal filters, by filter name",
		},
		[]string{"filter"},
	)

	CandidatesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamescout_candidates_dropped_total",
			Help: "Candidates dropped mid-pipeline, by reason",
		},
		[]string{"reason"}, // "scoring_error", "hard_excluded", "diversity_cap", "edition_dupe"
	)

	// Training metrics
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamescout_training_runs_total",
			Help: "Engagement model training runs by result",
		},
		[]string{"result"}, // "ok", "insufficient_data", "error"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gamescout_training_duration_seconds",
			Help:    "Engagement model training duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Model cache metrics
	ModelCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamescout_model_cache_hits_total",
			Help: "Trained-model cache hits",
		},
	)

	ModelCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamescout_model_cache_misses_total",
			Help: "Trained-model cache misses",
		},
	)

	// Artifact store metrics
	ArtifactStoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamescout_artifact_store_ops_total",
			Help: "Model artifact store operations by op and result",
		},
		[]string{"op", "result"}, // op: "save", "load", "prune"
	)
)

// ObservePhase records one pipeline phase duration.
func ObservePhase(phase string, start time.Time) {
	PipelinePhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

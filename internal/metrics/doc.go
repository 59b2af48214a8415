// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package metrics exposes Prometheus instrumentation for the
// recommendation pipeline: request throughput, per-phase latency, filter
// drop counts, training runs, and model cache efficiency.
//
// Serving the metrics over HTTP is the embedding service's concern; this
// package only registers collectors on the default registry.
package metrics

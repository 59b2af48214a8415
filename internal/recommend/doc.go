// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package recommend orchestrates the hybrid recommendation pipeline.
//
// A request flows through fixed phases: universal filtering, feature
// construction, four-signal scoring (learned engagement, content
// similarity, explicit preference, review quality), weighted combination,
// hard exclusion, diversity selection, and final ranking. Per-candidate
// problems degrade gracefully (the candidate is dropped and logged);
// only structural problems such as an empty catalog or an empty library
// are returned to the caller as errors.
//
// The Engine is safe for concurrent use. Trained engagement models are
// cached per user and keyed by a hash of the library snapshot, so a
// materially changed library triggers a retrain while repeat requests
// reuse the cached forest.
package recommend

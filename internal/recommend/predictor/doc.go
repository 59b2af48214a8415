// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package predictor implements the learned engagement predictor: a random
// forest of CART regression trees trained on the user's owned-item feature
// vectors against their derived 0-100 engagement scores.
//
// Training uses ALL owned items regardless of quality or content filters.
// This is deliberate: filters express catalog appropriateness, not taste,
// and excluding low-quality-but-played items from training would bias the
// learned model.
//
// Training is seeded and fully deterministic: identical inputs and seed
// produce an identical forest. A holdout fraction is withheld to report
// validation error, and per-feature importance (accumulated variance
// reduction) is retained for explanation payloads.
package predictor

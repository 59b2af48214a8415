// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package signals implements the four per-candidate scorers blended by the
// hybrid combiner: the learned engagement predictor (ml), content
// similarity against the loved profile (content), explicit user boosts and
// penalties (preference), and community review quality (review).
//
// Every signal returns a score in [0, 100]. Signals are pure functions of
// their inputs once constructed and are safe to evaluate concurrently
// across candidates.
package signals

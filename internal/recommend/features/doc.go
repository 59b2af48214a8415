// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package features turns catalog items into numeric feature vectors for the
// engagement predictor and the content similarity scorer.
//
// A Vocabulary is built once per scoring session from the union of tags and
// genres seen across the library and the candidate catalog, minus the
// configured meta/NSFW blocklists. The vocabulary is fixed for the session:
// tags or genres that appear later are silently ignored (zero contribution),
// never an error. This keeps feature vector layouts stable between training
// and inference.
//
// Feature vectors are ephemeral; they exist only for the duration of one
// scoring pass and are never persisted.
package features

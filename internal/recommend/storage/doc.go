// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package storage persists trained engagement models in BadgerDB so a
// restart does not force every user through a cold retrain.
//
// Each artifact is stored under model:<user>:<snapshot> as a gzipped gob
// blob, with a JSON metadata record alongside it carrying a SHA-256
// checksum of the compressed payload. The checksum is verified on load; a
// corrupt artifact reads as a miss, never as a silently wrong model.
package storage

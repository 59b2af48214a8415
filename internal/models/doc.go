// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package models defines the shared domain types for the recommendation
// pipeline: owned library items, catalog items, derived engagement records,
// and the per-request user configuration.
//
// These types are plain data carriers shared across the recommend packages.
// The core never owns persistent state; callers supply fresh snapshots of
// the library and catalog on every request, and the collaborator boundary
// is responsible for normalizing tag and genre names (case, trimming)
// before they reach this package.
package models

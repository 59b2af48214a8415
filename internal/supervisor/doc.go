// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

// Package supervisor builds the suture supervision tree for GameScout's
// background services: the periodic model trainer and artifact store
// maintenance. Failures restart only the crashed service; a trainer panic
// never takes store maintenance down with it.
//
// Supervisor events are logged through sutureslog, bridged onto the
// application's zerolog stream via logging.NewSlogLogger.
package supervisor

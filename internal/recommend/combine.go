// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"sort"

	"github.com/tomtom215/gamescout/internal/models"
)

// effectiveWeights derives the weights actually used for a request.
//
// The user's weights are normalized first (all-zero falls back to equal
// quarters). Then signals that carry no information are zeroed and the
// remainder renormalized: the ml weight when no model is available, and
// the preference weight when the user configured no boosts or penalties
// (a flat baseline score for every candidate would only dilute ranking).
// If every weighted signal was disabled, the weight spreads equally over
// the signals still in play; content and review always are.
func effectiveWeights(w models.SignalWeights, mlAvailable, prefConfigured bool) models.SignalWeights {
	w = w.Normalize()
	if !mlAvailable {
		w.ML = 0
	}
	if !prefConfigured {
		w.Preference = 0
	}

	sum := w.ML + w.Content + w.Preference + w.Review
	if sum > 0 {
		return models.SignalWeights{
			ML:         w.ML / sum,
			Content:    w.Content / sum,
			Preference: w.Preference / sum,
			Review:     w.Review / sum,
		}
	}

	active := 2
	if mlAvailable {
		active++
	}
	if prefConfigured {
		active++
	}
	share := 1.0 / float64(active)

	out := models.SignalWeights{Content: share, Review: share}
	if mlAvailable {
		out.ML = share
	}
	if prefConfigured {
		out.Preference = share
	}
	return out
}

// combineScores fills FinalScore as the weighted blend of the sub-scores.
//
//nolint:gocritic // hugeParam: weights passed by value for immutability
func combineScores(cands []ScoredCandidate, w models.SignalWeights) {
	for i := range cands {
		cands[i].FinalScore = w.ML*cands[i].MLScore +
			w.Content*cands[i].ContentScore +
			w.Preference*cands[i].PreferenceScore +
			w.Review*cands[i].ReviewScore
	}
}

// sortCandidates orders by final score descending. Ties break on review
// score descending, then item ID ascending, so identical inputs always
// produce identical rankings.
func sortCandidates(cands []ScoredCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].FinalScore != cands[j].FinalScore {
			return cands[i].FinalScore > cands[j].FinalScore
		}
		if cands[i].ReviewScore != cands[j].ReviewScore {
			return cands[i].ReviewScore > cands[j].ReviewScore
		}
		return cands[i].ItemID < cands[j].ItemID
	})
}

// hardExcluded reports whether the item intersects the user's hard
// exclusion lists. Applied after scoring so the score an excluded item
// would have received stays inspectable in diagnostics.
func hardExcluded(item *models.CatalogItem, cfg *models.UserConfiguration) bool {
	for _, tag := range cfg.HardExcludeTags {
		if item.HasTag(tag) {
			return true
		}
	}
	for _, genre := range cfg.HardExcludeGenres {
		if item.HasGenre(genre) {
			return true
		}
	}
	return false
}

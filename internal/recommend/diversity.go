// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import (
	"strings"

	"github.com/tomtom215/gamescout/internal/models"
)

// diversitySelector implements the greedy selection walk: candidates are
// visited in score order and admitted unless admission would push any
// configured genre, tag, or series count past its cap. Rejected candidates
// do not consume quota.
type diversitySelector struct {
	limits models.DiversityLimits

	genreSeen  map[string]int
	tagSeen    map[string]int
	seriesSeen map[string]int

	// series holds the lowercase names once, so the substring matching in
	// the hot walk does not re-lowercase per candidate.
	series []seriesRule
}

type seriesRule struct {
	name      string // Original key into limits.PerSeries and seriesSeen
	nameLower string
	limit     int
}

func newDiversitySelector(limits models.DiversityLimits) *diversitySelector {
	s := &diversitySelector{
		limits:     limits,
		genreSeen:  make(map[string]int),
		tagSeen:    make(map[string]int),
		seriesSeen: make(map[string]int),
	}
	for name, limit := range limits.PerSeries {
		s.series = append(s.series, seriesRule{
			name:      name,
			nameLower: strings.ToLower(name),
			limit:     limit,
		})
	}
	return s
}

// admit checks every configured cap before consuming any quota, so a
// candidate rejected on its second genre does not half-count its first.
func (s *diversitySelector) admit(item *models.CatalogItem) bool {
	for _, genre := range item.Genres {
		if limit, capped := s.limits.PerGenre[genre]; capped && s.genreSeen[genre] >= limit {
			return false
		}
	}
	for tag := range item.Tags {
		if limit, capped := s.limits.PerTag[tag]; capped && s.tagSeen[tag] >= limit {
			return false
		}
	}

	nameLower := ""
	if len(s.series) > 0 {
		nameLower = strings.ToLower(item.Name)
	}
	for i := range s.series {
		if strings.Contains(nameLower, s.series[i].nameLower) && s.seriesSeen[s.series[i].name] >= s.series[i].limit {
			return false
		}
	}

	for _, genre := range item.Genres {
		if _, capped := s.limits.PerGenre[genre]; capped {
			s.genreSeen[genre]++
		}
	}
	for tag := range item.Tags {
		if _, capped := s.limits.PerTag[tag]; capped {
			s.tagSeen[tag]++
		}
	}
	for i := range s.series {
		if strings.Contains(nameLower, s.series[i].nameLower) {
			s.seriesSeen[s.series[i].name]++
		}
	}
	return true
}

// baseEditionName normalizes a title for edition grouping: lowercase,
// trademark glyphs removed, then known edition suffixes stripped
// repeatedly along with trailing separators. "Dragonfall™: Definitive
// Edition" and "Dragonfall" collapse to the same key.
func baseEditionName(name string, suffixes []string) string {
	n := strings.ToLower(name)
	n = strings.NewReplacer("™", "", "®", "").Replace(n)
	n = strings.TrimSpace(n)

	for {
		trimmed := false
		for _, suffix := range suffixes {
			if strings.HasSuffix(n, suffix) {
				n = strings.TrimSuffix(n, suffix)
				n = strings.TrimRight(n, " :-–—")
				trimmed = true
			}
		}
		if !trimmed {
			break
		}
	}
	return n
}

// dedupeEditions keeps the first (highest-scored, since candidates arrive
// sorted) entry per normalized base name. Items whose catalog entry is
// missing are kept as-is.
func dedupeEditions(cands []ScoredCandidate, byID map[int64]*models.CatalogItem, suffixes []string) (kept []ScoredCandidate, dropped int) {
	kept = make([]ScoredCandidate, 0, len(cands))
	seen := make(map[string]struct{}, len(cands))

	for i := range cands {
		item, ok := byID[cands[i].ItemID]
		if !ok {
			kept = append(kept, cands[i])
			continue
		}
		base := baseEditionName(item.Name, suffixes)
		if _, dup := seen[base]; dup {
			dropped++
			continue
		}
		seen[base] = struct{}{}
		kept = append(kept, cands[i])
	}
	return kept, dropped
}

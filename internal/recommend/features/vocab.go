// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package features

import (
	"fmt"
	"sort"

	"github.com/tomtom215/gamescout/internal/models"
)

// Vocabulary is the fixed tag and genre universe for one scoring session.
// Tag and genre order is sorted lexicographically so that identical inputs
// always produce identical vector layouts.
type Vocabulary struct {
	tags       []string
	genres     []string
	tagIndex   map[string]int
	genreIndex map[string]int
}

// trailingFeatures is the number of scalar features appended after the tag
// and genre sections: review volume, review ratio, median playtime
// (normalized), median playtime (log-scaled).
const trailingFeatures = 4

// BuildVocabulary collects the tag and genre universe from the given items,
// excluding blocklisted names. The same item list should cover both the
// user's library metadata and the candidate catalog so that training and
// inference share one layout.
func BuildVocabulary(items []models.CatalogItem, blockedTags, blockedGenres []string) *Vocabulary {
	blockTag := toSet(blockedTags)
	blockGenre := toSet(blockedGenres)

	tagSet := make(map[string]struct{})
	genreSet := make(map[string]struct{})

	for i := range items {
		for tag := range items[i].Tags {
			if _, blocked := blockTag[tag]; !blocked {
				tagSet[tag] = struct{}{}
			}
		}
		for _, genre := range items[i].Genres {
			if _, blocked := blockGenre[genre]; !blocked {
				genreSet[genre] = struct{}{}
			}
		}
	}

	v := &Vocabulary{
		tags:       sortedKeys(tagSet),
		genres:     sortedKeys(genreSet),
		tagIndex:   make(map[string]int, len(tagSet)),
		genreIndex: make(map[string]int, len(genreSet)),
	}
	for i, tag := range v.tags {
		v.tagIndex[tag] = i
	}
	for i, genre := range v.genres {
		v.genreIndex[genre] = i
	}

	return v
}

// TagCount returns the number of tags in the vocabulary.
func (v *Vocabulary) TagCount() int { return len(v.tags) }

// GenreCount returns the number of genres in the vocabulary.
func (v *Vocabulary) GenreCount() int { return len(v.genres) }

// VectorSize returns the total feature vector length for this vocabulary.
// Layout: [tag votes][tag x playtime interaction][genre one-hot][trailing].
func (v *Vocabulary) VectorSize() int {
	return 2*len(v.tags) + len(v.genres) + trailingFeatures
}

// TagIndex returns the index of a tag within the tag section, or -1 when
// the tag is outside the vocabulary.
func (v *Vocabulary) TagIndex(tag string) int {
	if i, ok := v.tagIndex[tag]; ok {
		return i
	}
	return -1
}

// GenreIndex returns the index of a genre within the genre section, or -1
// when the genre is outside the vocabulary.
func (v *Vocabulary) GenreIndex(genre string) int {
	if i, ok := v.genreIndex[genre]; ok {
		return i
	}
	return -1
}

// TagVotes returns the tag-votes section of a feature value slice.
func (v *Vocabulary) TagVotes(values []float64) []float64 {
	return values[:len(v.tags)]
}

// TagInteractions returns the tag-playtime-interaction section.
func (v *Vocabulary) TagInteractions(values []float64) []float64 {
	return values[len(v.tags) : 2*len(v.tags)]
}

// GenreOneHot returns the genre membership section.
func (v *Vocabulary) GenreOneHot(values []float64) []float64 {
	start := 2 * len(v.tags)
	return values[start : start+len(v.genres)]
}

// trailingOffset is the index of the first trailing scalar feature.
func (v *Vocabulary) trailingOffset() int {
	return 2*len(v.tags) + len(v.genres)
}

// ReviewVolume returns the log-scaled review volume feature.
func (v *Vocabulary) ReviewVolume(values []float64) float64 {
	return values[v.trailingOffset()]
}

// ReviewRatio returns the positive review ratio feature (0-1).
func (v *Vocabulary) ReviewRatio(values []float64) float64 {
	return values[v.trailingOffset()+1]
}

// MedianPlaytimeNorm returns the linearly normalized community playtime.
func (v *Vocabulary) MedianPlaytimeNorm(values []float64) float64 {
	return values[v.trailingOffset()+2]
}

// MedianPlaytimeLog returns the log-scaled community playtime (0-1).
func (v *Vocabulary) MedianPlaytimeLog(values []float64) float64 {
	return values[v.trailingOffset()+3]
}

// FeatureNames returns human-readable names for every vector position,
// used for feature-importance explanations.
func (v *Vocabulary) FeatureNames() []string {
	names := make([]string, 0, v.VectorSize())
	for _, tag := range v.tags {
		names = append(names, fmt.Sprintf("tag:%s", tag))
	}
	for _, tag := range v.tags {
		names = append(names, fmt.Sprintf("tag_playtime:%s", tag))
	}
	for _, genre := range v.genres {
		names = append(names, fmt.Sprintf("genre:%s", genre))
	}
	names = append(names,
		"review_volume",
		"review_ratio",
		"median_playtime_norm",
		"median_playtime_log",
	)
	return names
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

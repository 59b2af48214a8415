// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package recommend

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults are valid", func(*Config) {}, true},
		{"zero default limit", func(c *Config) { c.DefaultLimit = 0 }, false},
		{"max limit below default", func(c *Config) { c.MaxLimit = c.DefaultLimit - 1 }, false},
		{"zero review volume cap", func(c *Config) { c.ReviewVolumeCap = 0 }, false},
		{"negative playtime cap", func(c *Config) { c.MedianPlaytimeCapMinutes = -1 }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, false},
		{"zero model cache", func(c *Config) { c.MaxCachedModels = 0 }, false},
		{"equal limits", func(c *Config) { c.MaxLimit = c.DefaultLimit }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfigCloneIsIndependent(t *testing.T) {
	orig := DefaultConfig()
	clone := orig.Clone()

	clone.MetaGenres[0] = "changed"
	clone.BlockedTags[0] = "changed"
	clone.EditionSuffixes[0] = "changed"
	clone.DefaultLimit = 99

	if orig.MetaGenres[0] == "changed" || orig.BlockedTags[0] == "changed" || orig.EditionSuffixes[0] == "changed" {
		t.Error("clone shares slice backing arrays with the original")
	}
	if orig.DefaultLimit == 99 {
		t.Error("clone shares scalar state with the original")
	}
}

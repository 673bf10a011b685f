// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the texeldash configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("animations", Section{
		"enabled":  true,
		"theme":    "",
		"journal":  "",
		"verbose":  false,
		"frame_ms": 16,
	})
	cfg.RegisterDefaults("demo", Section{
		"tiles":      4,
		"tile_width": 18,
	})
}

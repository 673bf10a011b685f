// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/animations.go
// Summary: Typed view of the "animations" section.

package config

import "time"

// AnimationSettings is the decoded "animations" section.
type AnimationSettings struct {
	Enabled bool
	// Theme is the definitions file; empty selects the embedded default.
	Theme   string
	Journal string
	Verbose bool
	Frame   time.Duration
}

// Animations decodes the "animations" section of cfg. Relative paths are
// resolved against the config directory.
func (c Config) Animations() AnimationSettings {
	return AnimationSettings{
		Enabled: c.GetBool("animations", "enabled", true),
		Theme:   ResolvePath(c.GetString("animations", "theme", "")),
		Journal: ResolvePath(c.GetString("animations", "journal", "")),
		Verbose: c.GetBool("animations", "verbose", false),
		Frame:   c.GetMillis("animations", "frame_ms", 16*time.Millisecond),
	}
}

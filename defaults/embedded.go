// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration and animation definitions.

package defaults

import (
	"embed"
)

//go:embed texeldash.json animations.yaml
var fs embed.FS

// SystemConfig returns the embedded texeldash.json.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("texeldash.json")
}

// Animations returns the embedded default animation definitions (YAML).
func Animations() ([]byte, error) {
	return fs.ReadFile("animations.yaml")
}

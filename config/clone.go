// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Clone helpers for config maps.

package config

// Clone returns a copy of the config. Sections are copied one level deep so
// callers can edit keys without touching the store.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for name, value := range cfg {
		if section, ok := asSection(value); ok {
			clone[name] = cloneSection(section)
			continue
		}
		clone[name] = value
	}
	return clone
}

func asSection(value interface{}) (Section, bool) {
	switch v := value.(type) {
	case Section:
		return v, true
	case map[string]interface{}:
		return Section(v), true
	}
	return nil, false
}

func cloneSection(section Section) Section {
	out := make(Section, len(section))
	for key, value := range section {
		out[key] = value
	}
	return out
}

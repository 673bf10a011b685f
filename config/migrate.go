// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Legacy config migration helpers.
// Notes: Early builds wrote a flat config.json; its keys move into "animations".

package config

var legacyAnimationKeys = map[string]string{
	"animations_enabled": "enabled",
	"animation_theme":    "theme",
	"journal_path":       "journal",
}

func migrateSystemFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	legacyPath, err := legacyConfigPath()
	if err != nil {
		return false, err
	}
	legacyCfg, exists, err := readConfig(legacyPath)
	if err != nil {
		return false, err
	}
	if !exists || legacyCfg == nil {
		return false, nil
	}

	migrated := false
	if copySection(cfg, legacyCfg, "animations") {
		migrated = true
	}
	section := cfg.Section("animations")
	for oldKey, newKey := range legacyAnimationKeys {
		val, ok := legacyCfg[oldKey]
		if !ok {
			continue
		}
		if section == nil {
			section = make(Section)
			cfg["animations"] = section
		}
		if _, ok := section[newKey]; !ok {
			section[newKey] = val
			migrated = true
		}
	}
	return migrated, nil
}

func copySection(dst Config, src Config, name string) bool {
	if dst == nil || src == nil || name == "" {
		return false
	}
	if _, ok := dst[name]; ok {
		return false
	}
	if section, ok := src[name]; ok {
		dst[name] = section
		return true
	}
	return false
}

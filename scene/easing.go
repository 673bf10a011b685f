// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/easing.go
// Summary: Named easing modes for transition timelines.
// Usage: Theme definitions pick a mode by name; timelines apply it to progress.
// Notes: Penner curves come from gween/ease, smoothsteps are local.

package scene

import (
	"sort"
	"strings"
	"sync"

	"github.com/tanema/gween/ease"
)

// Easing maps linear progress [0,1] to eased progress.
type Easing func(progress float64) float64

var (
	// EaseLinear - constant speed
	EaseLinear Easing = func(t float64) float64 { return t }

	// EaseSmoothstep - smooth S-curve, the default mode
	EaseSmoothstep Easing = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - S-curve with zero first and second derivatives at both ends
	EaseSmootherstep Easing = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}
)

// FromTween adapts a gween easing function to progress space.
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var (
	easingsMu sync.RWMutex
	easings   = map[string]Easing{
		"linear":              EaseLinear,
		"smoothstep":          EaseSmoothstep,
		"smootherstep":        EaseSmootherstep,
		"ease-in-quad":        FromTween(ease.InQuad),
		"ease-out-quad":       FromTween(ease.OutQuad),
		"ease-in-out-quad":    FromTween(ease.InOutQuad),
		"ease-in-cubic":       FromTween(ease.InCubic),
		"ease-out-cubic":      FromTween(ease.OutCubic),
		"ease-in-out-cubic":   FromTween(ease.InOutCubic),
		"ease-in-sine":        FromTween(ease.InSine),
		"ease-out-sine":       FromTween(ease.OutSine),
		"ease-in-out-sine":    FromTween(ease.InOutSine),
		"ease-in-expo":        FromTween(ease.InExpo),
		"ease-out-expo":       FromTween(ease.OutExpo),
		"ease-in-out-expo":    FromTween(ease.InOutExpo),
		"ease-in-back":        FromTween(ease.InBack),
		"ease-out-back":       FromTween(ease.OutBack),
		"ease-in-out-back":    FromTween(ease.InOutBack),
		"ease-in-bounce":      FromTween(ease.InBounce),
		"ease-out-bounce":     FromTween(ease.OutBounce),
		"ease-in-out-bounce":  FromTween(ease.InOutBounce),
		"ease-in-elastic":     FromTween(ease.InElastic),
		"ease-out-elastic":    FromTween(ease.OutElastic),
		"ease-in-out-elastic": FromTween(ease.InOutElastic),
	}
)

// RegisterEasing makes an easing available to definitions under name. It
// panics on duplicate names.
func RegisterEasing(name string, e Easing) {
	name = strings.ToLower(strings.TrimSpace(name))
	easingsMu.Lock()
	defer easingsMu.Unlock()
	if _, exists := easings[name]; exists {
		panic("scene: duplicate easing registration for " + name)
	}
	easings[name] = e
}

// EasingByName resolves a mode name. Empty selects smoothstep.
func EasingByName(name string) (Easing, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return EaseSmoothstep, true
	}
	easingsMu.RLock()
	defer easingsMu.RUnlock()
	e, ok := easings[name]
	return e, ok
}

// EasingNames lists the known mode names in sorted order.
func EasingNames() []string {
	easingsMu.RLock()
	defer easingsMu.RUnlock()
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

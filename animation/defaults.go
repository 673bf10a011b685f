// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: animation/defaults.go
// Summary: Caller-supplied default initial/final values for theme animations.
// Usage: Passed to the theme factory; definition values always take precedence.

package animation

import "log"

// DefaultValue is a fallback value for a property. An empty Selector applies
// to every target; otherwise it is matched against the target by the factory.
type DefaultValue struct {
	Selector string
	Property string
	Value    Value
}

// Defaults is an ordered list of default values. Earlier entries win.
type Defaults []DefaultValue

// NewDefaults builds a defaults list, dropping entries without a property
// name or value.
func NewDefaults(values ...DefaultValue) Defaults {
	out := make(Defaults, 0, len(values))
	for _, v := range values {
		if v.Property == "" || !v.Value.IsValid() {
			log.Printf("Animation: ignoring default without property or value: %+v", v)
			continue
		}
		out = append(out, v)
	}
	return out
}

// With appends a default for property on every target.
func (d Defaults) With(property string, v Value) Defaults {
	return d.WithSelector("", property, v)
}

// WithSelector appends a default for property on targets matching selector.
func (d Defaults) WithSelector(selector, property string, v Value) Defaults {
	return append(d, NewDefaults(DefaultValue{Selector: selector, Property: property, Value: v})...)
}

// Lookup returns the first default for property whose selector is empty or
// accepted by match.
func (d Defaults) Lookup(property string, match func(selector string) bool) (Value, bool) {
	for _, v := range d {
		if v.Property != property {
			continue
		}
		if v.Selector == "" || (match != nil && match(v.Selector)) {
			return v.Value, true
		}
	}
	return Value{}, false
}

// Clear drops every entry.
func (d *Defaults) Clear() {
	*d = nil
}

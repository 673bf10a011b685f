// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/selector.go
// Summary: Minimal actor selectors: type, #id, .class, compounds and descendants.
// Usage: Theme triggers and targets address actors with selectors.
// Notes: No attribute or pseudo-class support; specificity is id*100+class*10+type.

package scene

import (
	"fmt"
	"strings"
)

type compound struct {
	typeName string
	id       string
	classes  []string
}

func (c compound) matches(a *Actor) bool {
	if c.typeName != "" && c.typeName != a.typeName {
		return false
	}
	if c.id != "" && c.id != a.name {
		return false
	}
	for _, class := range c.classes {
		if !a.HasClass(class) {
			return false
		}
	}
	return true
}

func (c compound) String() string {
	var b strings.Builder
	if c.typeName == "" && c.id == "" && len(c.classes) == 0 {
		return "*"
	}
	b.WriteString(c.typeName)
	if c.id != "" {
		b.WriteString("#" + c.id)
	}
	for _, class := range c.classes {
		b.WriteString("." + class)
	}
	return b.String()
}

// Selector matches actors by type, id and class, optionally through
// descendant chains ("box .thumb").
type Selector struct {
	parts []compound
}

// ParseSelector parses a selector string.
func ParseSelector(s string) (*Selector, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("scene: empty selector")
	}
	sel := &Selector{parts: make([]compound, 0, len(fields))}
	for _, field := range fields {
		c, err := parseCompound(field)
		if err != nil {
			return nil, fmt.Errorf("scene: selector %q: %w", s, err)
		}
		sel.parts = append(sel.parts, c)
	}
	return sel, nil
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(s string) *Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func parseCompound(field string) (compound, error) {
	var c compound
	rest := field
	if strings.HasPrefix(rest, "*") {
		rest = rest[1:]
	} else {
		n := identLen(rest)
		c.typeName = rest[:n]
		rest = rest[n:]
	}
	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		n := identLen(rest)
		if n == 0 {
			return compound{}, fmt.Errorf("missing name after %q", string(marker))
		}
		name := rest[:n]
		rest = rest[n:]
		switch marker {
		case '#':
			if c.id != "" {
				return compound{}, fmt.Errorf("multiple ids in %q", field)
			}
			c.id = name
		case '.':
			c.classes = append(c.classes, name)
		default:
			return compound{}, fmt.Errorf("unexpected %q", string(marker))
		}
	}
	return c, nil
}

func identLen(s string) int {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return i
		}
	}
	return len(s)
}

// Match reports whether a matches the selector. The last compound must match
// a itself; earlier compounds must match ancestors in order.
func (s *Selector) Match(a *Actor) bool {
	if s == nil || a == nil || len(s.parts) == 0 {
		return false
	}
	last := len(s.parts) - 1
	if !s.parts[last].matches(a) {
		return false
	}
	i := last - 1
	for anc := a.parent; anc != nil && i >= 0; anc = anc.parent {
		if s.parts[i].matches(anc) {
			i--
		}
	}
	return i < 0
}

// Specificity scores the selector; higher is more specific.
func (s *Selector) Specificity() int {
	score := 0
	for _, c := range s.parts {
		if c.id != "" {
			score += 100
		}
		score += 10 * len(c.classes)
		if c.typeName != "" {
			score++
		}
	}
	return score
}

func (s *Selector) String() string {
	parts := make([]string, len(s.parts))
	for i, c := range s.parts {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

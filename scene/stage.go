// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/stage.go
// Summary: Root of the actor tree and frame clock for attached transitions.
// Usage: The dashboard main loop calls Tick once per frame.

package scene

import (
	"time"
)

// Stage owns the root actor and drives transitions.
type Stage struct {
	root *Actor
	last time.Time
}

// NewStage creates a stage with an empty root actor.
func NewStage() *Stage {
	return &Stage{root: NewActor("stage", "stage")}
}

// Root returns the root actor.
func (s *Stage) Root() *Actor { return s.root }

// Add attaches actor to the root.
func (s *Stage) Add(actor *Actor) { s.root.AddChild(actor) }

// Find returns every actor matching selector in depth-first order.
func (s *Stage) Find(selector *Selector) []*Actor {
	return FindIn(s.root, selector)
}

// FindIn returns every actor in the subtree rooted at root (inclusive)
// matching selector.
func FindIn(root *Actor, selector *Selector) []*Actor {
	var out []*Actor
	if root == nil || selector == nil {
		return nil
	}
	root.Walk(func(a *Actor) bool {
		if selector.Match(a) {
			out = append(out, a)
		}
		return true
	})
	return out
}

// Lookup returns the actor named name.
func (s *Stage) Lookup(name string) (*Actor, bool) {
	var found *Actor
	s.root.Walk(func(a *Actor) bool {
		if a.name == name {
			found = a
			return false
		}
		return true
	})
	return found, found != nil
}

// Tick advances every attached transition by delta.
func (s *Stage) Tick(delta time.Duration) {
	s.root.Walk(func(a *Actor) bool {
		a.tick(delta)
		return true
	})
}

// TickAt advances transitions by the time passed since the previous TickAt.
// The first call only records now.
func (s *Stage) TickAt(now time.Time) {
	if s.last.IsZero() {
		s.last = now
		return
	}
	delta := now.Sub(s.last)
	s.last = now
	if delta > 0 {
		s.Tick(delta)
	}
}

// HasActiveTransitions reports whether any actor still has a playing transition.
func (s *Stage) HasActiveTransitions() bool {
	active := false
	s.root.Walk(func(a *Actor) bool {
		if len(a.transitions) > 0 {
			active = true
			return false
		}
		return true
	})
	return active
}

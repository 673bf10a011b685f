// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/transition.go
// Summary: Property transitions, their intervals and transition groups.
// Usage: Built by the theme factory and attached to actors by animations.
// Notes: An interval without a final value leaves its property untouched.

package scene

import (
	"log"

	"github.com/framegrace/texeldash/animation"
)

// Interval holds the endpoints of a property transition. Either endpoint
// may be unset.
type Interval struct {
	initial animation.Value
	final   animation.Value
}

// NewInterval creates an interval; pass a zero Value to leave an endpoint unset.
func NewInterval(initial, final animation.Value) *Interval {
	return &Interval{initial: initial, final: final}
}

// Initial returns the start value and whether it is set.
func (i *Interval) Initial() (animation.Value, bool) {
	return i.initial, i.initial.IsValid()
}

// Final returns the end value and whether it is set.
func (i *Interval) Final() (animation.Value, bool) {
	return i.final, i.final.IsValid()
}

// SetInitial replaces the start value.
func (i *Interval) SetInitial(v animation.Value) { i.initial = v }

// SetFinal replaces the end value.
func (i *Interval) SetFinal(v animation.Value) { i.final = v }

// IsValid reports whether both endpoints are set and can be interpolated.
func (i *Interval) IsValid() bool {
	return i.initial.Compatible(i.final)
}

// Compute returns the interpolated value at progress.
func (i *Interval) Compute(progress float64) (animation.Value, bool) {
	if !i.IsValid() {
		return animation.Value{}, false
	}
	return i.initial.Lerp(i.final, progress), true
}

// PropertyTransition animates one named property of its animatable.
type PropertyTransition struct {
	*Timeline
	property string
	interval *Interval
	target   animation.Animatable
}

// NewPropertyTransition creates a transition for property. interval may be
// nil and set later.
func NewPropertyTransition(property string, interval *Interval, opts TimelineOptions) *PropertyTransition {
	p := &PropertyTransition{
		Timeline: newTimeline(property, opts),
		property: property,
		interval: interval,
	}
	p.apply = p.applyProgress
	return p
}

// PropertyName returns the animated property.
func (p *PropertyTransition) PropertyName() string { return p.property }

// Interval returns the interval or nil.
func (p *PropertyTransition) Interval() animation.Interval {
	if p.interval == nil {
		return nil
	}
	return p.interval
}

// SetInterval replaces the interval.
func (p *PropertyTransition) SetInterval(i *Interval) { p.interval = i }

// Animatable returns the attached target or nil.
func (p *PropertyTransition) Animatable() animation.Animatable { return p.target }

// SetAnimatable binds the transition to target. An unset initial value is
// captured from the target's live value.
func (p *PropertyTransition) SetAnimatable(target animation.Animatable) {
	p.target = target
	if target == nil || p.interval == nil {
		return
	}
	if _, ok := p.interval.Initial(); ok {
		return
	}
	if v, ok := target.Property(p.property); ok {
		p.interval.SetInitial(v)
	}
}

func (p *PropertyTransition) applyProgress(progress float64) {
	if p.target == nil || p.interval == nil {
		return
	}
	v, ok := p.interval.Compute(progress)
	if !ok {
		return
	}
	if err := p.target.SetProperty(p.property, v); err != nil {
		debugLog.Printf("Scene: transition %q cannot set %q: %v", p.name, p.property, err)
	}
}

// Group is a transition whose member property transitions share its timeline.
type Group struct {
	*Timeline
	members []*PropertyTransition
	target  animation.Animatable
}

// NewGroup creates a group named name playing members on one timeline.
func NewGroup(name string, opts TimelineOptions, members ...*PropertyTransition) *Group {
	g := &Group{
		Timeline: newTimeline(name, opts),
	}
	for _, m := range members {
		g.Add(m)
	}
	g.apply = g.applyProgress
	return g
}

// Add appends a member. Members added to a running group are applied from
// the next frame.
func (g *Group) Add(m *PropertyTransition) {
	if m == nil {
		log.Printf("Scene: nil member added to group %q", g.name)
		return
	}
	g.members = append(g.members, m)
	if g.target != nil {
		m.SetAnimatable(g.target)
	}
}

// Transitions returns the members.
func (g *Group) Transitions() []animation.Transition {
	out := make([]animation.Transition, len(g.members))
	for i, m := range g.members {
		out[i] = m
	}
	return out
}

// Animatable returns the attached target or nil.
func (g *Group) Animatable() animation.Animatable { return g.target }

// SetAnimatable binds the group and all members to target.
func (g *Group) SetAnimatable(target animation.Animatable) {
	g.target = target
	for _, m := range g.members {
		m.SetAnimatable(target)
	}
}

func (g *Group) applyProgress(progress float64) {
	for _, m := range g.members {
		m.applyProgress(progress)
	}
}

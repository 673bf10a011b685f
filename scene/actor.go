// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/actor.go
// Summary: Scene graph node carrying animatable properties and named transitions.
// Usage: Dashboard views build actor trees on a Stage; animations target actors.
// Notes: Destroy notifies subscribers before any transition is torn down.

package scene

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/framegrace/texeldash/animation"
)

// ErrDestroyed is returned when mutating a destroyed actor.
var ErrDestroyed = errors.New("scene: actor destroyed")

type attachable interface {
	SetAnimatable(animation.Animatable)
	Start()
	setDetached(func())
}

type ticker interface {
	Tick(delta time.Duration)
}

type namedTransition struct {
	name       string
	transition animation.Transition
}

// Actor is a node of the scene graph.
type Actor struct {
	typeName string
	name     string
	classes  []string

	parent   *Actor
	children []*Actor

	props       map[string]animation.Value
	transitions []namedTransition

	onDestroy handlers[func()]
	retains   int
	destroyed bool
}

// NewActor creates an actor of typeName. name is its unique id within the
// stage and may be empty.
func NewActor(typeName, name string, classes ...string) *Actor {
	return &Actor{
		typeName: typeName,
		name:     name,
		classes:  slices.Clone(classes),
		props:    make(map[string]animation.Value),
	}
}

// Name returns the actor id.
func (a *Actor) Name() string { return a.name }

// TypeName returns the actor type used by type selectors.
func (a *Actor) TypeName() string { return a.typeName }

// Classes returns a copy of the style classes.
func (a *Actor) Classes() []string { return slices.Clone(a.classes) }

// HasClass reports whether the actor carries class.
func (a *Actor) HasClass(class string) bool { return slices.Contains(a.classes, class) }

// AddClass adds a style class.
func (a *Actor) AddClass(class string) {
	if !a.HasClass(class) {
		a.classes = append(a.classes, class)
	}
}

// RemoveClass removes a style class.
func (a *Actor) RemoveClass(class string) {
	a.classes = slices.DeleteFunc(a.classes, func(c string) bool { return c == class })
}

// Parent returns the parent actor or nil.
func (a *Actor) Parent() *Actor { return a.parent }

// Children returns a copy of the child list.
func (a *Actor) Children() []*Actor { return slices.Clone(a.children) }

// AddChild appends child, detaching it from any previous parent.
func (a *Actor) AddChild(child *Actor) {
	if child == nil || child == a {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = a
	a.children = append(a.children, child)
}

func (a *Actor) removeChild(child *Actor) {
	a.children = slices.DeleteFunc(a.children, func(c *Actor) bool { return c == child })
	child.parent = nil
}

// String returns a selector-like description of the actor.
func (a *Actor) String() string {
	s := a.typeName
	if a.name != "" {
		s += "#" + a.name
	}
	for _, c := range a.classes {
		s += "." + c
	}
	return s
}

// Property returns the live value of a property.
func (a *Actor) Property(name string) (animation.Value, bool) {
	v, ok := a.props[name]
	return v, ok
}

// SetProperty writes a property value.
func (a *Actor) SetProperty(name string, v animation.Value) error {
	if a.destroyed {
		return ErrDestroyed
	}
	if !v.IsValid() {
		return fmt.Errorf("scene: invalid value for %q", name)
	}
	a.props[name] = v
	return nil
}

// OnDestroy subscribes to the actor's destruction. Destroyed actors refuse
// new subscriptions.
func (a *Actor) OnDestroy(fn func()) animation.SubscriptionID {
	if a.destroyed || fn == nil {
		return 0
	}
	return a.onDestroy.add(fn)
}

// Unsubscribe removes a destroy subscription.
func (a *Actor) Unsubscribe(id animation.SubscriptionID) {
	a.onDestroy.remove(id)
}

// AddTransition attaches t under name and starts it. An existing transition
// with the same name is stopped and replaced.
func (a *Actor) AddTransition(name string, t animation.Transition) {
	if t == nil {
		return
	}
	if a.destroyed {
		debugLog.Printf("Scene: ignoring transition %q on destroyed actor %s", name, a)
		return
	}
	a.RemoveTransition(name)

	a.transitions = append(a.transitions, namedTransition{name: name, transition: t})
	if at, ok := t.(attachable); ok {
		at.setDetached(func() { a.detach(name, t) })
		at.SetAnimatable(a)
		at.Start()
	}
}

// RemoveTransition stops and detaches the transition named name.
func (a *Actor) RemoveTransition(name string) {
	idx := slices.IndexFunc(a.transitions, func(n namedTransition) bool { return n.name == name })
	if idx < 0 {
		return
	}
	t := a.transitions[idx].transition
	a.transitions = slices.Delete(slices.Clone(a.transitions), idx, idx+1)
	t.Stop()
}

// Transition returns the transition attached under name.
func (a *Actor) Transition(name string) (animation.Transition, bool) {
	for _, n := range a.transitions {
		if n.name == name {
			return n.transition, true
		}
	}
	return nil, false
}

// TransitionNames lists attached transition names in attach order.
func (a *Actor) TransitionNames() []string {
	names := make([]string, len(a.transitions))
	for i, n := range a.transitions {
		names[i] = n.name
	}
	return names
}

func (a *Actor) detach(name string, t animation.Transition) {
	a.transitions = slices.DeleteFunc(slices.Clone(a.transitions), func(n namedTransition) bool {
		return n.name == name && n.transition == t
	})
}

// tick advances every attached transition.
func (a *Actor) tick(delta time.Duration) {
	for _, n := range slices.Clone(a.transitions) {
		if tk, ok := n.transition.(ticker); ok {
			tk.Tick(delta)
		}
	}
}

// Retain records a shared ownership claim.
func (a *Actor) Retain() { a.retains++ }

// Release drops a shared ownership claim.
func (a *Actor) Release() {
	if a.retains > 0 {
		a.retains--
	}
}

// Retained returns the number of outstanding ownership claims.
func (a *Actor) Retained() int { return a.retains }

// IsDestroyed reports whether Destroy ran.
func (a *Actor) IsDestroyed() bool { return a.destroyed }

// Destroy tears the actor down: destroy subscribers run first, then attached
// transitions are stopped, then children are destroyed and the actor leaves
// its parent.
func (a *Actor) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.onDestroy.each(func(fn func()) { fn() })
	a.onDestroy.clear()

	for _, n := range slices.Clone(a.transitions) {
		n.transition.Stop()
	}
	a.transitions = nil

	for _, child := range slices.Clone(a.children) {
		child.Destroy()
	}
	if a.parent != nil {
		a.parent.removeChild(a)
	}
}

// Walk visits a and its descendants depth-first until visit returns false.
func (a *Actor) Walk(visit func(*Actor) bool) bool {
	if !visit(a) {
		return false
	}
	for _, child := range slices.Clone(a.children) {
		if !child.Walk(visit) {
			return false
		}
	}
	return true
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: animation/capabilities.go
// Summary: Contracts the animation runtime expects from actors and transitions.
// Usage: Implemented by the scene toolkit; the runtime only talks to these interfaces.
// Notes: Subscriptions are explicit handles so entries can disconnect before teardown.
// Actors and transitions are identified by interface equality, so they must be
// implemented on comparable types, normally pointers.

package animation

import "time"

// SubscriptionID identifies an event subscription. The zero ID means
// "no subscription"; unsubscribing it, or an ID already removed, is a no-op.
type SubscriptionID uint64

// Animatable exposes named properties whose live value can be read and written.
type Animatable interface {
	Property(name string) (Value, bool)
	SetProperty(name string, v Value) error
}

// Actor is a scene node that can be the target of an animation. Implementations
// must be comparable; AddAnimation rejects others with ErrNotComparable.
type Actor interface {
	Animatable
	Name() string
	// OnDestroy subscribes to the actor being destroyed. A zero ID means the
	// subscription was refused (for example the actor is already gone).
	OnDestroy(fn func()) SubscriptionID
	Unsubscribe(id SubscriptionID)
	// AddTransition attaches and starts a transition under name.
	AddTransition(name string, t Transition)
	RemoveTransition(name string)
}

// Retainer is implemented by actors and transitions that track shared
// ownership claims. Entries retain on creation and release on destruction.
type Retainer interface {
	Retain()
	Release()
}

// Timeline is the playback control surface of a transition.
type Timeline interface {
	Duration() time.Duration
	Elapsed() time.Duration
	RepeatCount() int
	Progress() float64
	// Advance moves the playhead without emitting a frame.
	Advance(elapsed time.Duration)
	// Stop halts playback. Stopping a playing timeline emits stopped with
	// finished=false.
	Stop()
}

// Transition drives one or more property values over a timeline. Like Actor,
// implementations must be comparable.
type Transition interface {
	Timeline
	Name() string
	// OnStopped fires when playback stops; finished is true only when the
	// timeline reached its natural end after all repeats.
	OnStopped(fn func(finished bool)) SubscriptionID
	// OnNewFrame fires for every produced frame with the elapsed time.
	OnNewFrame(fn func(elapsed time.Duration)) SubscriptionID
	Unsubscribe(id SubscriptionID)
	// EmitNewFrame synchronously produces a frame for elapsed.
	EmitNewFrame(elapsed time.Duration)
}

// Interval holds the endpoints a property transition interpolates between.
type Interval interface {
	Initial() (Value, bool)
	Final() (Value, bool)
	SetFinal(v Value)
	// IsValid reports whether both endpoints are set and compatible.
	IsValid() bool
}

// PropertyTransition interpolates a single named property.
type PropertyTransition interface {
	Transition
	PropertyName() string
	// Interval returns nil when no interval has been configured yet.
	Interval() Interval
	// Animatable returns the object the transition writes to, or nil when
	// the transition is not attached.
	Animatable() Animatable
}

// TransitionGroup is a composite transition whose members share one timeline.
type TransitionGroup interface {
	Transition
	Transitions() []Transition
}

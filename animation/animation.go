// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: animation/animation.go
// Summary: Animation owns a set of actor/transition entries and tears itself down when they finish.
// Usage: Built by the theme factory, started with Run, observed through OnDone.
// Notes: Single-threaded; every call and callback runs on the frame loop goroutine.

// Package animation implements the runtime that plays theme-defined
// animations against scene actors.
//
// An [Animation] is created by a factory, populated with [AddAnimation]
// calls and started with [Animation.Run]. Run takes over the caller's
// reference: from then on the animation keeps itself alive until every entry
// has finished or every target actor has been destroyed, at which point it
// emits its done notification exactly once and releases its resources.
//
// State machine:
//
//	Empty ──AddAnimation──► Active ──Run──► Running
//	  │                                       │ last entry removed
//	  └──────────────Run──────────► Destroying ◄┘
//	                                    │
//	                                    ▼
//	                                Destroyed
package animation

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrNilActor is returned when AddAnimation receives no actor.
	ErrNilActor = errors.New("animation: nil actor")
	// ErrNilTransition is returned when AddAnimation receives no transition.
	ErrNilTransition = errors.New("animation: nil transition")
	// ErrAlreadyRunning is returned when entries are added after Run.
	ErrAlreadyRunning = errors.New("animation: already running")
	// ErrDisposed is returned for operations on a destroyed animation.
	ErrDisposed = errors.New("animation: disposed")
	// ErrDuplicateTransition is returned when a transition is added twice.
	ErrDuplicateTransition = errors.New("animation: transition already owned by an entry")
	// ErrNotComparable is returned for actors or transitions whose dynamic
	// type cannot be used as an identity. Implement them on pointer types.
	ErrNotComparable = errors.New("animation: actor and transition must be comparable (use pointer types)")
	// ErrEntryCreate is returned when an entry cannot bind to its collaborators.
	ErrEntryCreate = errors.New("animation: cannot create entry")
)

// State describes where an Animation is in its lifecycle.
type State int

const (
	// StateEmpty means no entries and not running.
	StateEmpty State = iota
	// StateActive means at least one entry, not yet running.
	StateActive
	// StateRunning means transitions are attached and progressing.
	StateRunning
	// StateDestroying means the done notification is being delivered.
	StateDestroying
	// StateDestroyed means all resources were released.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateRunning:
		return "running"
	case StateDestroying:
		return "destroying"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type doneHandler struct {
	id SubscriptionID
	fn func(*Animation)
}

// Animation is a set of transitions started and finished together under a
// single identity.
type Animation struct {
	id     string
	handle uuid.UUID

	entries []*entry
	refs    int

	running       bool
	inDestruction bool
	destroyed     bool

	doneHandlers []doneHandler
	nextDoneID   SubscriptionID
}

// New creates an empty animation holding one reference for the caller.
func New(id string) *Animation {
	return &Animation{
		id:     id,
		handle: uuid.New(),
		refs:   1,
	}
}

// ID returns the identity given at construction. It never changes.
func (a *Animation) ID() string {
	return a.id
}

// Handle returns the unique instance handle of this animation run.
func (a *Animation) Handle() uuid.UUID {
	return a.handle
}

// IsEmpty reports whether the animation has no entries.
func (a *Animation) IsEmpty() bool {
	return len(a.entries) == 0
}

// Len returns the number of live entries.
func (a *Animation) Len() int {
	return len(a.entries)
}

// State returns the current lifecycle state.
func (a *Animation) State() State {
	switch {
	case a.destroyed:
		return StateDestroyed
	case a.inDestruction:
		return StateDestroying
	case a.running:
		return StateRunning
	case len(a.entries) > 0:
		return StateActive
	default:
		return StateEmpty
	}
}

// AddAnimation binds transition to actor. It is only valid before Run.
// On error the animation is left exactly as it was.
func (a *Animation) AddAnimation(actor Actor, transition Transition) error {
	var err error
	switch {
	case a.destroyed || a.inDestruction:
		err = ErrDisposed
	case a.running:
		err = ErrAlreadyRunning
	case actor == nil:
		err = ErrNilActor
	case transition == nil:
		err = ErrNilTransition
	case !isComparable(actor) || !isComparable(transition):
		err = ErrNotComparable
	case a.owns(transition):
		err = ErrDuplicateTransition
	}
	if err != nil {
		log.Printf("Animation: AddAnimation on %q rejected: %v", a.id, err)
		return err
	}

	e, err := newEntry(a, actor, transition)
	if err != nil {
		log.Printf("Animation: CRITICAL: cannot create entry for %q: %v", a.id, err)
		return err
	}
	a.entries = append(a.entries, e)
	debugLog.Printf("Animation: %q added transition %q for actor %q", a.id, transition.Name(), actor.Name())
	return nil
}

// isComparable reports whether v can be compared and used as a map key,
// which owns and Run rely on to identify actors and transitions.
func isComparable(v any) bool {
	return reflect.TypeOf(v).Comparable()
}

func (a *Animation) owns(t Transition) bool {
	for _, e := range a.entries {
		if e.transition == t {
			return true
		}
	}
	return false
}

// Run attaches every transition to its actor, which starts playback. The
// caller's reference is handed over to the running animation. Running an
// empty animation destroys it immediately.
func (a *Animation) Run() {
	if a.destroyed || a.inDestruction {
		log.Printf("Animation: Run on disposed animation %q", a.id)
		return
	}
	if a.running {
		log.Printf("Animation: Run called twice on %q", a.id)
		return
	}
	a.running = true

	if len(a.entries) == 0 {
		debugLog.Printf("Animation: %q has no entries, destroying", a.id)
		a.Unref()
		return
	}

	keys := make(map[Actor]int, len(a.entries))
	for _, e := range slices.Clone(a.entries) {
		if !e.alive() {
			continue
		}
		keys[e.actor]++
		e.actor.AddTransition(attachKey(a.id, keys[e.actor]), e.transition)
	}
}

// attachKey names the n-th transition an animation attaches to one actor.
func attachKey(id string, n int) string {
	if n <= 1 {
		return id
	}
	return fmt.Sprintf("%s:%d", id, n)
}

// EnsureComplete forces every transition to its final frame so the defined
// end state is applied. Entries stay in place; a later natural stop still
// removes them. It does nothing before Run: nothing is attached yet and the
// first frame still has to backfill missing final values.
func (a *Animation) EnsureComplete() {
	if a.destroyed || !a.running {
		debugLog.Printf("Animation: EnsureComplete on %q ignored in state %s", a.id, a.State())
		return
	}
	for _, e := range slices.Clone(a.entries) {
		if !e.alive() {
			continue
		}
		t := e.transition
		duration := t.Duration()
		t.Advance(duration)
		t.EmitNewFrame(duration)
	}
}

// OnDone subscribes to the done notification, which fires exactly once
// right before the animation releases its entries.
func (a *Animation) OnDone(fn func(*Animation)) SubscriptionID {
	if fn == nil || a.destroyed || a.inDestruction {
		return 0
	}
	a.nextDoneID++
	a.doneHandlers = append(a.doneHandlers, doneHandler{id: a.nextDoneID, fn: fn})
	return a.nextDoneID
}

// RemoveDoneHandler drops a done subscription.
func (a *Animation) RemoveDoneHandler(id SubscriptionID) {
	a.doneHandlers = slices.DeleteFunc(a.doneHandlers, func(h doneHandler) bool {
		return h.id == id
	})
}

// Ref adds a reference, keeping the animation alive past its completion
// until the matching Unref.
func (a *Animation) Ref() *Animation {
	if a.destroyed {
		log.Printf("Animation: Ref on destroyed animation %q", a.id)
		return a
	}
	a.refs++
	return a
}

// Unref drops a reference; the last one destroys the animation.
func (a *Animation) Unref() {
	if a.destroyed || a.refs <= 0 {
		return
	}
	a.refs--
	if a.refs == 0 {
		a.dispose()
	}
}

// Dispose destroys the animation regardless of outstanding references.
func (a *Animation) Dispose() {
	if a.destroyed || a.inDestruction {
		return
	}
	a.refs = 0
	a.dispose()
}

func (a *Animation) removeEntry(e *entry) {
	idx := slices.Index(a.entries, e)
	if idx < 0 {
		return
	}
	a.entries = slices.Delete(slices.Clone(a.entries), idx, idx+1)
	e.destroy()

	// The self reference only exists once Run handed it over.
	if len(a.entries) == 0 && a.running && !a.inDestruction {
		debugLog.Printf("Animation: %q has no entries left, releasing self", a.id)
		a.Unref()
	}
}

func (a *Animation) dispose() {
	if !a.inDestruction {
		a.inDestruction = true
		handlers := a.doneHandlers
		a.doneHandlers = nil
		for _, h := range handlers {
			h.fn(a)
		}
	}

	entries := a.entries
	a.entries = nil
	for _, e := range entries {
		e.destroy()
	}
	a.destroyed = true
	debugLog.Printf("Animation: %q destroyed", a.id)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: animation/entry.go
// Summary: One actor/transition pairing tracked by an Animation.
// Usage: Created by Animation.AddAnimation, destroyed when removed from its owner.
// Notes: Teardown order is unsubscribe, stop, release transition, release actor.

package animation

import (
	"fmt"
	"time"
)

type entry struct {
	owner      *Animation
	actor      Actor
	transition Transition

	destroyID    SubscriptionID
	stoppedID    SubscriptionID
	firstFrameID SubscriptionID
}

func newEntry(owner *Animation, actor Actor, transition Transition) (*entry, error) {
	e := &entry{
		owner:      owner,
		actor:      actor,
		transition: transition,
	}
	retain(actor)
	retain(transition)

	e.destroyID = actor.OnDestroy(e.onActorDestroyed)
	e.stoppedID = transition.OnStopped(e.onTransitionStopped)
	e.firstFrameID = transition.OnNewFrame(e.onFirstFrame)

	if e.destroyID == 0 || e.stoppedID == 0 || e.firstFrameID == 0 {
		e.destroy()
		return nil, fmt.Errorf("%w: actor %q refused subscriptions", ErrEntryCreate, actor.Name())
	}
	return e, nil
}

func (e *entry) alive() bool {
	return e.owner != nil
}

func (e *entry) onActorDestroyed() {
	if !e.alive() {
		return
	}
	debugLog.Printf("Animation: actor %q of %q destroyed, dropping entry", e.actor.Name(), e.owner.id)
	e.owner.removeEntry(e)
}

func (e *entry) onTransitionStopped(finished bool) {
	if !e.alive() {
		return
	}
	if !finished {
		debugLog.Printf("Animation: transition %q of %q interrupted, keeping entry", e.transition.Name(), e.owner.id)
		return
	}
	e.owner.removeEntry(e)
}

func (e *entry) onFirstFrame(elapsed time.Duration) {
	if !e.alive() || e.firstFrameID == 0 {
		return
	}
	id := e.firstFrameID
	e.firstFrameID = 0
	e.transition.Unsubscribe(id)

	backfill(e.owner.id, e.transition)
}

// destroy disconnects the entry from its collaborators. Safe to call twice.
func (e *entry) destroy() {
	if e.actor == nil {
		return
	}
	if e.destroyID != 0 {
		e.actor.Unsubscribe(e.destroyID)
		e.destroyID = 0
	}
	if e.stoppedID != 0 {
		e.transition.Unsubscribe(e.stoppedID)
		e.stoppedID = 0
	}
	if e.firstFrameID != 0 {
		e.transition.Unsubscribe(e.firstFrameID)
		e.firstFrameID = 0
	}

	e.transition.Stop()

	release(e.transition)
	release(e.actor)
	e.owner = nil
	e.transition = nil
	e.actor = nil
}

// backfill installs the live property value as the final value of every
// member property transition whose interval lacks one.
func backfill(id string, t Transition) {
	var members []Transition
	switch tt := t.(type) {
	case TransitionGroup:
		members = tt.Transitions()
	case PropertyTransition:
		members = []Transition{tt}
	default:
		return
	}

	for _, member := range members {
		pt, ok := member.(PropertyTransition)
		if !ok {
			continue
		}
		interval := pt.Interval()
		if interval == nil {
			debugLog.Printf("Animation: %q transition %q has no interval", id, pt.Name())
			continue
		}
		if _, ok := interval.Final(); ok || interval.IsValid() {
			continue
		}
		target := pt.Animatable()
		if target == nil {
			debugLog.Printf("Animation: %q cannot resolve animatable for %q", id, pt.PropertyName())
			continue
		}
		current, ok := target.Property(pt.PropertyName())
		if !ok || !current.IsValid() {
			debugLog.Printf("Animation: %q has no live value for %q", id, pt.PropertyName())
			continue
		}
		interval.SetFinal(current)
		debugLog.Printf("Animation: %q backfilled final value of %q with %s", id, pt.PropertyName(), current)
	}
}

func retain(v any) {
	if r, ok := v.(Retainer); ok {
		r.Retain()
	}
}

func release(v any) {
	if r, ok := v.(Retainer); ok {
		r.Release()
	}
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: animation/dump.go
// Summary: Read-only diagnostic listing of an animation's entries.
// Usage: Called from debug key bindings and the CLI to inspect running animations.

package animation

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a description of every entry to w: actor, transition,
// timeline position and, per property transition, the live and configured
// values. It never modifies the animation or its transitions.
func (a *Animation) Dump(w io.Writer) {
	fmt.Fprintf(w, "Animation %q [%s] state=%s entries=%d\n", a.id, a.handle, a.State(), len(a.entries))
	for i, e := range a.entries {
		if !e.alive() {
			continue
		}
		t := e.transition
		fmt.Fprintf(w, "  entry %d: actor=%q transition=%q elapsed=%s duration=%s repeat=%d progress=%.3f\n",
			i+1, e.actor.Name(), t.Name(), t.Elapsed(), t.Duration(), t.RepeatCount(), t.Progress())

		switch tt := t.(type) {
		case TransitionGroup:
			for _, member := range tt.Transitions() {
				if pt, ok := member.(PropertyTransition); ok {
					dumpProperty(w, pt, "    ")
				}
			}
		case PropertyTransition:
			dumpProperty(w, tt, "    ")
		}
	}
}

// String returns the Dump output.
func (a *Animation) String() string {
	var b strings.Builder
	a.Dump(&b)
	return b.String()
}

func dumpProperty(w io.Writer, pt PropertyTransition, indent string) {
	name := pt.PropertyName()
	current := "<unresolved>"
	if target := pt.Animatable(); target != nil {
		if v, ok := target.Property(name); ok {
			current = v.String()
		}
	}

	interval := pt.Interval()
	if interval == nil {
		fmt.Fprintf(w, "%s%s: current=%s invalid state (no interval)\n", indent, name, current)
		return
	}
	from, _ := interval.Initial()
	to, hasFinal := interval.Final()
	if !hasFinal {
		fmt.Fprintf(w, "%s%s: current=%s from=%s invalid state (no final value)\n", indent, name, current, from)
		return
	}
	fmt.Fprintf(w, "%s%s: current=%s from=%s to=%s\n", indent, name, current, from, to)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/manager.go
// Summary: Tracks running theme animations, at most one per id.
// Usage: Views call Trigger when an actor emits a signal.
// Notes: A new animation completes and disposes the previous one with the same
// id before it runs, whichever sender started it. Both would attach under the
// same transition name and could target the same actors.

package theme

import (
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/framegrace/texeldash/animation"
	"github.com/framegrace/texeldash/internal/journal"
	"github.com/framegrace/texeldash/scene"
)

type activeEntry struct {
	anim   *animation.Animation
	sender *scene.Actor
	signal string
}

// Manager owns the running animations of a stage.
type Manager struct {
	stage   *scene.Stage
	factory *Factory
	journal journal.Journal
	enabled bool

	active map[string]activeEntry
}

// NewManager creates an enabled manager for stage.
func NewManager(stage *scene.Stage, factory *Factory) *Manager {
	return &Manager{
		stage:   stage,
		factory: factory,
		enabled: true,
		active:  make(map[string]activeEntry),
	}
}

// SetJournal sets the journal that receives lifecycle events; nil disables.
func (m *Manager) SetJournal(j journal.Journal) { m.journal = j }

// SetEnabled toggles animation. While disabled, triggered animations jump
// straight to their end state.
func (m *Manager) SetEnabled(enabled bool) { m.enabled = enabled }

// Enabled reports whether animations play.
func (m *Manager) Enabled() bool { return m.enabled }

// Trigger builds and starts the animation for signal on sender.
func (m *Manager) Trigger(sender *scene.Actor, signal string, initials, finals animation.Defaults) (*animation.Animation, error) {
	anim, err := m.factory.Create(m.stage, sender, signal, initials, finals)
	if err != nil {
		return nil, err
	}
	m.record(journal.KindCreated, anim, sender, signal)
	m.Start(sender, signal, anim)
	return anim, nil
}

// Start runs anim on behalf of sender. A previous animation with the same id
// is forced to its end state and disposed first.
func (m *Manager) Start(sender *scene.Actor, signal string, anim *animation.Animation) {
	key := anim.ID()
	if prev, ok := m.active[key]; ok && prev.anim != anim {
		debugLog.Printf("Theme: %q from %s replaced by %s", key, prev.sender, sender)
		m.record(journal.KindReplaced, prev.anim, prev.sender, prev.signal)
		prev.anim.EnsureComplete()
		prev.anim.Dispose()
	}

	m.active[key] = activeEntry{anim: anim, sender: sender, signal: signal}
	anim.OnDone(func(done *animation.Animation) {
		m.record(journal.KindDone, done, sender, signal)
		if cur, ok := m.active[key]; ok && cur.anim == done {
			delete(m.active, key)
		}
	})

	m.record(journal.KindRun, anim, sender, signal)
	anim.Run()

	if !m.enabled && anim.State() == animation.StateRunning {
		anim.EnsureComplete()
		anim.Dispose()
	}
}

// Active returns the running animation with id.
func (m *Manager) Active(id string) (*animation.Animation, bool) {
	e, ok := m.active[id]
	return e.anim, ok
}

// Sender returns the actor that started the running animation with id.
func (m *Manager) Sender(id string) (*scene.Actor, bool) {
	e, ok := m.active[id]
	return e.sender, ok
}

// Len returns the number of running animations.
func (m *Manager) Len() int { return len(m.active) }

// DumpAll writes the state of every running animation, ordered by id.
func (m *Manager) DumpAll(w io.Writer) {
	keys := m.sortedKeys()
	if len(keys) == 0 {
		fmt.Fprintln(w, "no running animations")
		return
	}
	for _, k := range keys {
		e := m.active[k]
		fmt.Fprintf(w, "sender %s:\n", e.sender)
		e.anim.Dump(w)
	}
}

// CompleteAll forces every running animation to its end state.
func (m *Manager) CompleteAll() {
	for _, k := range m.sortedKeys() {
		if e, ok := m.active[k]; ok {
			e.anim.EnsureComplete()
		}
	}
}

// StopAll disposes every running animation.
func (m *Manager) StopAll() {
	for _, k := range m.sortedKeys() {
		if e, ok := m.active[k]; ok {
			e.anim.Dispose()
		}
	}
}

func (m *Manager) sortedKeys() []string {
	keys := make([]string, 0, len(m.active))
	for k := range m.active {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Manager) record(kind journal.Kind, anim *animation.Animation, sender *scene.Actor, signal string) {
	if m.journal == nil {
		return
	}
	err := m.journal.Record(journal.Event{
		Kind:      kind,
		Animation: anim.ID(),
		Handle:    anim.Handle(),
		Sender:    sender.String(),
		Signal:    signal,
		Entries:   anim.Len(),
	})
	if err != nil {
		log.Printf("Theme: journal: %v", err)
	}
}

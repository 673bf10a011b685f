// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/factory.go
// Summary: Builds runtime animations from definitions for a triggering actor.
// Usage: Factory.Create(stage, sender, signal, initials, finals) then Run.
// Notes: Values missing from a definition fall back to caller defaults whose
// selector matches the target; anything still missing stays unset.

package theme

import (
	"errors"
	"fmt"
	"log"

	"github.com/framegrace/texeldash/animation"
	"github.com/framegrace/texeldash/scene"
)

// ErrNoDefinition is returned when no definition is triggered by a signal.
var ErrNoDefinition = errors.New("theme: no animation defined for trigger")

// Factory turns definitions into animations.
type Factory struct {
	defs *Definitions
}

// NewFactory creates a factory over defs.
func NewFactory(defs *Definitions) *Factory {
	if defs == nil {
		defs = &Definitions{}
	}
	return &Factory{defs: defs}
}

// Definitions returns the definitions the factory builds from.
func (f *Factory) Definitions() *Definitions { return f.defs }

// Create builds the animation triggered by signal on sender. The returned
// animation is not running and may be empty when no target resolved.
func (f *Factory) Create(stage *scene.Stage, sender *scene.Actor, signal string, initials, finals animation.Defaults) (*animation.Animation, error) {
	if sender == nil {
		return nil, fmt.Errorf("theme: nil sender for signal %q", signal)
	}
	def, ok := f.defs.Lookup(sender, signal)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrNoDefinition, sender, signal)
	}
	return f.Build(def, stage, sender, initials, finals)
}

// Build creates an animation for def. Each timeline yields one transition
// group per resolved target actor.
func (f *Factory) Build(def *Definition, stage *scene.Stage, sender *scene.Actor, initials, finals animation.Defaults) (*animation.Animation, error) {
	anim := animation.New(def.ID)
	for ti := range def.Timelines {
		tl := &def.Timelines[ti]
		for gi := range tl.Targets {
			target := &tl.Targets[gi]
			for _, actor := range resolveTargets(stage, sender, target) {
				group := buildGroup(fmt.Sprintf("%s[%d]", def.ID, ti), tl.Options(), target, actor, initials, finals)
				if err := anim.AddAnimation(actor, group); err != nil {
					anim.Dispose()
					return nil, fmt.Errorf("theme: %q on %s: %w", def.ID, actor, err)
				}
			}
		}
	}
	debugLog.Printf("Theme: built %q for %s with %d entries", def.ID, sender, anim.Len())
	return anim, nil
}

func resolveTargets(stage *scene.Stage, sender *scene.Actor, target *Target) []*scene.Actor {
	root := sender
	if target.Origin == OriginStage {
		if stage == nil {
			log.Printf("Theme: target %q needs a stage, skipping", target.Apply)
			return nil
		}
		root = stage.Root()
	}
	if target.apply == nil {
		return []*scene.Actor{root}
	}
	return scene.FindIn(root, target.apply)
}

func buildGroup(name string, opts scene.TimelineOptions, target *Target, actor *scene.Actor, initials, finals animation.Defaults) *scene.Group {
	match := func(selector string) bool {
		sel, err := scene.ParseSelector(selector)
		if err != nil {
			debugLog.Printf("Theme: ignoring default with bad selector %q: %v", selector, err)
			return false
		}
		return sel.Match(actor)
	}

	group := scene.NewGroup(name, opts)
	for _, p := range target.Properties {
		from, to := p.from, p.to
		if !from.IsValid() {
			from, _ = initials.Lookup(p.Name, match)
		}
		if !to.IsValid() {
			to, _ = finals.Lookup(p.Name, match)
		}
		group.Add(scene.NewPropertyTransition(p.Name, scene.NewInterval(from, to), scene.TimelineOptions{}))
	}
	return group
}

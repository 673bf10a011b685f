// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/timeline.go
// Summary: Frame-driven playback clock shared by property transitions and groups.
// Usage: Embedded by PropertyTransition and Group; advanced by Stage.Tick.
// Notes: New-frame subscribers run before the owning transition applies values.

package scene

import (
	"time"

	"github.com/framegrace/texeldash/animation"
)

// RepeatForever makes a timeline loop until stopped.
const RepeatForever = -1

// TimelineOptions configures playback.
type TimelineOptions struct {
	Duration time.Duration
	Delay    time.Duration
	// Repeat is the number of extra iterations; RepeatForever loops.
	Repeat int
	Easing Easing
}

// Timeline tracks elapsed time within the current iteration and notifies
// subscribers about frames and stops.
type Timeline struct {
	name string
	opts TimelineOptions

	elapsed   time.Duration
	delayLeft time.Duration
	iteration int
	playing   bool
	retains   int

	stopped  handlers[func(bool)]
	newFrame handlers[func(time.Duration)]

	// apply writes interpolated values for the given eased progress.
	apply func(progress float64)
	// detached runs after playback stopped so the owner can drop the transition.
	detached func()
}

func newTimeline(name string, opts TimelineOptions) *Timeline {
	if opts.Easing == nil {
		opts.Easing = EaseSmoothstep
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}
	return &Timeline{name: name, opts: opts}
}

// Name returns the transition name.
func (t *Timeline) Name() string { return t.name }

// Duration returns the length of one iteration.
func (t *Timeline) Duration() time.Duration { return t.opts.Duration }

// Delay returns the delay before the first frame.
func (t *Timeline) Delay() time.Duration { return t.opts.Delay }

// Elapsed returns the position within the current iteration.
func (t *Timeline) Elapsed() time.Duration { return t.elapsed }

// RepeatCount returns the configured number of extra iterations.
func (t *Timeline) RepeatCount() int { return t.opts.Repeat }

// IsPlaying reports whether the timeline is advancing.
func (t *Timeline) IsPlaying() bool { return t.playing }

// Progress returns the eased progress of the current iteration.
func (t *Timeline) Progress() float64 {
	return t.progressAt(t.elapsed)
}

func (t *Timeline) progressAt(elapsed time.Duration) float64 {
	if t.opts.Duration <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(t.opts.Duration)
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return t.opts.Easing(p)
}

// Start begins playback from the beginning.
func (t *Timeline) Start() {
	t.elapsed = 0
	t.iteration = 0
	t.delayLeft = t.opts.Delay
	t.playing = true
}

// Advance moves the playhead without emitting a frame.
func (t *Timeline) Advance(elapsed time.Duration) {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > t.opts.Duration {
		elapsed = t.opts.Duration
	}
	t.elapsed = elapsed
}

// Stop halts playback. A playing timeline emits stopped(false).
func (t *Timeline) Stop() {
	if !t.playing {
		return
	}
	t.playing = false
	t.stopped.each(func(fn func(bool)) { fn(false) })
	if t.detached != nil {
		t.detached()
	}
}

// Tick advances a playing timeline by delta, emitting a frame and, at the
// end of the last iteration, stopped(true).
func (t *Timeline) Tick(delta time.Duration) {
	if !t.playing {
		return
	}
	if t.delayLeft > 0 {
		if delta < t.delayLeft {
			t.delayLeft -= delta
			return
		}
		delta -= t.delayLeft
		t.delayLeft = 0
	}

	t.elapsed += delta
	if t.elapsed < t.opts.Duration {
		t.EmitNewFrame(t.elapsed)
		return
	}

	// A long delta may cover several iterations; a zero-length timeline
	// consumes one per tick.
	wraps := 1
	if t.opts.Duration > 0 {
		wraps = int(t.elapsed / t.opts.Duration)
	}
	if t.opts.Repeat == RepeatForever || t.iteration+wraps <= t.opts.Repeat {
		t.iteration += wraps
		if t.opts.Duration > 0 {
			t.elapsed %= t.opts.Duration
		} else {
			t.elapsed = 0
		}
		t.EmitNewFrame(t.elapsed)
		return
	}

	t.elapsed = t.opts.Duration
	t.EmitNewFrame(t.elapsed)
	if !t.playing {
		return
	}
	t.playing = false
	t.stopped.each(func(fn func(bool)) { fn(true) })
	if t.detached != nil {
		t.detached()
	}
}

// EmitNewFrame synchronously produces a frame for elapsed: subscribers run
// first, then the owner applies interpolated values.
func (t *Timeline) EmitNewFrame(elapsed time.Duration) {
	t.newFrame.each(func(fn func(time.Duration)) { fn(elapsed) })
	if t.apply != nil {
		t.apply(t.progressAt(elapsed))
	}
}

// OnStopped subscribes to playback stops.
func (t *Timeline) OnStopped(fn func(finished bool)) animation.SubscriptionID {
	return t.stopped.add(fn)
}

// OnNewFrame subscribes to produced frames.
func (t *Timeline) OnNewFrame(fn func(elapsed time.Duration)) animation.SubscriptionID {
	return t.newFrame.add(fn)
}

// Unsubscribe removes a stopped or new-frame subscription.
func (t *Timeline) Unsubscribe(id animation.SubscriptionID) {
	if !t.stopped.remove(id) {
		t.newFrame.remove(id)
	}
}

// Retain records a shared ownership claim.
func (t *Timeline) Retain() { t.retains++ }

// Release drops a shared ownership claim.
func (t *Timeline) Release() {
	if t.retains > 0 {
		t.retains--
	}
}

// Retained returns the number of outstanding ownership claims.
func (t *Timeline) Retained() int { return t.retains }

func (t *Timeline) setDetached(fn func()) { t.detached = fn }

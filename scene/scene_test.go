// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"testing"
	"time"

	"github.com/framegrace/texeldash/animation"
)

func linear(d time.Duration) TimelineOptions {
	return TimelineOptions{Duration: d, Easing: EaseLinear}
}

func TestTimelineFinishesAfterDuration(t *testing.T) {
	tl := newTimeline("t", linear(100*time.Millisecond))
	var frames []time.Duration
	var stops []bool
	tl.OnNewFrame(func(e time.Duration) { frames = append(frames, e) })
	tl.OnStopped(func(finished bool) { stops = append(stops, finished) })

	tl.Start()
	tl.Tick(50 * time.Millisecond)
	tl.Tick(60 * time.Millisecond)
	tl.Tick(10 * time.Millisecond)

	if len(frames) != 2 || frames[0] != 50*time.Millisecond || frames[1] != 100*time.Millisecond {
		t.Fatalf("frames = %v, want [50ms 100ms]", frames)
	}
	if len(stops) != 1 || !stops[0] {
		t.Fatalf("stops = %v, want [true]", stops)
	}
	if tl.IsPlaying() {
		t.Fatalf("timeline should be stopped")
	}
}

func TestTimelineRepeatsAndDelays(t *testing.T) {
	tl := newTimeline("t", TimelineOptions{Duration: 100 * time.Millisecond, Delay: 30 * time.Millisecond, Repeat: 1, Easing: EaseLinear})
	var frames []time.Duration
	finished := false
	tl.OnNewFrame(func(e time.Duration) { frames = append(frames, e) })
	tl.OnStopped(func(f bool) { finished = f })

	tl.Start()
	tl.Tick(20 * time.Millisecond)
	if len(frames) != 0 {
		t.Fatalf("frame produced during delay")
	}
	tl.Tick(20 * time.Millisecond)
	if len(frames) != 1 || frames[0] != 10*time.Millisecond {
		t.Fatalf("frames after delay = %v, want [10ms]", frames)
	}
	tl.Tick(140 * time.Millisecond)
	if finished {
		t.Fatalf("timeline finished before its repeat")
	}
	if tl.Elapsed() != 50*time.Millisecond {
		t.Fatalf("elapsed after wrap = %s, want 50ms", tl.Elapsed())
	}
	tl.Tick(60 * time.Millisecond)
	if !finished {
		t.Fatalf("timeline should finish after its repeat")
	}
}

func TestTimelineLongTickCoversSeveralIterations(t *testing.T) {
	tl := newTimeline("t", TimelineOptions{Duration: 100 * time.Millisecond, Repeat: 3, Easing: EaseLinear})
	finished := false
	tl.OnStopped(func(f bool) { finished = f })

	tl.Start()
	tl.Tick(250 * time.Millisecond)
	if finished {
		t.Fatalf("timeline finished after 250ms of 400ms")
	}
	if tl.Elapsed() != 50*time.Millisecond {
		t.Fatalf("elapsed = %s, want 50ms into the third iteration", tl.Elapsed())
	}

	tl.Tick(160 * time.Millisecond)
	if !finished {
		t.Fatalf("timeline should finish once all four iterations elapsed")
	}
	if tl.Elapsed() != 100*time.Millisecond {
		t.Fatalf("elapsed at end = %s, want full duration", tl.Elapsed())
	}

	forever := newTimeline("f", TimelineOptions{Duration: 100 * time.Millisecond, Repeat: RepeatForever, Easing: EaseLinear})
	forever.Start()
	forever.Tick(1030 * time.Millisecond)
	if !forever.IsPlaying() || forever.Elapsed() != 30*time.Millisecond {
		t.Fatalf("looping timeline: playing=%v elapsed=%s", forever.IsPlaying(), forever.Elapsed())
	}
}

func TestTimelineStopEmitsNotFinishedOnce(t *testing.T) {
	tl := newTimeline("t", linear(time.Second))
	var stops []bool
	tl.OnStopped(func(f bool) { stops = append(stops, f) })

	tl.Stop()
	tl.Start()
	tl.Stop()
	tl.Stop()

	if len(stops) != 1 || stops[0] {
		t.Fatalf("stops = %v, want [false]", stops)
	}
}

func TestUnsubscribeDuringEmission(t *testing.T) {
	tl := newTimeline("t", linear(time.Second))
	calls := 0
	var second animation.SubscriptionID
	tl.OnNewFrame(func(time.Duration) { tl.Unsubscribe(second) })
	second = tl.OnNewFrame(func(time.Duration) { calls++ })

	tl.EmitNewFrame(0)
	tl.Unsubscribe(second)
	tl.Unsubscribe(0)

	if calls != 0 {
		t.Fatalf("handler removed earlier in the same emission was called")
	}
}

func TestPropertyTransitionCapturesInitialOnAttach(t *testing.T) {
	actor := NewActor("box", "a")
	_ = actor.SetProperty("x", animation.Float(10))
	pt := NewPropertyTransition("x", NewInterval(animation.Value{}, animation.Float(20)), linear(100*time.Millisecond))

	actor.AddTransition("move", pt)
	if v, _ := pt.interval.Initial(); v.Float() != 10 {
		t.Fatalf("initial = %v, want 10", v)
	}

	pt.Tick(50 * time.Millisecond)
	if v, _ := actor.Property("x"); v.Float() != 15 {
		t.Fatalf("x = %v, want 15", v)
	}
	pt.Tick(50 * time.Millisecond)
	if v, _ := actor.Property("x"); v.Float() != 20 {
		t.Fatalf("x = %v, want 20", v)
	}
	if _, ok := actor.Transition("move"); ok {
		t.Fatalf("finished transition should detach from its actor")
	}
}

func TestPropertyTransitionWithoutFinalHoldsValue(t *testing.T) {
	actor := NewActor("box", "a")
	_ = actor.SetProperty("opacity", animation.Int(40))
	pt := NewPropertyTransition("opacity", NewInterval(animation.Int(0), animation.Value{}), linear(100*time.Millisecond))
	actor.AddTransition("fade", pt)

	pt.Tick(50 * time.Millisecond)
	if v, _ := actor.Property("opacity"); v.Int() != 40 {
		t.Fatalf("opacity = %v, want untouched 40", v)
	}
}

func TestGroupAppliesMembers(t *testing.T) {
	actor := NewActor("box", "a")
	opacity := NewPropertyTransition("opacity", NewInterval(animation.Int(0), animation.Int(200)), TimelineOptions{})
	x := NewPropertyTransition("x", NewInterval(animation.Float(0), animation.Float(1)), TimelineOptions{})
	g := NewGroup("g", linear(100*time.Millisecond), opacity, x)

	actor.AddTransition("show", g)
	if opacity.Animatable() == nil || x.Animatable() == nil {
		t.Fatalf("members should be bound to the group's actor")
	}
	g.Tick(25 * time.Millisecond)

	if v, _ := actor.Property("opacity"); v.Int() != 50 {
		t.Fatalf("opacity = %v, want 50", v)
	}
	if v, _ := actor.Property("x"); v.Float() != 0.25 {
		t.Fatalf("x = %v, want 0.25", v)
	}
	if len(g.Transitions()) != 2 {
		t.Fatalf("expected two members")
	}
}

func TestAddTransitionReplacesSameName(t *testing.T) {
	actor := NewActor("box", "a")
	first := NewPropertyTransition("x", NewInterval(animation.Float(0), animation.Float(1)), linear(time.Second))
	second := NewPropertyTransition("x", NewInterval(animation.Float(0), animation.Float(2)), linear(time.Second))
	var firstStops []bool
	first.OnStopped(func(f bool) { firstStops = append(firstStops, f) })

	actor.AddTransition("move", first)
	actor.AddTransition("move", second)

	if got, _ := actor.Transition("move"); got != second {
		t.Fatalf("second transition should replace the first")
	}
	if len(firstStops) != 1 || firstStops[0] {
		t.Fatalf("replaced transition stops = %v, want [false]", firstStops)
	}
	if names := actor.TransitionNames(); len(names) != 1 {
		t.Fatalf("transition names = %v", names)
	}
}

func TestActorDestroyOrder(t *testing.T) {
	parent := NewActor("box", "parent")
	child := NewActor("box", "child")
	parent.AddChild(child)

	pt := NewPropertyTransition("x", NewInterval(animation.Float(0), animation.Float(1)), linear(time.Second))
	parent.AddTransition("move", pt)

	var events []string
	parent.OnDestroy(func() {
		if pt.IsPlaying() {
			events = append(events, "destroy-before-stop")
		}
	})
	pt.OnStopped(func(bool) { events = append(events, "stopped") })
	child.OnDestroy(func() { events = append(events, "child") })

	parent.Destroy()
	parent.Destroy()

	want := []string{"destroy-before-stop", "stopped", "child"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
	if parent.OnDestroy(func() {}) != 0 {
		t.Fatalf("destroyed actor must refuse subscriptions")
	}
	if err := parent.SetProperty("x", animation.Float(1)); err == nil {
		t.Fatalf("expected error setting property on destroyed actor")
	}
}

func TestStageTickDrivesAnimationBackfill(t *testing.T) {
	stage := NewStage()
	thumb := NewActor("thumb", "t1", "window")
	stage.Add(thumb)
	_ = thumb.SetProperty("opacity", animation.Int(128))

	interval := NewInterval(animation.Int(0), animation.Value{})
	group := NewGroup("fade-in", linear(100*time.Millisecond),
		NewPropertyTransition("opacity", interval, TimelineOptions{}))

	anim := animation.New("fade-in")
	done := 0
	anim.OnDone(func(*animation.Animation) { done++ })
	if err := anim.AddAnimation(thumb, group); err != nil {
		t.Fatalf("AddAnimation: %v", err)
	}
	anim.Run()

	if group.Retained() != 1 || thumb.Retained() != 1 {
		t.Fatalf("entry should retain actor and transition")
	}

	stage.Tick(50 * time.Millisecond)
	if final, ok := interval.Final(); !ok || final.Int() != 128 {
		t.Fatalf("final = %v (set=%v), want 128", final, ok)
	}
	if v, _ := thumb.Property("opacity"); v.Int() != 64 {
		t.Fatalf("opacity mid-way = %v, want 64", v)
	}

	_ = thumb.SetProperty("opacity", animation.Int(1))
	stage.Tick(10 * time.Millisecond)
	if final, _ := interval.Final(); final.Int() != 128 {
		t.Fatalf("second frame re-ran backfill: final = %v", final)
	}

	stage.Tick(100 * time.Millisecond)
	if done != 1 {
		t.Fatalf("done = %d, want 1", done)
	}
	if stage.HasActiveTransitions() {
		t.Fatalf("finished transition left on the stage")
	}
	if group.Retained() != 0 || thumb.Retained() != 0 {
		t.Fatalf("claims not released: group=%d actor=%d", group.Retained(), thumb.Retained())
	}
}

func TestStageActorDestroyEndsAnimation(t *testing.T) {
	stage := NewStage()
	a := NewActor("thumb", "a")
	stage.Add(a)
	group := NewGroup("g", linear(time.Second),
		NewPropertyTransition("x", NewInterval(animation.Float(0), animation.Float(1)), TimelineOptions{}))

	anim := animation.New("move")
	_ = anim.AddAnimation(a, group)
	anim.Run()
	stage.Tick(10 * time.Millisecond)

	a.Destroy()
	if anim.State() != animation.StateDestroyed {
		t.Fatalf("state = %s, want destroyed", anim.State())
	}
	if group.IsPlaying() {
		t.Fatalf("transition still playing after actor destroy")
	}
	if _, ok := stage.Lookup("a"); ok {
		t.Fatalf("destroyed actor still on stage")
	}
}

func TestEnsureCompleteAppliesFinalValues(t *testing.T) {
	a := NewActor("thumb", "a")
	group := NewGroup("g", linear(time.Second),
		NewPropertyTransition("x", NewInterval(animation.Float(0), animation.Float(9)), TimelineOptions{}))
	anim := animation.New("move")
	_ = anim.AddAnimation(a, group)
	anim.Run()

	anim.EnsureComplete()

	if v, _ := a.Property("x"); v.Float() != 9 {
		t.Fatalf("x = %v, want 9", v)
	}
	if anim.Len() != 1 || !group.IsPlaying() {
		t.Fatalf("ensure complete must not stop or remove the entry")
	}
}

func TestEnsureCompleteBeforeRunKeepsBackfill(t *testing.T) {
	stage := NewStage()
	thumb := NewActor("thumb", "t1")
	stage.Add(thumb)
	_ = thumb.SetProperty("opacity", animation.Int(128))

	interval := NewInterval(animation.Int(0), animation.Value{})
	group := NewGroup("fade-in", linear(100*time.Millisecond),
		NewPropertyTransition("opacity", interval, TimelineOptions{}))
	anim := animation.New("fade-in")
	if err := anim.AddAnimation(thumb, group); err != nil {
		t.Fatalf("AddAnimation: %v", err)
	}

	anim.EnsureComplete()
	if v, _ := thumb.Property("opacity"); v.Int() != 128 {
		t.Fatalf("EnsureComplete before Run touched the actor: opacity = %v", v)
	}
	if _, ok := interval.Final(); ok {
		t.Fatalf("final value installed before the first frame")
	}

	anim.Run()
	stage.Tick(50 * time.Millisecond)
	if final, ok := interval.Final(); !ok || final.Int() != 128 {
		t.Fatalf("final after first frame = %v (set=%v), want 128", final, ok)
	}
	if v, _ := thumb.Property("opacity"); v.Int() != 64 {
		t.Fatalf("opacity mid-way = %v, want 64", v)
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range EasingNames() {
		e, ok := EasingByName(name)
		if !ok {
			t.Fatalf("EasingByName(%q) failed", name)
		}
		if got := e(0); got > 1e-3 || got < -1e-3 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := e(1); got > 1+1e-3 || got < 1-1e-3 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
	if _, ok := EasingByName("wobbly"); ok {
		t.Fatalf("unknown easing resolved")
	}
	if e, ok := EasingByName(""); !ok || e(0.5) != 0.5 {
		t.Fatalf("empty name should select smoothstep")
	}
}

func TestRegisterEasingRejectsDuplicates(t *testing.T) {
	RegisterEasing("test-square", func(p float64) float64 { return p * p })
	if e, ok := EasingByName("Test-Square"); !ok || e(0.5) != 0.25 {
		t.Fatalf("registered easing not resolved")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	RegisterEasing("linear", EaseLinear)
}

func TestSelectorMatching(t *testing.T) {
	stage := NewStage()
	dock := NewActor("dock", "dock", "bottom")
	thumbA := NewActor("thumb", "a", "window", "urgent")
	thumbB := NewActor("thumb", "b", "window")
	dock.AddChild(thumbA)
	dock.AddChild(thumbB)
	stage.Add(dock)
	stage.Add(NewActor("thumb", "loose", "window"))

	tests := []struct {
		sel  string
		want []string
		spec int
	}{
		{"thumb", []string{"a", "b", "loose"}, 1},
		{"#a", []string{"a"}, 100},
		{".window.urgent", []string{"a"}, 20},
		{"dock .window", []string{"a", "b"}, 11},
		{"stage dock#dock thumb", []string{"a", "b"}, 103},
		{"*", []string{"stage", "dock", "a", "b", "loose"}, 0},
	}
	for _, tt := range tests {
		sel, err := ParseSelector(tt.sel)
		if err != nil {
			t.Fatalf("ParseSelector(%q): %v", tt.sel, err)
		}
		var got []string
		for _, a := range stage.Find(sel) {
			got = append(got, a.Name())
		}
		if len(got) != len(tt.want) {
			t.Errorf("%q matched %v, want %v", tt.sel, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q matched %v, want %v", tt.sel, got, tt.want)
				break
			}
		}
		if sel.Specificity() != tt.spec {
			t.Errorf("%q specificity = %d, want %d", tt.sel, sel.Specificity(), tt.spec)
		}
	}

	for _, bad := range []string{"", "   ", "thumb#", "#a#b", "a>b"} {
		if _, err := ParseSelector(bad); err == nil {
			t.Errorf("ParseSelector(%q) should fail", bad)
		}
	}
}

func TestStageTickAt(t *testing.T) {
	stage := NewStage()
	a := NewActor("box", "a")
	stage.Add(a)
	pt := NewPropertyTransition("x", NewInterval(animation.Float(0), animation.Float(10)), linear(100*time.Millisecond))
	a.AddTransition("move", pt)

	start := time.Unix(0, 0)
	stage.TickAt(start)
	if pt.Elapsed() != 0 {
		t.Fatalf("first TickAt must only record the time")
	}
	stage.TickAt(start.Add(40 * time.Millisecond))
	if pt.Elapsed() != 40*time.Millisecond {
		t.Fatalf("elapsed = %s, want 40ms", pt.Elapsed())
	}
	if !stage.HasActiveTransitions() {
		t.Fatalf("expected an active transition")
	}
}

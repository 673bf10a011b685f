// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package animation

import (
	"sort"
	"time"
)

var fakeSubscriptions SubscriptionID

func nextFakeID() SubscriptionID {
	fakeSubscriptions++
	return fakeSubscriptions
}

// callOrder records collaborator events across fakes.
type callOrder struct {
	events []string
}

func (c *callOrder) add(event string) {
	if c != nil {
		c.events = append(c.events, event)
	}
}

func sortedIDs[F any](m map[SubscriptionID]F) []SubscriptionID {
	ids := make([]SubscriptionID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type fakeActor struct {
	name      string
	props     map[string]Value
	attached  map[string]Transition
	attaches  int
	destroyed bool
	refuse    bool
	retains   int
	order     *callOrder
	onDestroy map[SubscriptionID]func()
}

func newFakeActor(name string, order *callOrder) *fakeActor {
	return &fakeActor{
		name:      name,
		props:     make(map[string]Value),
		attached:  make(map[string]Transition),
		order:     order,
		onDestroy: make(map[SubscriptionID]func()),
	}
}

func (a *fakeActor) Name() string { return a.name }

func (a *fakeActor) Property(name string) (Value, bool) {
	v, ok := a.props[name]
	return v, ok
}

func (a *fakeActor) SetProperty(name string, v Value) error {
	a.props[name] = v
	return nil
}

func (a *fakeActor) OnDestroy(fn func()) SubscriptionID {
	if a.refuse || a.destroyed {
		return 0
	}
	id := nextFakeID()
	a.onDestroy[id] = fn
	return id
}

func (a *fakeActor) Unsubscribe(id SubscriptionID) {
	delete(a.onDestroy, id)
}

func (a *fakeActor) AddTransition(name string, t Transition) {
	a.attaches++
	a.attached[name] = t
	if ft, ok := t.(interface{ start() }); ok {
		ft.start()
	}
}

func (a *fakeActor) RemoveTransition(name string) {
	delete(a.attached, name)
}

func (a *fakeActor) Retain() { a.retains++ }

func (a *fakeActor) Release() {
	a.retains--
	a.order.add("release actor " + a.name)
}

func (a *fakeActor) destroy() {
	a.destroyed = true
	for _, id := range sortedIDs(a.onDestroy) {
		if fn, ok := a.onDestroy[id]; ok {
			fn()
		}
	}
}

type fakeTransition struct {
	name      string
	duration  time.Duration
	elapsed   time.Duration
	repeat    int
	playing   bool
	stopCalls int
	retains   int
	frames    int
	order     *callOrder

	onStopped map[SubscriptionID]func(bool)
	onFrame   map[SubscriptionID]func(time.Duration)
}

func newFakeTransition(name string, duration time.Duration, order *callOrder) *fakeTransition {
	return &fakeTransition{
		name:      name,
		duration:  duration,
		order:     order,
		onStopped: make(map[SubscriptionID]func(bool)),
		onFrame:   make(map[SubscriptionID]func(time.Duration)),
	}
}

func (t *fakeTransition) Name() string            { return t.name }
func (t *fakeTransition) Duration() time.Duration { return t.duration }
func (t *fakeTransition) Elapsed() time.Duration  { return t.elapsed }
func (t *fakeTransition) RepeatCount() int        { return t.repeat }

func (t *fakeTransition) Advance(elapsed time.Duration) {
	t.elapsed = elapsed
}

func (t *fakeTransition) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}

func (t *fakeTransition) start() { t.playing = true }

func (t *fakeTransition) Stop() {
	t.stopCalls++
	t.order.add("stop " + t.name)
	if !t.playing {
		return
	}
	t.playing = false
	t.emitStopped(false)
}

func (t *fakeTransition) OnStopped(fn func(bool)) SubscriptionID {
	id := nextFakeID()
	t.onStopped[id] = fn
	return id
}

func (t *fakeTransition) OnNewFrame(fn func(time.Duration)) SubscriptionID {
	id := nextFakeID()
	t.onFrame[id] = fn
	return id
}

func (t *fakeTransition) Unsubscribe(id SubscriptionID) {
	delete(t.onStopped, id)
	delete(t.onFrame, id)
}

func (t *fakeTransition) EmitNewFrame(elapsed time.Duration) {
	t.frames++
	for _, id := range sortedIDs(t.onFrame) {
		if fn, ok := t.onFrame[id]; ok {
			fn(elapsed)
		}
	}
}

func (t *fakeTransition) emitStopped(finished bool) {
	for _, id := range sortedIDs(t.onStopped) {
		if fn, ok := t.onStopped[id]; ok {
			fn(finished)
		}
	}
}

// finish simulates the timeline reaching its natural end.
func (t *fakeTransition) finish() {
	t.elapsed = t.duration
	t.playing = false
	t.emitStopped(true)
}

func (t *fakeTransition) Retain() { t.retains++ }

func (t *fakeTransition) Release() {
	t.retains--
	t.order.add("release transition " + t.name)
}

type fakeInterval struct {
	initial, final Value
	setFinalCalls  int
}

func (i *fakeInterval) Initial() (Value, bool) { return i.initial, i.initial.IsValid() }
func (i *fakeInterval) Final() (Value, bool)   { return i.final, i.final.IsValid() }

func (i *fakeInterval) SetFinal(v Value) {
	i.setFinalCalls++
	i.final = v
}

func (i *fakeInterval) IsValid() bool { return i.initial.Compatible(i.final) }

type fakeProperty struct {
	*fakeTransition
	property string
	interval *fakeInterval
	target   Animatable
}

func (p *fakeProperty) PropertyName() string { return p.property }

func (p *fakeProperty) Interval() Interval {
	if p.interval == nil {
		return nil
	}
	return p.interval
}

func (p *fakeProperty) Animatable() Animatable { return p.target }

type fakeGroup struct {
	*fakeTransition
	members []Transition
}

func (g *fakeGroup) Transitions() []Transition {
	return append([]Transition(nil), g.members...)
}

// valueActor is an Actor implemented on a non-comparable value type.
type valueActor struct {
	tags []string
}

func (valueActor) Name() string                     { return "value" }
func (valueActor) Property(string) (Value, bool)    { return Value{}, false }
func (valueActor) SetProperty(string, Value) error  { return nil }
func (valueActor) OnDestroy(func()) SubscriptionID  { return nextFakeID() }
func (valueActor) Unsubscribe(SubscriptionID)       {}
func (valueActor) AddTransition(string, Transition) {}
func (valueActor) RemoveTransition(string)          {}

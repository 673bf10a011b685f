// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/signals.go
// Summary: Ordered handler lists with idempotent unsubscribe.
// Usage: Backs actor destroy and transition stopped/new-frame notifications.
// Notes: Handlers removed during an emission are not invoked afterwards.

package scene

import (
	"sync/atomic"

	"github.com/framegrace/texeldash/animation"
)

var lastSubscription atomic.Uint64

func nextSubscription() animation.SubscriptionID {
	return animation.SubscriptionID(lastSubscription.Add(1))
}

type subscription[F any] struct {
	id animation.SubscriptionID
	fn F
}

type handlers[F any] struct {
	subs []subscription[F]
}

func (h *handlers[F]) add(fn F) animation.SubscriptionID {
	id := nextSubscription()
	h.subs = append(h.subs, subscription[F]{id: id, fn: fn})
	return id
}

func (h *handlers[F]) remove(id animation.SubscriptionID) bool {
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (h *handlers[F]) has(id animation.SubscriptionID) bool {
	for _, s := range h.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func (h *handlers[F]) len() int {
	return len(h.subs)
}

// each calls visit for every handler still subscribed at the time it is reached.
func (h *handlers[F]) each(visit func(F)) {
	snapshot := h.subs
	for _, s := range snapshot {
		if h.has(s.id) {
			visit(s.fn)
		}
	}
}

func (h *handlers[F]) clear() {
	h.subs = nil
}

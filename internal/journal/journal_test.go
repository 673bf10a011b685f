// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTemp(t)
	handle := uuid.New()
	base := time.Unix(1700000000, 0)

	kinds := []Kind{KindCreated, KindRun, KindDone}
	for i, k := range kinds {
		if err := j.Record(Event{
			Time:      base.Add(time.Duration(i) * time.Second),
			Kind:      k,
			Animation: "slide-in",
			Handle:    handle,
			Sender:    "dock#dock",
			Signal:    "show",
			Entries:   2,
		}); err != nil {
			t.Fatalf("Record(%s): %v", k, err)
		}
	}

	recent, err := j.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 events, got %d", len(recent))
	}
	if recent[0].Kind != KindDone || recent[1].Kind != KindRun {
		t.Fatalf("expected newest first, got %s, %s", recent[0].Kind, recent[1].Kind)
	}
	if recent[0].Handle != handle {
		t.Fatalf("handle mismatch: %s", recent[0].Handle)
	}
	if !recent[0].Time.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("timestamp mismatch: %s", recent[0].Time)
	}
	if recent[0].Sender != "dock#dock" || recent[0].Signal != "show" || recent[0].Entries != 2 {
		t.Fatalf("unexpected event: %+v", recent[0])
	}
}

func TestForAnimationFilters(t *testing.T) {
	j := openTemp(t)
	for _, id := range []string{"a", "b", "a"} {
		if err := j.Record(Event{Kind: KindCreated, Animation: id, Handle: uuid.New()}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	events, err := j.ForAnimation("a")
	if err != nil {
		t.Fatalf("ForAnimation: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for a, got %d", len(events))
	}
	if events[0].Seq >= events[1].Seq {
		t.Fatalf("expected record order, got %d then %d", events[0].Seq, events[1].Seq)
	}
	if events[0].Time.IsZero() {
		t.Fatalf("zero time should be filled in")
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := j.Record(Event{Kind: KindRun, Animation: "pulse", Handle: uuid.New()}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j.Close()
	events, err := j.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 1 || events[0].Animation != "pulse" {
		t.Fatalf("expected persisted event, got %+v", events)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

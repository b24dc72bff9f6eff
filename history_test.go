/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import "testing"

// TestHistoryRecallRoundTrip appends "one" then "two"; Up, Up, Down,
// Down should yield "two", "one", "two", "".
func TestHistoryRecallRoundTrip(t *testing.T) {
	h := NewHistory()
	h.Append("one")
	h.Append("two")

	steps := []struct {
		up   bool
		want string
	}{
		{up: true, want: "two"},
		{up: true, want: "one"},
		{up: false, want: "two"},
		{up: false, want: ""},
	}

	for i, step := range steps {
		var got string
		if step.up {
			got, _ = h.RecallPrev()
		} else {
			got, _ = h.RecallNext()
		}
		if got != step.want {
			t.Fatalf("step %d: got %q, want %q", i, got, step.want)
		}
	}
}

func TestHistoryCollapsesAdjacentDuplicates(t *testing.T) {
	h := NewHistory()
	h.Append("echo hi")
	h.Append("echo hi")

	if h.Len() != 1 {
		t.Fatalf("expected adjacent duplicate to collapse, got len %d", h.Len())
	}
}

func TestHistoryEvictsOldestBeyondMaxSize(t *testing.T) {
	h := NewHistory()
	h.SetMaxSize(2)

	h.Append("a")
	h.Append("b")
	h.Append("c")

	if h.Len() != 2 {
		t.Fatalf("expected len 2, got %d", h.Len())
	}
	got, _ := h.RecallPrev()
	if got != "c" {
		t.Fatalf("expected newest entry %q, got %q", "c", got)
	}
	got, _ = h.RecallPrev()
	if got != "b" {
		t.Fatalf("expected %q after second recall, got %q", "b", got)
	}
}

func TestHistoryResetCursor(t *testing.T) {
	h := NewHistory()
	h.Append("a")
	h.Append("b")

	if _, ok := h.RecallPrev(); !ok {
		t.Fatalf("expected a recall result")
	}
	h.ResetCursor()

	got, _ := h.RecallPrev()
	if got != "b" {
		t.Fatalf("expected recall to restart at newest entry %q, got %q", "b", got)
	}
}

func TestHistoryIsEmpty(t *testing.T) {
	h := NewHistory()
	if !h.IsEmpty() {
		t.Fatalf("expected new history to be empty")
	}
	h.Append("x")
	if h.IsEmpty() {
		t.Fatalf("expected non-empty history after Append")
	}
}

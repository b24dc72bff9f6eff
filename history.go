/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

// History is a bounded, ordered list of past input lines with a
// navigation cursor for up/down recall. Entries are stored oldest
// first; Cursor is 0 when no recall is in progress, and 1..=len(entries)
// while recalling, where 1 selects the newest entry and len(entries)
// selects the oldest.
//
// Adjacent duplicates (an Append identical to the immediately previous
// entry) are collapsed; History makes no attempt to dedup across
// distance.
type History struct {
	entries []string
	maxSize int
	cursor  int
}

// NewHistory returns a History bounded by HistorySizeMax.
func NewHistory() *History {
	return &History{maxSize: HistorySizeMax}
}

// Append pushes entry as the newest entry, evicting the oldest if the
// bound is exceeded, and resets the navigation cursor.
func (h *History) Append(entry string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		h.cursor = 0
		return
	}
	h.entries = append(h.entries, entry)
	if over := len(h.entries) - h.maxSize; over > 0 {
		h.entries = h.entries[over:]
	}
	h.cursor = 0
}

// SetMaxSize truncates the entries to the n newest and applies the new
// bound to future appends.
func (h *History) SetMaxSize(n int) {
	h.maxSize = n
	if over := len(h.entries) - n; over > 0 {
		h.entries = h.entries[over:]
	}
}

// RecallPrev moves the navigation cursor one step toward older entries
// and returns the entry it now points at, or ("", false) if there is no
// history.
func (h *History) RecallPrev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	return h.entries[len(h.entries)-h.cursor], true
}

// RecallNext moves the navigation cursor one step toward newer entries
// and returns the entry it now points at, or ("", false) once the
// cursor returns to "no selection".
func (h *History) RecallNext() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	if h.cursor == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-h.cursor], true
}

// ResetCursor cancels any in-progress recall. Called whenever the user
// types a character or submits the line.
func (h *History) ResetCursor() {
	h.cursor = 0
}

// Len reports the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// IsEmpty reports whether there are no stored entries.
func (h *History) IsEmpty() bool { return len(h.entries) == 0 }

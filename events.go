/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import "context"

// SpecialKey identifies a non-printable key the editor interprets.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyCtrlC
	KeyCtrlD
	KeyCtrlA
	KeyCtrlE
	KeyCtrlL
)

// Event is one item produced by an InputStream. Exactly one of Special,
// Char, or Resize is meaningful, selected by Kind.
type Event struct {
	Kind    EventKind
	Char    rune
	Special SpecialKey
	Cols    int
	Rows    int
}

// EventKind discriminates the payload carried by an Event.
type EventKind int

const (
	EventChar EventKind = iota
	EventSpecial
	EventResize
)

// CharEvent constructs a plain character event (no modifier keys).
func CharEvent(c rune) Event { return Event{Kind: EventChar, Char: c} }

// SpecialEvent constructs a named-key event.
func SpecialEvent(k SpecialKey) Event { return Event{Kind: EventSpecial, Special: k} }

// ResizeEvent constructs a terminal-resize event.
func ResizeEvent(cols, rows int) Event {
	return Event{Kind: EventResize, Cols: cols, Rows: rows}
}

// InputStream is the asynchronous source of terminal events consumed by
// Readline.ReadLine. A real implementation (see NewStdInputStream) reads
// and decodes raw bytes from a terminal in raw mode; tests substitute a
// fake that replays a fixed event sequence.
//
// Next returns (ev, nil, true) when ev is a real event. It returns (zero
// Event, nil, false) for a spurious wakeup (e.g. ctx was cancelled with
// no event pending) that the caller should simply retry. A non-nil err
// always means the stream has failed permanently; the caller stops
// calling Next after that.
type InputStream interface {
	// Next blocks until an event, an error, or ctx cancellation.
	Next(ctx context.Context) (ev Event, err error, ok bool)
}

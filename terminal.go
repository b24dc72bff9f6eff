/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CommandKind names the queued terminal commands a RawTerminal must
// support, per the {queue-command, write, flush} capability set.
type CommandKind int

const (
	CmdEnableLineWrap CommandKind = iota
	CmdMoveToColumn
	CmdMoveUp
	CmdMoveDown
	CmdClearToEndOfScreen
	CmdClearLine
	CmdClearScreen
	CmdSetColor
	CmdResetColor
)

// Command is a single queued terminal directive. N carries a row/column
// count for the Move* commands; Color carries the target color for
// CmdSetColor.
type Command struct {
	Kind  CommandKind
	N     int
	Color color.Attribute
}

// RawTerminal is the byte sink the editor writes to. Implementations
// must support queueing cursor/color commands in addition to plain
// writes, and a Flush that makes queued output visible. Bit-exact
// output is not part of the contract; the editor's visual invariants
// are.
type RawTerminal interface {
	io.Writer
	QueueCommand(cmd Command) error
	Flush() error
}

// StdTerminal is a RawTerminal backed by a real terminal file descriptor,
// using golang.org/x/term for raw-mode control and sizing and
// github.com/fatih/color for the color commands. It queues commands in
// a buffer and emits them on Flush, so a redraw reaches the tty as one
// write instead of many.
type StdTerminal struct {
	mu    sync.Mutex
	f     *os.File
	buf   []byte
	state *term.State
}

// NewStdTerminal wraps f (typically os.Stdout) as a RawTerminal. Raw
// mode is not enabled here, so construction itself never mutates
// terminal state; EnableRawMode turns it on (New calls it).
func NewStdTerminal(f *os.File) *StdTerminal {
	return &StdTerminal{f: f}
}

// EnableRawMode puts the underlying file descriptor into raw mode and
// remembers the previous state so DisableRawMode can restore it.
func (t *StdTerminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.f.Fd()))
	if err != nil {
		return fmt.Errorf("readline: enable raw mode: %w", err)
	}
	t.state = state
	return nil
}

// DisableRawMode restores the terminal to the state captured by
// EnableRawMode. It is a no-op if raw mode was never enabled. Errors are
// intentionally swallowed by callers that invoke this from Drop-style
// cleanup; DisableRawMode itself still reports them.
func (t *StdTerminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == nil {
		return nil
	}
	err := term.Restore(int(t.f.Fd()), t.state)
	t.state = nil
	return err
}

// Size returns the current terminal size as (cols, rows).
func (t *StdTerminal) Size() (cols int, rows int, err error) {
	return term.GetSize(int(t.f.Fd()))
}

// Write implements io.Writer by buffering bytes until Flush.
func (t *StdTerminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	return len(p), nil
}

// QueueCommand translates cmd into the corresponding ANSI escape
// sequence and appends it to the pending buffer.
func (t *StdTerminal) QueueCommand(cmd Command) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch cmd.Kind {
	case CmdEnableLineWrap:
		t.buf = append(t.buf, "\x1b[?7h"...)
	case CmdMoveToColumn:
		t.buf = append(t.buf, fmt.Sprintf("\x1b[%dG", cmd.N+1)...)
	case CmdMoveUp:
		if cmd.N > 0 {
			t.buf = append(t.buf, fmt.Sprintf("\x1b[%dA", cmd.N)...)
		}
	case CmdMoveDown:
		if cmd.N > 0 {
			t.buf = append(t.buf, fmt.Sprintf("\x1b[%dB", cmd.N)...)
		}
	case CmdClearToEndOfScreen:
		t.buf = append(t.buf, "\x1b[J"...)
	case CmdClearScreen:
		t.buf = append(t.buf, "\x1b[2J\x1b[H"...)
	case CmdClearLine:
		t.buf = append(t.buf, "\x1b[K"...)
	case CmdSetColor:
		t.buf = append(t.buf, fmt.Sprintf("\x1b[%dm", int(cmd.Color))...)
	case CmdResetColor:
		t.buf = append(t.buf, "\x1b[0m"...)
	default:
		return fmt.Errorf("readline: unknown command kind %d", cmd.Kind)
	}
	return nil
}

// Flush writes the pending buffer to the underlying file and clears it.
func (t *StdTerminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.buf) == 0 {
		return nil
	}
	_, err := t.f.Write(t.buf)
	t.buf = t.buf[:0]
	return err
}

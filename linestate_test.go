/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTerminal is a hand-maintained RawTerminal double: it records every
// queued command and write in order instead of reconstructing an actual
// screen, which is enough to assert on the editor's redraw behavior
// without a real tty.
type fakeTerminal struct {
	cmds    []Command
	writes  [][]byte
	flushes int
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	cp := append([]byte(nil), p...)
	f.writes = append(f.writes, cp)
	return len(p), nil
}

func (f *fakeTerminal) QueueCommand(cmd Command) error {
	f.cmds = append(f.cmds, cmd)
	return nil
}

func (f *fakeTerminal) Flush() error {
	f.flushes++
	return nil
}

func (f *fakeTerminal) allWritten() []byte {
	var buf bytes.Buffer
	for _, w := range f.writes {
		buf.Write(w)
	}
	return buf.Bytes()
}

func newTestLineState() (*LineState, *fakeTerminal) {
	return NewLineState("> ", 80, 24), &fakeTerminal{}
}

func TestLineStateHandleCharInsertsAndFlushes(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()

	ev, ok, err := l.HandleEvent(CharEvent('a'), term, hist)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, ReadlineEvent{}, ev)
	require.Equal(t, "a", l.Line())
	require.Equal(t, 1, term.flushes)
}

func TestLineStateBackspaceDeletesBeforeCursor(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()

	for _, c := range "abc" {
		_, _, err := l.HandleEvent(CharEvent(c), term, hist)
		require.NoError(t, err)
	}
	_, _, err := l.HandleEvent(SpecialEvent(KeyBackspace), term, hist)
	require.NoError(t, err)
	require.Equal(t, "ab", l.Line())
}

func TestLineStateEnterReturnsLineEventAndEchoesByDefault(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()

	for _, c := range "abc" {
		_, _, err := l.HandleEvent(CharEvent(c), term, hist)
		require.NoError(t, err)
	}
	ev, ok, err := l.HandleEvent(SpecialEvent(KeyEnter), term, hist)
	require.NoError(t, err)
	require.True(t, ok)
	line, isLine := ev.Line()
	require.True(t, isLine)
	require.Equal(t, "abc", line)
	require.Equal(t, "", l.Line())
	require.Contains(t, string(term.allWritten()), "> abc\r\n")
}

func TestLineStateEnterSuppressedWhenShouldPrintLineOnEnterFalse(t *testing.T) {
	l, term := newTestLineState()
	l.SetShouldPrintLineOn(false, true)
	hist := NewHistory()

	_, _, err := l.HandleEvent(CharEvent('x'), term, hist)
	require.NoError(t, err)
	before := len(term.writes)

	ev, ok, err := l.HandleEvent(SpecialEvent(KeyEnter), term, hist)
	require.NoError(t, err)
	require.True(t, ok)
	line, isLine := ev.Line()
	require.True(t, isLine)
	require.Equal(t, "x", line)
	require.Equal(t, before, len(term.writes), "no extra writes expected when echo is suppressed")
}

func TestLineStateCtrlCReturnsInterrupted(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()

	_, _, err := l.HandleEvent(CharEvent('z'), term, hist)
	require.NoError(t, err)

	ev, ok, err := l.HandleEvent(SpecialEvent(KeyCtrlC), term, hist)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, ev.IsInterrupted())
	require.Equal(t, "", l.Line())
}

func TestLineStateCtrlDOnEmptyLineReturnsEOF(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()

	ev, ok, err := l.HandleEvent(SpecialEvent(KeyCtrlD), term, hist)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, ev.IsEOF())
}

func TestLineStateCtrlDOnNonEmptyLineDeletesAtCursor(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()

	for _, c := range "ab" {
		_, _, err := l.HandleEvent(CharEvent(c), term, hist)
		require.NoError(t, err)
	}
	_, _, err := l.HandleEvent(SpecialEvent(KeyHome), term, hist)
	require.NoError(t, err)

	ev, ok, err := l.HandleEvent(SpecialEvent(KeyCtrlD), term, hist)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, ev.IsEOF())
	require.Equal(t, "b", l.Line())
}

func TestLineStateHistoryRecallSetsLine(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()
	hist.Append("first")
	hist.Append("second")

	_, _, err := l.HandleEvent(SpecialEvent(KeyUp), term, hist)
	require.NoError(t, err)
	require.Equal(t, "second", l.Line())

	_, _, err = l.HandleEvent(SpecialEvent(KeyUp), term, hist)
	require.NoError(t, err)
	require.Equal(t, "first", l.Line())

	_, _, err = l.HandleEvent(SpecialEvent(KeyDown), term, hist)
	require.NoError(t, err)
	require.Equal(t, "second", l.Line())
}

func TestLineStateResizeUpdatesDimensionsAndReturnsEvent(t *testing.T) {
	l, term := newTestLineState()
	hist := NewHistory()

	ev, ok, err := l.HandleEvent(ResizeEvent(100, 40), term, hist)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, ev.IsResized())
	require.Equal(t, 100, l.cols)
	require.Equal(t, 40, l.rows)
}

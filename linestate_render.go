/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import (
	"io"

	"github.com/mattn/go-runewidth"
)

// widthUpToCursor returns the on-screen column width of the prompt plus
// the portion of line before cursorPos. cursorPos itself stays a rune
// index; only the screen column is width-aware, so double-width runes
// still land the terminal cursor correctly.
func (l *LineState) widthUpToCursor() int {
	return runewidth.StringWidth(l.prompt) + runewidth.StringWidth(string(l.line[:l.cursorPos]))
}

func (l *LineState) totalWidth() int {
	return runewidth.StringWidth(l.prompt) + runewidth.StringWidth(string(l.line))
}

// effectiveCols returns the cached terminal width, falling back to a
// sane default before the first resize event has been observed.
func (l *LineState) effectiveCols() int {
	if l.cols <= 0 {
		return 80
	}
	return l.cols
}

// rowsFor returns how many terminal rows a region of on-screen width
// wide occupies, given the cached column count.
func (l *LineState) rowsFor(width int) int {
	if width <= 0 {
		return 1
	}
	cols := l.effectiveCols()
	return (width-1)/cols + 1
}

// cursorRowCol returns the (row, col) of cursorPos relative to the top
// row of the prompt region.
func (l *LineState) cursorRowCol() (row, col int) {
	width := l.widthUpToCursor()
	cols := l.effectiveCols()
	return width / cols, width % cols
}

// render writes the prompt and current line, then positions the cursor
// at cursorPos. It is used at construction and after any full redraw.
func (l *LineState) render(sink RawTerminal) error {
	if _, err := io.WriteString(sink, l.prompt); err != nil {
		return err
	}
	if _, err := io.WriteString(sink, string(l.line)); err != nil {
		return err
	}
	return l.positionCursor(sink)
}

// positionCursor moves the physical cursor, currently sitting at the
// natural end of what render just wrote, back to cursorPos, and
// remembers the row it lands on so a later eraseRegion knows how far up
// to move.
func (l *LineState) positionCursor(sink RawTerminal) error {
	totalRows := l.rowsFor(l.totalWidth())
	cursorRow, cursorCol := l.cursorRowCol()

	if up := (totalRows - 1) - cursorRow; up > 0 {
		if err := sink.QueueCommand(Command{Kind: CmdMoveUp, N: up}); err != nil {
			return err
		}
	}
	if err := sink.QueueCommand(Command{Kind: CmdMoveToColumn, N: cursorCol}); err != nil {
		return err
	}
	l.lastCursorRow = cursorRow
	return nil
}

// eraseRegion moves the cursor from wherever the last render left it
// back to the top-left of the prompt region and clears everything below,
// so neither a stale prompt nor stale input survives a redraw.
func (l *LineState) eraseRegion(sink RawTerminal) error {
	if l.lastCursorRow > 0 {
		if err := sink.QueueCommand(Command{Kind: CmdMoveUp, N: l.lastCursorRow}); err != nil {
			return err
		}
	}
	if err := sink.QueueCommand(Command{Kind: CmdMoveToColumn, N: 0}); err != nil {
		return err
	}
	return sink.QueueCommand(Command{Kind: CmdClearToEndOfScreen})
}

// ClearAndRender erases the prompt region and redraws it from scratch.
func (l *LineState) ClearAndRender(sink RawTerminal) error {
	if err := l.eraseRegion(sink); err != nil {
		return err
	}
	return l.render(sink)
}

// PrintData erases the prompt region, writes data verbatim (adding a
// newline reset if data doesn't already end with one so subsequent
// output starts at column 0), then re-renders the prompt and current
// line below it. The terminal cursor ends back at cursorPos.
func (l *LineState) PrintData(data []byte, sink RawTerminal) error {
	if err := l.eraseRegion(sink); err != nil {
		return err
	}
	if _, err := sink.Write(data); err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		if _, err := sink.Write([]byte("\r\n")); err != nil {
			return err
		}
	}
	return l.render(sink)
}

// UpdatePrompt replaces the prompt string and redraws.
func (l *LineState) UpdatePrompt(prompt string, sink RawTerminal) error {
	if err := l.eraseRegion(sink); err != nil {
		return err
	}
	l.prompt = prompt
	return l.render(sink)
}

// ClearScreenAndRender wipes the entire terminal screen (not just the
// prompt region) and redraws the prompt at the top, used for Ctrl-L and
// Readline.Clear.
func (l *LineState) ClearScreenAndRender(sink RawTerminal) error {
	if err := sink.QueueCommand(Command{Kind: CmdClearScreen}); err != nil {
		return err
	}
	l.lastCursorRow = 0
	return l.render(sink)
}

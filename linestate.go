/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

// LineState is the editor's view model: the current prompt and input
// buffer, the cached terminal size, and the two "print the line back to
// the caller" toggles. It renders itself onto a RawTerminal and
// interprets one Event at a time into an optional ReadlineEvent.
//
// cursorPos is a rune index into line, not a byte index, so it stays
// meaningful for multi-byte UTF-8 input without extra bookkeeping;
// on-screen column math accounts separately for display width (see
// widthUpToCursor).
type LineState struct {
	prompt string
	line   []rune

	cursorPos int
	cols      int
	rows      int

	shouldPrintLineOnEnter bool
	shouldPrintLineOnCtrlC bool

	// lastCursorRow is the row (relative to the top of the prompt
	// region) the cursor landed on after the most recent render. It
	// lets eraseRegion return to the top without re-deriving it.
	lastCursorRow int
}

// NewLineState constructs a LineState with an empty input buffer.
func NewLineState(prompt string, cols, rows int) *LineState {
	return &LineState{
		prompt:                 prompt,
		cols:                   cols,
		rows:                   rows,
		shouldPrintLineOnEnter: true,
		shouldPrintLineOnCtrlC: true,
	}
}

// Line returns the current input buffer.
func (l *LineState) Line() string { return string(l.line) }

// CursorPos returns the current rune-index cursor position.
func (l *LineState) CursorPos() int { return l.cursorPos }

// SetShouldPrintLineOn toggles whether Enter/Ctrl-C leave the prompt and
// input visible on screen once handled.
func (l *LineState) SetShouldPrintLineOn(enter, ctrlC bool) {
	l.shouldPrintLineOnEnter = enter
	l.shouldPrintLineOnCtrlC = ctrlC
}

func (l *LineState) insertRune(r rune) {
	if l.cursorPos < 0 {
		l.cursorPos = 0
	}
	if l.cursorPos > len(l.line) {
		l.cursorPos = len(l.line)
	}
	l.line = append(l.line[:l.cursorPos], append([]rune{r}, l.line[l.cursorPos:]...)...)
	l.cursorPos++
}

func (l *LineState) deleteBefore() {
	if l.cursorPos <= 0 {
		return
	}
	l.line = append(l.line[:l.cursorPos-1], l.line[l.cursorPos:]...)
	l.cursorPos--
}

func (l *LineState) deleteAt() {
	if l.cursorPos >= len(l.line) {
		return
	}
	l.line = append(l.line[:l.cursorPos], l.line[l.cursorPos+1:]...)
}

func (l *LineState) setLine(s string) {
	l.line = []rune(s)
	l.cursorPos = len(l.line)
}

func (l *LineState) takeLine() string {
	s := string(l.line)
	l.line = nil
	l.cursorPos = 0
	return s
}

// HandleEvent advances the editor by one Event. It returns
// (event, true, nil) when ReadLine should return that event to its
// caller, (zero, false, nil) for events handled purely internally (most
// keystrokes), and a non-nil error only if writing to sink failed.
// Every path flushes sink before returning.
func (l *LineState) HandleEvent(ev Event, sink RawTerminal, hist *History) (ReadlineEvent, bool, error) {
	readlineEv, ok, err := l.dispatch(ev, sink, hist)
	if err != nil {
		return ReadlineEvent{}, false, err
	}
	if ferr := sink.Flush(); ferr != nil {
		return ReadlineEvent{}, false, ferr
	}
	return readlineEv, ok, nil
}

func (l *LineState) dispatch(ev Event, sink RawTerminal, hist *History) (ReadlineEvent, bool, error) {
	switch ev.Kind {
	case EventChar:
		return l.handleChar(ev.Char, sink, hist)
	case EventSpecial:
		return l.handleSpecial(ev.Special, sink, hist)
	case EventResize:
		l.cols, l.rows = ev.Cols, ev.Rows
		if err := l.ClearAndRender(sink); err != nil {
			return ReadlineEvent{}, false, err
		}
		return resizedEvent(), true, nil
	default:
		return ReadlineEvent{}, false, nil
	}
}

func (l *LineState) handleChar(c rune, sink RawTerminal, hist *History) (ReadlineEvent, bool, error) {
	l.insertRune(c)
	hist.ResetCursor()
	if err := l.redraw(sink); err != nil {
		return ReadlineEvent{}, false, err
	}
	return ReadlineEvent{}, false, nil
}

func (l *LineState) handleSpecial(k SpecialKey, sink RawTerminal, hist *History) (ReadlineEvent, bool, error) {
	switch k {
	case KeyBackspace:
		l.deleteBefore()
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyDelete:
		l.deleteAt()
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyLeft:
		if l.cursorPos > 0 {
			l.cursorPos--
		}
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyRight:
		if l.cursorPos < len(l.line) {
			l.cursorPos++
		}
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyHome, KeyCtrlA:
		l.cursorPos = 0
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyEnd, KeyCtrlE:
		l.cursorPos = len(l.line)
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyUp:
		if entry, ok := hist.RecallPrev(); ok {
			l.setLine(entry)
		}
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyDown:
		entry, _ := hist.RecallNext()
		l.setLine(entry)
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyEnter:
		return l.handleEnter(sink)

	case KeyCtrlC:
		return l.handleCtrlC(sink)

	case KeyCtrlD:
		if len(l.line) == 0 {
			return eofEvent(), true, nil
		}
		l.deleteAt()
		return ReadlineEvent{}, false, l.redraw(sink)

	case KeyCtrlL:
		return ReadlineEvent{}, false, l.ClearScreenAndRender(sink)

	default:
		return ReadlineEvent{}, false, nil
	}
}

func (l *LineState) handleEnter(sink RawTerminal) (ReadlineEvent, bool, error) {
	taken := l.takeLine()
	if l.shouldPrintLineOnEnter {
		if err := l.eraseRegion(sink); err != nil {
			return ReadlineEvent{}, false, err
		}
		if _, err := sink.Write([]byte(l.prompt + taken + "\r\n")); err != nil {
			return ReadlineEvent{}, false, err
		}
		l.lastCursorRow = 0
		if err := l.render(sink); err != nil {
			return ReadlineEvent{}, false, err
		}
	}
	return lineEvent(taken), true, nil
}

func (l *LineState) handleCtrlC(sink RawTerminal) (ReadlineEvent, bool, error) {
	taken := l.takeLine()
	if l.shouldPrintLineOnCtrlC {
		if err := l.eraseRegion(sink); err != nil {
			return ReadlineEvent{}, false, err
		}
		if _, err := sink.Write([]byte(l.prompt + taken + "\r\n")); err != nil {
			return ReadlineEvent{}, false, err
		}
		l.lastCursorRow = 0
		if err := l.render(sink); err != nil {
			return ReadlineEvent{}, false, err
		}
	}
	return interruptedEvent(), true, nil
}

func (l *LineState) redraw(sink RawTerminal) error {
	if err := l.eraseRegion(sink); err != nil {
		return err
	}
	return l.render(sink)
}

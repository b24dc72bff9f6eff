/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import (
	"context"
	"io"
	"unicode/utf8"
)

// StdInputStream decodes raw bytes read from a terminal in raw mode
// (see StdTerminal.EnableRawMode) into Events: control characters,
// arrow/navigation keys sent as CSI escape sequences, and UTF-8 runes.
// It is the concrete InputStream a real cmd/ program constructs; the
// Readline tests use a fixed-sequence fake instead (see fakeInputStream
// in readline_test.go).
type StdInputStream struct {
	raw chan byteResult
}

type byteResult struct {
	b   byte
	err error
}

// NewStdInputStream starts a background goroutine reading single bytes
// from r (typically os.Stdin once raw mode is enabled) and returns a
// stream that decodes them. The goroutine exits once r.Read returns an
// error (commonly io.EOF when the fd is closed).
func NewStdInputStream(r io.Reader) *StdInputStream {
	s := &StdInputStream{raw: make(chan byteResult, 16)}
	go s.pump(r)
	return s
}

func (s *StdInputStream) pump(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.raw <- byteResult{b: buf[0]}
		}
		if err != nil {
			s.raw <- byteResult{err: err}
			return
		}
	}
}

func (s *StdInputStream) readByte(ctx context.Context) (byte, error, bool) {
	select {
	case res := <-s.raw:
		if res.err != nil {
			return 0, res.err, false
		}
		return res.b, nil, true
	case <-ctx.Done():
		return 0, nil, false
	}
}

// Next implements InputStream by decoding one key or rune at a time,
// assembling multi-byte escape sequences and UTF-8 runes from
// individual bytes as they arrive.
func (s *StdInputStream) Next(ctx context.Context) (Event, error, bool) {
	b, err, ok := s.readByte(ctx)
	if err != nil {
		return Event{}, err, false
	}
	if !ok {
		return Event{}, nil, false
	}

	switch b {
	case 0x01:
		return SpecialEvent(KeyCtrlA), nil, true
	case 0x03:
		return SpecialEvent(KeyCtrlC), nil, true
	case 0x04:
		return SpecialEvent(KeyCtrlD), nil, true
	case 0x05:
		return SpecialEvent(KeyCtrlE), nil, true
	case 0x0c:
		return SpecialEvent(KeyCtrlL), nil, true
	case '\r', '\n':
		return SpecialEvent(KeyEnter), nil, true
	case 0x7f, 0x08:
		return SpecialEvent(KeyBackspace), nil, true
	case 0x1b:
		return s.decodeEscape(ctx)
	}

	if b < 0x80 {
		return CharEvent(rune(b)), nil, true
	}
	return s.decodeRune(ctx, b)
}

// decodeEscape handles ESC-prefixed sequences: "ESC [ <final>" for the
// arrow/navigation keys and "ESC [ 3 ~" for Delete. Raw mode delivers
// the whole sequence back to back, so no timeout is needed to tell a
// bare ESC apart; an unrecognized sequence is reported as a spurious
// wakeup and skipped.
func (s *StdInputStream) decodeEscape(ctx context.Context) (Event, error, bool) {
	b1, err, ok := s.readByte(ctx)
	if err != nil {
		return Event{}, err, false
	}
	if !ok || b1 != '[' {
		return Event{}, nil, false
	}

	b2, err, ok := s.readByte(ctx)
	if err != nil {
		return Event{}, err, false
	}
	if !ok {
		return Event{}, nil, false
	}

	switch b2 {
	case 'A':
		return SpecialEvent(KeyUp), nil, true
	case 'B':
		return SpecialEvent(KeyDown), nil, true
	case 'C':
		return SpecialEvent(KeyRight), nil, true
	case 'D':
		return SpecialEvent(KeyLeft), nil, true
	case 'H':
		return SpecialEvent(KeyHome), nil, true
	case 'F':
		return SpecialEvent(KeyEnd), nil, true
	case '3':
		// Delete is "ESC [ 3 ~"; consume the trailing '~'.
		if _, err, ok := s.readByte(ctx); err != nil {
			return Event{}, err, false
		} else if !ok {
			return Event{}, nil, false
		}
		return SpecialEvent(KeyDelete), nil, true
	default:
		return Event{}, nil, false
	}
}

// decodeRune assembles a multi-byte UTF-8 rune starting with lead.
func (s *StdInputStream) decodeRune(ctx context.Context, lead byte) (Event, error, bool) {
	buf := []byte{lead}
	for {
		r, size := utf8.DecodeRune(buf)
		if r != utf8.RuneError || size > 1 {
			return CharEvent(r), nil, true
		}
		if len(buf) >= utf8.UTFMax {
			return CharEvent(utf8.RuneError), nil, true
		}
		b, err, ok := s.readByte(ctx)
		if err != nil {
			return Event{}, err, false
		}
		if !ok {
			return Event{}, nil, false
		}
		buf = append(buf, b)
	}
}

/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */

// Package readline: see doc.go for the package-level overview.
//
// Mental model: Readline is a replacement for bufio.Scanner's Scan/Text
// pair that tolerates other goroutines concurrently writing to the same
// terminal (via SharedWriter), and that can be paused so a spinner-like
// collaborator can own the screen for a while.
//
// When you construct a Readline, a goroutine is started
// (lineMonitor.run) that watches the line channel, and processes any
// LineControlSignal sent to it by SharedWriter handles. This is what
// lets the engine be paused and resumed, and lets queued output be
// flushed to the terminal without the caller of ReadLine doing anything.
// Close (or letting the instance go out of scope with a deferred Close)
// stops that goroutine.
package readline

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Sizer is implemented by RawTerminal values that can report their
// current size. StdTerminal implements it; test fakes may skip it, in
// which case New falls back to a default of 80x24.
type Sizer interface {
	Size() (cols, rows int, err error)
}

// RawModeToggler is implemented by RawTerminal values that support
// enabling/disabling raw input mode. StdTerminal implements it; test
// fakes typically don't need to, since they never touch a real tty.
type RawModeToggler interface {
	EnableRawMode() error
	DisableRawMode() error
}

// Option configures a Readline at construction time.
type Option func(*Readline)

// WithLogger directs the engine's lifecycle logging (monitor start,
// pause, resume, shutdown) at l instead of discarding it.
func WithLogger(l *log.Logger) Option {
	return func(r *Readline) { r.logger = l }
}

// WithHistoryMaxSize overrides HistorySizeMax for this instance.
func WithHistoryMaxSize(n int) Option {
	return func(r *Readline) { r.history.SetMaxSize(n) }
}

const historyChanCapacity = 4096

// Readline is the state machine coordinating a raw-mode terminal, a
// stream of input events, a multi-producer channel of print requests
// from background writers, a pause/resume flag with a buffered replay
// queue, a history store, and a shutdown signal.
type Readline struct {
	state *engineState

	input     InputStream
	inputCtx  context.Context
	cancelIn  context.CancelFunc
	inputChan chan inputResult

	history   *History
	historyCh chan string

	sc       *sharedChannel
	shutdown chan struct{}
	closeOne sync.Once

	logger *log.Logger
}

type inputResult struct {
	ev  Event
	err error
}

// New enables raw mode (if the terminal supports it), builds all state,
// spawns the LineMonitor task, renders the prompt once, and returns the
// engine plus one SharedWriter handle.
func New(prompt string, term RawTerminal, input InputStream, opts ...Option) (*Readline, *SharedWriter, error) {
	if toggler, ok := term.(RawModeToggler); ok {
		if err := toggler.EnableRawMode(); err != nil {
			return nil, nil, ioErr(err)
		}
	}

	cols, rows := 80, 24
	if sz, ok := term.(Sizer); ok {
		if c, r, err := sz.Size(); err == nil {
			cols, rows = c, r
		}
	}

	line := NewLineState(prompt, cols, rows)
	state := newEngineState(line, term)

	sc := newSharedChannel(ChannelCapacity)
	shutdown := make(chan struct{})
	inputCtx, cancelIn := context.WithCancel(context.Background())

	r := &Readline{
		state:     state,
		input:     input,
		inputCtx:  inputCtx,
		cancelIn:  cancelIn,
		inputChan: make(chan inputResult, 1),
		history:   NewHistory(),
		historyCh: make(chan string, historyChanCapacity),
		sc:        sc,
		shutdown:  shutdown,
	}
	for _, opt := range opts {
		opt(r)
	}

	monitor := &lineMonitor{sc: sc, state: state, shutdown: shutdown, logger: r.logger}
	go monitor.run()
	go r.pumpInput()
	r.logf("readline: engine started, cols=%d rows=%d", cols, rows)

	state.mu.Lock()
	err := line.render(term)
	if err == nil {
		err = term.QueueCommand(Command{Kind: CmdEnableLineWrap})
	}
	if err == nil {
		err = term.Flush()
	}
	state.mu.Unlock()
	if err != nil {
		r.Close()
		return nil, nil, ioErr(err)
	}

	writer := newSharedWriter(sc)
	return r, writer, nil
}

// pumpInput continuously calls input.Next and forwards results to
// inputChan, so ReadLine's select loop can multiplex it alongside the
// history channel and shutdown. It stops once shutdown fires.
func (r *Readline) pumpInput() {
	for {
		ev, err, ok := r.input.Next(r.inputCtx)
		if !ok && err == nil {
			select {
			case <-r.shutdown:
				return
			default:
				continue
			}
		}
		select {
		case r.inputChan <- inputResult{ev: ev, err: err}:
		case <-r.shutdown:
			return
		}
		if err != nil {
			return
		}
	}
}

func (r *Readline) logf(format string, args ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}

// ReadLine is the polling loop that multiplexes input events, history
// updates, and shutdown. It returns once the user completes a line,
// triggers EOF/Interrupted, resizes the terminal, an I/O error occurs,
// every SharedWriter has been closed, or the engine is closed.
func (r *Readline) ReadLine() (ReadlineEvent, error) {
	for {
		// Drain pending history entries before touching the next
		// keystroke, so a line completed (or added via AddHistoryEntry)
		// a moment ago is already recallable when an Up arrives.
		for {
			select {
			case entry := <-r.historyCh:
				r.appendHistory(entry)
				continue
			default:
			}
			break
		}

		select {
		case res := <-r.inputChan:
			if res.err != nil {
				return ReadlineEvent{}, ioErr(res.err)
			}

			r.state.mu.Lock()
			readlineEv, ok, err := r.state.line.HandleEvent(res.ev, r.state.term, r.history)
			r.state.mu.Unlock()
			if err != nil {
				return ReadlineEvent{}, ioErr(err)
			}
			if !ok {
				continue
			}
			if s, isLine := readlineEv.Line(); isLine {
				select {
				case r.historyCh <- s:
				default:
					// The channel buffer is generous but finite;
					// appending directly when it is momentarily full
					// beats blocking here or dropping the entry.
					r.appendHistory(s)
				}
			}
			return readlineEv, nil

		case entry := <-r.historyCh:
			r.appendHistory(entry)

		case <-r.sc.closedNotify:
			return ReadlineEvent{}, closedErr()

		case <-r.shutdown:
			return ReadlineEvent{}, closedErr()
		}
	}
}

// UpdatePrompt changes the prompt string and redraws.
func (r *Readline) UpdatePrompt(prompt string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if err := r.state.line.UpdatePrompt(prompt, r.state.term); err != nil {
		return ioErr(err)
	}
	return ioErr(r.state.term.Flush())
}

// Clear clears the whole screen and redraws the prompt at the top.
func (r *Readline) Clear() error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if err := r.state.line.ClearScreenAndRender(r.state.term); err != nil {
		return ioErr(err)
	}
	return ioErr(r.state.term.Flush())
}

// appendHistory adds one entry under the engine mutex. History has no
// lock of its own; every access goes through state.mu, either here or
// inside the HandleEvent critical section.
func (r *Readline) appendHistory(entry string) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.history.Append(entry)
}

// SetMaxHistory overrides the bound on stored history entries. The
// default is HistorySizeMax.
func (r *Readline) SetMaxHistory(n int) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.history.SetMaxSize(n)
}

// SetShouldPrintLineOn controls whether the prompt and input remain
// visible on screen after Enter/Ctrl-C. Both default to true.
func (r *Readline) SetShouldPrintLineOn(enter, ctrlC bool) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.line.SetShouldPrintLineOn(enter, ctrlC)
}

// AddHistoryEntry appends entry to history from any goroutine. It is
// delivered over the same channel that completed lines use, so History
// itself never needs a lock.
func (r *Readline) AddHistoryEntry(entry string) {
	select {
	case r.historyCh <- entry:
	case <-r.shutdown:
	}
}

// Flush forces a drain of any buffered output without waiting for a
// background writer to trigger it.
func (r *Readline) Flush() error {
	return ioErr(r.sc.send(flushSignal("engine")))
}

// Close signals shutdown: the LineMonitor task and any in-flight
// ReadLine call unblock and exit, and the terminal's raw mode (if it
// was enabled) is disabled. It is safe to call more than once.
func (r *Readline) Close() error {
	var err error
	r.closeOne.Do(func() {
		r.logf("readline: engine closing")
		close(r.shutdown)
		r.cancelIn()
		if toggler, ok := r.state.term.(RawModeToggler); ok {
			err = toggler.DisableRawMode()
		}
	})
	if err != nil {
		return fmt.Errorf("readline: disable raw mode: %w", err)
	}
	return nil
}

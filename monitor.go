/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import (
	"log"
	"sync"
)

// engineState bundles the objects the LineMonitor task and Readline's
// ReadLine loop both touch: the paused flag, the PauseBuffer, the
// LineState, and the raw terminal. One mutex guards the whole surface:
// every operation that needs more than one of these needs all of them
// together, so splitting them into per-field locks would only introduce
// an ordering hazard for no concurrency gain.
type engineState struct {
	mu     sync.Mutex
	paused bool
	buf    *PauseBuffer
	line   *LineState
	term   RawTerminal
}

func newEngineState(line *LineState, term RawTerminal) *engineState {
	return &engineState{
		buf:  NewPauseBuffer(),
		line: line,
		term: term,
	}
}

// lineMonitor is the long-running task spawned by New. It consumes
// LineControlSignal values from the bounded channel and mutates pause
// state / flushes output.
type lineMonitor struct {
	sc       *sharedChannel
	state    *engineState
	shutdown <-chan struct{}
	logger   *log.Logger
}

func (m *lineMonitor) logf(format string, args ...any) {
	if m.logger == nil {
		return
	}
	m.logger.Printf(format, args...)
}

// run is the monitor's select loop. Every branch does its work inside a
// short synchronous critical section; state.mu is never held across a
// channel operation.
func (m *lineMonitor) run() {
	m.logf("readline: monitor task started")
	for {
		select {
		case sig := <-m.sc.ch:
			if err := m.process(sig); err != nil {
				m.logf("readline: monitor task exiting after sink error: %v", err)
				return
			}

		case <-m.sc.closedNotify:
			m.logf("readline: monitor task exiting, all writers closed")
			return

		case <-m.shutdown:
			m.logf("readline: monitor task exiting on shutdown")
			return
		}
	}
}

func (m *lineMonitor) process(sig LineControlSignal) error {
	switch sig.kind {
	case signalLine:
		return m.processLine(sig.writerID, sig.text)
	case signalFlush:
		return m.flushInternal()
	case signalPause:
		m.state.mu.Lock()
		m.state.paused = true
		m.state.mu.Unlock()
		m.logf("readline: writer %s paused", sig.writerID)
		return nil
	case signalResume:
		m.state.mu.Lock()
		m.state.paused = false
		m.state.mu.Unlock()
		m.logf("readline: writer %s resumed", sig.writerID)
		return m.flushInternal()
	default:
		return nil
	}
}

func (m *lineMonitor) processLine(writerID string, text Text) error {
	s := m.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		s.buf.PushBack(text)
		m.logf("readline: writer %s sent %d bytes while paused", writerID, len(text))
		return nil
	}
	if err := s.line.PrintData(text, s.term); err != nil {
		return err
	}
	return s.term.Flush()
}

// flushInternal drains the PauseBuffer (if unpaused) and redraws the
// prompt. Called for both an explicit Flush signal and a Resume signal.
func (m *lineMonitor) flushInternal() error {
	s := m.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return nil
	}
	for {
		t, ok := s.buf.PopFront()
		if !ok {
			break
		}
		if err := s.line.PrintData(t, s.term); err != nil {
			return err
		}
	}
	if err := s.line.ClearAndRender(s.term); err != nil {
		return err
	}
	return s.term.Flush()
}

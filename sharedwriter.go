/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// sharedChannel is the bounded line channel, shared by every clone of a
// SharedWriter and consumed by the LineMonitor task.
//
// Closing ch itself would panic any writer mid-send, so sharedChannel
// tracks an explicit reference count and closes closedNotify instead
// once the last SharedWriter.Close runs. LineMonitor selects on
// closedNotify to learn that no producer remains.
type sharedChannel struct {
	ch           chan LineControlSignal
	mu           sync.Mutex
	refCount     int
	closedNotify chan struct{}
}

func newSharedChannel(capacity int) *sharedChannel {
	return &sharedChannel{
		ch:           make(chan LineControlSignal, capacity),
		refCount:     1,
		closedNotify: make(chan struct{}),
	}
}

func (sc *sharedChannel) retain() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.refCount++
}

func (sc *sharedChannel) release() {
	sc.mu.Lock()
	sc.refCount--
	done := sc.refCount <= 0
	sc.mu.Unlock()
	if done {
		close(sc.closedNotify)
	}
}

func (sc *sharedChannel) send(sig LineControlSignal) error {
	// Check closedNotify first: with spare buffer capacity the select
	// below could otherwise pick the send case after the last Close.
	select {
	case <-sc.closedNotify:
		return fmt.Errorf("readline: %w", io.ErrClosedPipe)
	default:
	}
	select {
	case sc.ch <- sig:
		return nil
	case <-sc.closedNotify:
		return fmt.Errorf("readline: %w", io.ErrClosedPipe)
	}
}

// SharedWriter is a cloneable handle background producers use to send
// output to the terminal owned by a Readline instance. Every write is
// packaged into a LineControlSignal and sent on a bounded channel to the
// LineMonitor task; it never touches the terminal directly, and never
// references the Readline engine itself.
type SharedWriter struct {
	id string
	sc *sharedChannel
}

func newSharedWriter(sc *sharedChannel) *SharedWriter {
	return &SharedWriter{id: uuid.NewString(), sc: sc}
}

// ID returns a unique identifier for this writer handle, used only for
// diagnostic logging (e.g. which writer sent what while paused).
func (w *SharedWriter) ID() string { return w.id }

// Clone returns a new handle sharing this writer's channel. Each clone
// must eventually be closed independently with Close.
func (w *SharedWriter) Clone() *SharedWriter {
	w.sc.retain()
	return newSharedWriter(w.sc)
}

// Close releases this handle. Once every clone (including the one
// returned from New) has been closed, the LineMonitor task observes
// the channel as closed and exits.
func (w *SharedWriter) Close() {
	w.sc.release()
}

// Write implements io.Writer. Writes are delivered to the terminal in
// submission order relative to this writer; ordering between different
// SharedWriters is whatever order the channel receives them in.
func (w *SharedWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf := make(Text, len(p))
	copy(buf, p)
	if err := w.sc.send(lineSignal(w.id, buf)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush sends a Flush control signal: if unpaused, the LineMonitor
// drains any pending PauseBuffer entries and redraws the prompt; if
// paused, it is a no-op until Resume.
func (w *SharedWriter) Flush() error {
	return w.sc.send(flushSignal(w.id))
}

// Pause tells the LineMonitor to start withholding Line signals in a
// PauseBuffer instead of writing them to the terminal. Typically issued
// by a spinner-like collaborator that wants to own the screen.
func (w *SharedWriter) Pause() error {
	return w.sc.send(pauseSignal(w.id))
}

// Resume tells the LineMonitor to stop withholding output and to drain
// any buffered Lines, in submission order, before accepting new ones.
func (w *SharedWriter) Resume() error {
	return w.sc.send(resumeSignal(w.id))
}

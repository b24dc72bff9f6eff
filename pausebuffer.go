/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

// PauseBuffer is a FIFO queue of Text payloads withheld from the
// terminal while the editor is paused. It has no size cap of its own;
// callers bound memory by bounding the producer side (the line
// channel's ChannelCapacity).
type PauseBuffer struct {
	entries []Text
}

// NewPauseBuffer returns an empty PauseBuffer.
func NewPauseBuffer() *PauseBuffer {
	return &PauseBuffer{}
}

// PushBack appends t to the end of the queue.
func (b *PauseBuffer) PushBack(t Text) {
	b.entries = append(b.entries, t)
}

// PopFront removes and returns the oldest entry, or (nil, false) if
// empty.
func (b *PauseBuffer) PopFront() (Text, bool) {
	if len(b.entries) == 0 {
		return nil, false
	}
	t := b.entries[0]
	b.entries = b.entries[1:]
	return t, true
}

// Len reports the number of entries currently queued.
func (b *PauseBuffer) Len() int {
	return len(b.entries)
}

// Clear discards all queued entries.
func (b *PauseBuffer) Clear() {
	b.entries = nil
}

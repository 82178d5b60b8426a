package logging

import (
	"sync"
	"time"
)

// LogEntry is one captured log line, decoded into fields the HTTP API can
// serve directly.
type LogEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level"`
	Module     string         `json:"module"`
	Message    string         `json:"message"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RingBuffer keeps the most recent log entries in a fixed-size circle.
// Once the buffer wraps, each write evicts the oldest entry.
type RingBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	next    int
	wrapped bool
}

// NewRingBuffer creates a buffer holding up to capacity entries.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{entries: make([]LogEntry, capacity)}
}

// Write appends an entry, evicting the oldest one when the buffer is full.
func (b *RingBuffer) Write(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = entry
	b.next++
	if b.next == len(b.entries) {
		b.next = 0
		b.wrapped = true
	}
}

// ReadAll returns a copy of the buffered entries, oldest first.
func (b *RingBuffer) ReadAll() []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.wrapped {
		if b.next == 0 {
			return nil
		}
		out := make([]LogEntry, b.next)
		copy(out, b.entries[:b.next])
		return out
	}

	// next points at the oldest entry once the buffer has wrapped.
	out := make([]LogEntry, 0, len(b.entries))
	out = append(out, b.entries[b.next:]...)
	out = append(out, b.entries[:b.next]...)
	return out
}

// Count returns how many entries are currently buffered.
func (b *RingBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.wrapped {
		return len(b.entries)
	}
	return b.next
}

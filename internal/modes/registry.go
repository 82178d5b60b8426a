// Package modes maintains the ordered list of data feeds the hub cycles
// through and the currently selected index.
package modes

import (
	"fmt"
	"sync"
	"time"

	"ambientpi/internal/source"
)

// Mode is a named, independently scheduled status source. Immutable after
// construction except for the refresh interval, which config reload may
// adjust.
type Mode struct {
	Name     string
	Source   source.Source
	Interval time.Duration
}

// Registry holds the ordered mode list and the current index. Its methods
// are safe for concurrent use: the button callback advances the index from
// an interrupt-style goroutine while the controller loop reads it.
type Registry struct {
	mu    sync.RWMutex
	modes []Mode
	index int
}

// NewRegistry validates the mode list and default index. An empty list or
// an out-of-range index is a configuration error, fatal at startup.
func NewRegistry(modes []Mode, defaultIndex int) (*Registry, error) {
	if len(modes) == 0 {
		return nil, fmt.Errorf("at least one mode must be configured")
	}
	if defaultIndex < 0 || defaultIndex >= len(modes) {
		return nil, fmt.Errorf("default mode index %d out of range [0, %d)", defaultIndex, len(modes))
	}
	copied := make([]Mode, len(modes))
	copy(copied, modes)
	return &Registry{modes: copied, index: defaultIndex}, nil
}

// Current returns the selected mode and its index.
func (r *Registry) Current() (Mode, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modes[r.index], r.index
}

// Advance moves to the next mode, wrapping modulo the mode count, and
// returns the newly selected mode.
func (r *Registry) Advance() (Mode, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = (r.index + 1) % len(r.modes)
	return r.modes[r.index], r.index
}

// Len returns the number of modes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modes)
}

// List returns a snapshot of all modes in order.
func (r *Registry) List() []Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Mode, len(r.modes))
	copy(out, r.modes)
	return out
}

// SetInterval updates the refresh interval of the named mode. Returns false
// when no such mode exists or the interval is not positive.
func (r *Registry) SetInterval(name string, interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.modes {
		if r.modes[i].Name == name {
			r.modes[i].Interval = interval
			return true
		}
	}
	return false
}

// Package status defines the ambient status model and the unit-mapping
// arithmetic that turns raw readings (temperature, load, wind) into LED
// colors and buzzer tones.
package status

import "fmt"

// Color is an RGB triple with each channel in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Tone is a buzzer tone at a fixed frequency in hertz.
type Tone struct {
	Frequency float64 `json:"frequency"`
}

// Status is a snapshot of what the hardware should show. It is produced
// fresh on every fetch and never mutated.
type Status struct {
	Label       string
	Color       Color
	Description string
	Tone        *Tone
}

// Equal temperament reference pitches (A4 = 440 Hz).
const (
	NoteE4 = 329.628
	NoteG4 = 391.995
	NoteA4 = 440.0
	NoteC6 = 1046.502
)

// NewTone returns a tone at the given frequency.
func NewTone(frequency float64) *Tone {
	return &Tone{Frequency: frequency}
}

func (t *Tone) String() string {
	if t == nil {
		return "silent"
	}
	return fmt.Sprintf("%.1fHz", t.Frequency)
}

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

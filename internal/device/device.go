// Package device abstracts the hub's output and input hardware: an RGB LED,
// a tonal buzzer and a momentary push button. Real implementations talk to
// Linux sysfs PWM and the GPIO character device; no-op implementations keep
// the hub runnable on machines without the hardware.
package device

import "ambientpi/internal/status"

// RGBLED drives a three-channel LED. Implementations own the error
// handling for hardware writes; callers treat failures as non-fatal.
type RGBLED interface {
	// SetColor sets the LED to the given color, channels in [0, 1].
	SetColor(c status.Color) error
	// Close blanks the LED and releases the underlying channels.
	Close() error
}

// Buzzer plays a single tone at a time.
type Buzzer interface {
	// Play starts a continuous tone at the given frequency in hertz,
	// replacing any tone currently playing.
	Play(freqHz float64) error
	// Stop silences the buzzer.
	Stop() error
	// Close stops playback and releases the device.
	Close() error
}

// Button is a press source. The press callback is registered at
// construction time and runs on the driver's event goroutine; it must not
// block and must not touch state owned by other goroutines.
type Button interface {
	Close() error
}

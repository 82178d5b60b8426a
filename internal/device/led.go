package device

import (
	"errors"
	"fmt"
	"log/slog"

	"ambientpi/internal/status"
)

// ledPeriodNs gives a 1 kHz PWM carrier, fast enough to be flicker-free.
const ledPeriodNs = 1_000_000

// PWMLED drives a three-channel RGB LED through sysfs PWM.
type PWMLED struct {
	red, green, blue *pwmChannel
	activeLow        bool
	logger           *slog.Logger
}

// NewPWMLED exports and enables three PWM channels on the given chip.
// activeLow suits common-anode LEDs where a full duty cycle means off.
func NewPWMLED(chipPath string, channels [3]int, activeLow bool, logger *slog.Logger) (*PWMLED, error) {
	led := &PWMLED{activeLow: activeLow, logger: logger}

	targets := []**pwmChannel{&led.red, &led.green, &led.blue}
	for i, target := range targets {
		ch, err := newPWMChannel(chipPath, channels[i], ledPeriodNs)
		if err != nil {
			led.release()
			return nil, fmt.Errorf("LED channel %d: %w", channels[i], err)
		}
		*target = ch
		if err := ch.setEnabled(true); err != nil {
			led.release()
			return nil, fmt.Errorf("LED channel %d: %w", channels[i], err)
		}
	}

	// Start dark.
	if err := led.SetColor(status.Color{}); err != nil {
		led.release()
		return nil, err
	}
	return led, nil
}

// SetColor applies the color to the three channels.
func (l *PWMLED) SetColor(c status.Color) error {
	var errs []error
	for _, part := range []struct {
		ch    *pwmChannel
		value float64
	}{
		{l.red, c.R},
		{l.green, c.G},
		{l.blue, c.B},
	} {
		value := part.value
		if l.activeLow {
			value = 1 - value
		}
		if err := part.ch.setDuty(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close blanks the LED and disables the channels.
func (l *PWMLED) Close() error {
	if err := l.SetColor(status.Color{}); err != nil {
		l.logger.Debug("Failed to blank LED on close", "error", err)
	}
	l.release()
	return nil
}

func (l *PWMLED) release() {
	for _, ch := range []*pwmChannel{l.red, l.green, l.blue} {
		if ch != nil {
			_ = ch.close()
		}
	}
}

package device

import (
	"fmt"
	"log/slog"
)

// Passive buzzers only produce useful sound in roughly this band.
const (
	buzzerMinFreq = 20.0
	buzzerMaxFreq = 20000.0
)

// PWMBuzzer drives a passive buzzer through a sysfs PWM channel. Pitch is
// set by the PWM period, loudness by a fixed 50% duty cycle.
type PWMBuzzer struct {
	ch     *pwmChannel
	logger *slog.Logger
}

// NewPWMBuzzer exports the buzzer's PWM channel.
func NewPWMBuzzer(chipPath string, channel int, logger *slog.Logger) (*PWMBuzzer, error) {
	// Period gets reprogrammed per tone; start with 1 kHz.
	ch, err := newPWMChannel(chipPath, channel, 1_000_000)
	if err != nil {
		return nil, fmt.Errorf("buzzer channel %d: %w", channel, err)
	}
	return &PWMBuzzer{ch: ch, logger: logger}, nil
}

// Play starts a continuous tone at the given frequency.
func (b *PWMBuzzer) Play(freqHz float64) error {
	if freqHz < buzzerMinFreq || freqHz > buzzerMaxFreq {
		return fmt.Errorf("frequency %.1fHz outside buzzer range", freqHz)
	}
	periodNs := int64(1e9 / freqHz)
	if err := b.ch.setPeriod(periodNs); err != nil {
		return err
	}
	if err := b.ch.setDuty(0.5); err != nil {
		return err
	}
	return b.ch.setEnabled(true)
}

// Stop silences the buzzer.
func (b *PWMBuzzer) Stop() error {
	return b.ch.setEnabled(false)
}

// Close stops playback and releases the channel.
func (b *PWMBuzzer) Close() error {
	return b.ch.close()
}

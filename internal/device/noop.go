package device

import (
	"log/slog"

	"ambientpi/internal/status"
)

// noopLED implements RGBLED without hardware, logging at debug level.
type noopLED struct {
	logger *slog.Logger
}

// NewNoopLED creates an LED that only logs.
func NewNoopLED(logger *slog.Logger) RGBLED {
	return &noopLED{logger: logger}
}

func (n *noopLED) SetColor(c status.Color) error {
	n.logger.Debug("LED color (no-op)", "r", c.R, "g", c.G, "b", c.B)
	return nil
}

func (n *noopLED) Close() error { return nil }

// noopBuzzer implements Buzzer without hardware.
type noopBuzzer struct {
	logger *slog.Logger
}

// NewNoopBuzzer creates a buzzer that only logs.
func NewNoopBuzzer(logger *slog.Logger) Buzzer {
	return &noopBuzzer{logger: logger}
}

func (n *noopBuzzer) Play(freqHz float64) error {
	n.logger.Debug("Buzzer tone (no-op)", "frequency_hz", freqHz)
	return nil
}

func (n *noopBuzzer) Stop() error  { return nil }
func (n *noopBuzzer) Close() error { return nil }

// noopButton implements Button without hardware. Mode switching is still
// reachable through the HTTP API.
type noopButton struct{}

// NewNoopButton creates a button placeholder.
func NewNoopButton() Button {
	return noopButton{}
}

func (noopButton) Close() error { return nil }

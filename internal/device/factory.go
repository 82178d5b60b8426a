package device

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// Config describes the hardware attached to the hub.
type Config struct {
	// Enabled gates all GPIO access. When false every device is a no-op
	// (or the speaker, for tones).
	Enabled bool

	PWMChipPath  string
	LEDChannels  [3]int
	LEDActiveLow bool

	BuzzerChipPath string
	BuzzerChannel  int

	GPIOChip       string
	ButtonPin      int
	ButtonDebounce time.Duration

	// SpeakerTones routes tones to the sound card instead of a PWM
	// buzzer.
	SpeakerTones bool
}

// NewOutputs creates the LED and buzzer based on board detection. Boards
// without GPIO PWM fall back to no-op devices; tone output can fall back
// to the sound card.
func NewOutputs(cfg Config, logger *slog.Logger) (RGBLED, Buzzer, error) {
	if !cfg.Enabled {
		logger.Info("Hardware disabled, using no-op LED")
		return NewNoopLED(logger), newToneFallback(cfg, logger), nil
	}

	boardModel := detectBoard()
	logger.Info("Detecting board for GPIO control", "board_model", boardModel)

	if !boardSupported(boardModel) {
		logger.Warn("Unrecognized board, using no-op devices", "board_model", boardModel)
		return NewNoopLED(logger), newToneFallback(cfg, logger), nil
	}

	led, err := NewPWMLED(cfg.PWMChipPath, cfg.LEDChannels, cfg.LEDActiveLow, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.SpeakerTones {
		return led, NewSpeakerBuzzer(logger), nil
	}

	buzzer, err := NewPWMBuzzer(cfg.BuzzerChipPath, cfg.BuzzerChannel, logger)
	if err != nil {
		led.Close()
		return nil, nil, err
	}
	return led, buzzer, nil
}

// NewButton creates the mode button, or a no-op when hardware is disabled
// or no pin is configured.
func NewButton(cfg Config, onPress func(), logger *slog.Logger) (Button, error) {
	if !cfg.Enabled || cfg.ButtonPin < 0 {
		logger.Info("Button disabled, mode switching via API only")
		return NewNoopButton(), nil
	}
	return NewGPIOButton(cfg.GPIOChip, cfg.ButtonPin, cfg.ButtonDebounce, onPress, logger)
}

func newToneFallback(cfg Config, logger *slog.Logger) Buzzer {
	if cfg.SpeakerTones {
		logger.Info("Routing tones to the sound card")
		return NewSpeakerBuzzer(logger)
	}
	return NewNoopBuzzer(logger)
}

func boardSupported(model string) bool {
	for _, name := range []string{"Raspberry Pi", "Orange Pi", "NanoPC"} {
		if strings.Contains(model, name) {
			return true
		}
	}
	return false
}

// detectBoard reads the device tree model to identify the board.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}

	// Device tree model strings end in null bytes.
	return strings.TrimRight(string(data), "\x00")
}

package device

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOButton watches a GPIO line for falling edges (button wired to ground
// with the internal pull-up enabled). The kernel debounces the line; the
// registered callback runs on the driver's event goroutine.
type GPIOButton struct {
	line   *gpiocdev.Line
	logger *slog.Logger
}

// NewGPIOButton requests the line and starts edge monitoring. onPress must
// be safe to call from a goroutine other than the main loop.
func NewGPIOButton(chip string, offset int, debounce time.Duration, onPress func(), logger *slog.Logger) (*GPIOButton, error) {
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			logger.Debug("Button edge", "offset", evt.Offset, "seqno", evt.Seqno)
			onPress()
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("request button line %s:%d: %w", chip, offset, err)
	}

	logger.Info("Button monitoring started", "chip", chip, "offset", offset, "debounce", debounce)
	return &GPIOButton{line: line, logger: logger}, nil
}

// Close releases the GPIO line.
func (b *GPIOButton) Close() error {
	return b.line.Close()
}

package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// pwmChannel wraps one channel of a sysfs PWM chip
// (/sys/class/pwm/pwmchipN/pwmM).
type pwmChannel struct {
	path     string
	periodNs int64
}

// newPWMChannel exports the channel if needed and programs its period.
func newPWMChannel(chipPath string, channel int, periodNs int64) (*pwmChannel, error) {
	path := filepath.Join(chipPath, fmt.Sprintf("pwm%d", channel))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		exportPath := filepath.Join(chipPath, "export")
		if writeErr := os.WriteFile(exportPath, []byte(strconv.Itoa(channel)), 0o644); writeErr != nil {
			return nil, fmt.Errorf("export PWM channel %d on %s: %w", channel, chipPath, writeErr)
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("PWM channel %d did not appear at %s: %w", channel, path, statErr)
		}
	}

	p := &pwmChannel{path: path}
	if err := p.setPeriod(periodNs); err != nil {
		return nil, err
	}
	return p, nil
}

// setPeriod reprograms the PWM period. The kernel rejects a period shorter
// than the current duty cycle, so duty is zeroed first.
func (p *pwmChannel) setPeriod(periodNs int64) error {
	if periodNs <= 0 {
		return fmt.Errorf("invalid PWM period %dns", periodNs)
	}
	_ = p.write("duty_cycle", 0)
	if err := p.write("period", periodNs); err != nil {
		return fmt.Errorf("set PWM period: %w", err)
	}
	p.periodNs = periodNs
	return nil
}

// setDuty sets the duty cycle as a fraction of the period in [0, 1].
func (p *pwmChannel) setDuty(fraction float64) error {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	duty := int64(fraction * float64(p.periodNs))
	if err := p.write("duty_cycle", duty); err != nil {
		return fmt.Errorf("set PWM duty cycle: %w", err)
	}
	return nil
}

// setEnabled switches the channel output on or off.
func (p *pwmChannel) setEnabled(on bool) error {
	var v int64
	if on {
		v = 1
	}
	if err := p.write("enable", v); err != nil {
		return fmt.Errorf("set PWM enable: %w", err)
	}
	return nil
}

// close disables output. The channel stays exported; unexporting would
// race with other users of the chip.
func (p *pwmChannel) close() error {
	return p.setEnabled(false)
}

func (p *pwmChannel) write(attr string, value int64) error {
	return os.WriteFile(filepath.Join(p.path, attr), []byte(strconv.FormatInt(value, 10)), 0o644)
}

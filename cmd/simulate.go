package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"ambientpi/internal/device"
	"ambientpi/internal/logging"
	"ambientpi/internal/status"
)

// CreateSimulateCmd creates the simulate command: sweep severity from calm
// to critical on the attached LED and buzzer. Hardware bring-up aid.
func CreateSimulateCmd() *cobra.Command {
	var pwmChip string
	var redChannel, greenChannel, blueChannel int
	var activeLow bool
	var buzzerChip string
	var buzzerChannel int
	var speaker bool
	var steps int
	var stepDuration time.Duration

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Sweep severity across the LED and buzzer",
		Long: `Drives the LED through the green-to-red severity gradient and plays ` +
			`the matching tones. Verifies wiring and channel order without waiting ` +
			`for real data.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "info", Format: "text"})
			logger := logging.GetLogger("simulate")

			led, buzzer, err := device.NewOutputs(device.Config{
				Enabled:        true,
				PWMChipPath:    pwmChip,
				LEDChannels:    [3]int{redChannel, greenChannel, blueChannel},
				LEDActiveLow:   activeLow,
				BuzzerChipPath: buzzerChip,
				BuzzerChannel:  buzzerChannel,
				SpeakerTones:   speaker,
			}, logger)
			if err != nil {
				logger.Error("Failed to open devices", "error", err)
				os.Exit(1)
			}
			defer led.Close()
			defer buzzer.Close()

			for i := 0; i <= steps; i++ {
				severity := float64(i) / float64(steps)
				color := status.SeverityColor(severity)
				tone := status.SeverityTone(severity)

				logger.Info("Severity step", "severity", severity, "r", color.R, "g", color.G, "b", color.B, "tone", tone)
				if err := led.SetColor(color); err != nil {
					logger.Warn("LED write failed", "error", err)
				}
				if tone != nil {
					if err := buzzer.Play(tone.Frequency); err != nil {
						logger.Warn("Buzzer write failed", "error", err)
					}
				} else if err := buzzer.Stop(); err != nil {
					logger.Warn("Buzzer stop failed", "error", err)
				}
				time.Sleep(stepDuration)
			}

			buzzer.Stop()
			led.SetColor(status.Color{})
		},
	}

	cmd.Flags().StringVar(&pwmChip, "pwm-chip", "/sys/class/pwm/pwmchip0", "PWM chip sysfs path for the LED")
	cmd.Flags().IntVar(&redChannel, "red-channel", 0, "PWM channel for the red LED leg")
	cmd.Flags().IntVar(&greenChannel, "green-channel", 1, "PWM channel for the green LED leg")
	cmd.Flags().IntVar(&blueChannel, "blue-channel", 2, "PWM channel for the blue LED leg")
	cmd.Flags().BoolVar(&activeLow, "active-low", false, "Invert duty for common-anode LEDs")
	cmd.Flags().StringVar(&buzzerChip, "buzzer-chip", "/sys/class/pwm/pwmchip1", "PWM chip sysfs path for the buzzer")
	cmd.Flags().IntVar(&buzzerChannel, "buzzer-channel", 0, "PWM channel for the buzzer")
	cmd.Flags().BoolVar(&speaker, "speaker", false, "Play tones on the sound card instead of a PWM buzzer")
	cmd.Flags().IntVar(&steps, "steps", 10, "Number of severity steps")
	cmd.Flags().DurationVar(&stepDuration, "step-duration", time.Second, "Hold time per step")

	return cmd
}

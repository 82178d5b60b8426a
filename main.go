package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/danielgtaylor/huma/v2/humacli"

	"ambientpi/cmd"
	"ambientpi/internal/api"
	"ambientpi/internal/config"
	"ambientpi/internal/device"
	"ambientpi/internal/events"
	"ambientpi/internal/hub"
	"ambientpi/internal/logging"
	"ambientpi/internal/metrics"
	"ambientpi/internal/modes"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Mode settings
	SystemInterval  string `help:"System health refresh interval" default:"1m" toml:"modes.system_interval" env:"MODES_SYSTEM_INTERVAL"`
	WeatherInterval string `help:"Weather refresh interval" default:"10m" toml:"modes.weather_interval" env:"MODES_WEATHER_INTERVAL"`
	DefaultMode     int    `help:"Mode index selected at startup" default:"0" toml:"modes.default_index" env:"MODES_DEFAULT_INDEX"`
	ThermalZone     string `help:"CPU temperature file, defaults to /sys/class/thermal/thermal_zone0/temp" default:"" toml:"modes.thermal_zone" env:"MODES_THERMAL_ZONE"`

	// Weather settings
	Latitude  float64 `help:"Latitude for the weather mode (0 disables)" default:"0" toml:"weather.latitude" env:"WEATHER_LATITUDE"`
	Longitude float64 `help:"Longitude for the weather mode (0 disables)" default:"0" toml:"weather.longitude" env:"WEATHER_LONGITUDE"`
	Timezone  string  `help:"Timezone for the weather forecast" default:"auto" toml:"weather.timezone" env:"WEATHER_TIMEZONE"`

	// Hardware settings
	HardwareEnabled  bool   `help:"Enable GPIO hardware" default:"true" toml:"hardware.enabled" env:"HARDWARE_ENABLED"`
	PWMChipPath      string `help:"PWM chip sysfs path for the LED" default:"/sys/class/pwm/pwmchip0" toml:"hardware.pwm_chip" env:"HARDWARE_PWM_CHIP"`
	LEDRedChannel    int    `help:"PWM channel for the red LED leg" default:"0" toml:"hardware.led_red_channel" env:"HARDWARE_LED_RED_CHANNEL"`
	LEDGreenChannel  int    `help:"PWM channel for the green LED leg" default:"1" toml:"hardware.led_green_channel" env:"HARDWARE_LED_GREEN_CHANNEL"`
	LEDBlueChannel   int    `help:"PWM channel for the blue LED leg" default:"2" toml:"hardware.led_blue_channel" env:"HARDWARE_LED_BLUE_CHANNEL"`
	LEDActiveLow     bool   `help:"Invert duty for common-anode LEDs" default:"false" toml:"hardware.led_active_low" env:"HARDWARE_LED_ACTIVE_LOW"`
	BuzzerChipPath   string `help:"PWM chip sysfs path for the buzzer" default:"/sys/class/pwm/pwmchip1" toml:"hardware.buzzer_chip" env:"HARDWARE_BUZZER_CHIP"`
	BuzzerChannel    int    `help:"PWM channel for the buzzer" default:"0" toml:"hardware.buzzer_channel" env:"HARDWARE_BUZZER_CHANNEL"`
	SpeakerTones     bool   `help:"Play tones on the sound card instead of a PWM buzzer" default:"false" toml:"hardware.speaker_tones" env:"HARDWARE_SPEAKER_TONES"`
	GPIOChip         string `help:"GPIO chip for the mode button" default:"gpiochip0" toml:"hardware.gpio_chip" env:"HARDWARE_GPIO_CHIP"`
	ButtonPin        int    `help:"GPIO pin for the mode button (-1 disables)" default:"17" toml:"hardware.button_pin" env:"HARDWARE_BUTTON_PIN"`
	ButtonDebounceMs int    `help:"Button debounce in milliseconds" default:"200" toml:"hardware.button_debounce_ms" env:"HARDWARE_BUTTON_DEBOUNCE_MS"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingHub    string `help:"Hub logging level" default:"info" toml:"logging.hub" env:"LOGGING_HUB"`
	LoggingSource string `help:"Data source logging level" default:"info" toml:"logging.source" env:"LOGGING_SOURCE"`
	LoggingDevice string `help:"Device logging level" default:"info" toml:"logging.device" env:"LOGGING_DEVICE"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func parseInterval(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func main() {
	// The callback runs from cli.Run, after cli is assigned; passing the
	// root command lets the loader keep flags the user set explicitly.
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"hub":    opts.LoggingHub,
				"source": opts.LoggingSource,
				"device": opts.LoggingDevice,
				"api":    opts.LoggingAPI,
			},
		})
		logger := logging.GetLogger("main")

		eventBus := events.New()

		var m *metrics.Metrics
		if opts.MetricsEnabled {
			m = metrics.New()
		}

		registry, err := modes.NewRegistry(modes.Build(modes.BuildConfig{
			SystemInterval:  parseInterval(opts.SystemInterval, time.Minute),
			ThermalZone:     opts.ThermalZone,
			Latitude:        opts.Latitude,
			Longitude:       opts.Longitude,
			Timezone:        opts.Timezone,
			WeatherInterval: parseInterval(opts.WeatherInterval, 10*time.Minute),
		}, logging.GetLogger("source")), opts.DefaultMode)
		if err != nil {
			logger.Error("Invalid mode configuration", "error", err)
			os.Exit(1)
		}

		deviceConfig := device.Config{
			Enabled:        opts.HardwareEnabled,
			PWMChipPath:    opts.PWMChipPath,
			LEDChannels:    [3]int{opts.LEDRedChannel, opts.LEDGreenChannel, opts.LEDBlueChannel},
			LEDActiveLow:   opts.LEDActiveLow,
			BuzzerChipPath: opts.BuzzerChipPath,
			BuzzerChannel:  opts.BuzzerChannel,
			GPIOChip:       opts.GPIOChip,
			ButtonPin:      opts.ButtonPin,
			ButtonDebounce: time.Duration(opts.ButtonDebounceMs) * time.Millisecond,
			SpeakerTones:   opts.SpeakerTones,
		}

		deviceLogger := logging.GetLogger("device")
		led, buzzer, err := device.NewOutputs(deviceConfig, deviceLogger)
		if err != nil {
			logger.Error("Failed to open output devices", "error", err)
			os.Exit(1)
		}

		button, err := device.NewButton(deviceConfig, func() {
			eventBus.Publish(events.ButtonPressedEvent{
				Origin:    "gpio",
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}, deviceLogger)
		if err != nil {
			logger.Error("Failed to open button", "error", err)
			os.Exit(1)
		}

		controller := hub.New(registry, led, buzzer, eventBus, m, logging.GetLogger("hub"))

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Hub:          controller,
			Registry:     registry,
			Bus:          eventBus,
		}
		if m != nil {
			apiOpts.PrometheusHandler = m.Handler()
		}
		server := api.NewServer(apiOpts)

		// Reload mode intervals when the config file changes.
		watcher := config.NewWatcher(opts.Config, modes.LoadIntervals, logging.GetLogger("config"))
		watcher.OnReload(func(settings modes.IntervalSettings) {
			modes.ApplyIntervals(registry, settings, logging.GetLogger("config"))
		})

		runCtx, cancelRun := context.WithCancel(context.Background())
		watchdogDone := make(chan struct{})

		hooks.OnStart(func() {
			controller.Start()
			go func() {
				if runErr := controller.Run(runCtx); runErr != nil && !errors.Is(runErr, context.Canceled) {
					logger.Error("Controller stopped", "error", runErr)
				}
			}()

			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Config watcher unavailable", "error", watchErr)
			}

			if _, notifyErr := daemon.SdNotify(false, daemon.SdNotifyReady); notifyErr != nil {
				logger.Debug("sd_notify unavailable", "error", notifyErr)
			}
			go runWatchdog(watchdogDone, logger)

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			daemon.SdNotify(false, daemon.SdNotifyStopping)
			close(watchdogDone)

			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			controller.Stop()
			cancelRun()
			watcher.Stop()

			if closeErr := button.Close(); closeErr != nil {
				logger.Warn("Error closing button", "error", closeErr)
			}
			if closeErr := buzzer.Close(); closeErr != nil {
				logger.Warn("Error closing buzzer", "error", closeErr)
			}
			if closeErr := led.Close(); closeErr != nil {
				logger.Warn("Error closing LED", "error", closeErr)
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateStatusCmd())
	cli.Root().AddCommand(cmd.CreateSimulateCmd())

	cli.Run()
}

// runWatchdog pings the systemd watchdog at half its interval when one is
// configured for the unit.
func runWatchdog(done <-chan struct{}, logger *slog.Logger) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return
	}

	logger.Info("systemd watchdog enabled", "interval", interval)
	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}

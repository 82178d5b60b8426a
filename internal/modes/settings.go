package modes

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// IntervalSettings is the runtime-reloadable slice of the config file:
// refresh intervals may change while the hub runs, everything else requires
// a restart.
type IntervalSettings struct {
	Modes struct {
		SystemInterval  string `toml:"system_interval"`
		WeatherInterval string `toml:"weather_interval"`
	} `toml:"modes"`
}

// LoadIntervals reads the [modes] section of the config file. Used as the
// loader for the config watcher.
func LoadIntervals(path string) (IntervalSettings, error) {
	var settings IntervalSettings
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

// ApplyIntervals applies reloaded interval settings to the registry.
// Absent values are skipped; values that cannot be applied are logged so a
// bad reload never passes silently.
func ApplyIntervals(r *Registry, settings IntervalSettings, logger *slog.Logger) {
	apply := func(name, raw string) {
		if raw == "" {
			return
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			logger.Warn("Ignoring unparseable interval", "mode", name, "value", raw, "error", err)
			return
		}
		// SetInterval rejects non-positive durations and inactive modes.
		if !r.SetInterval(name, d) {
			logger.Warn("Ignoring interval that could not be applied", "mode", name, "value", raw)
			return
		}
		logger.Info("Interval updated", "mode", name, "interval", d)
	}
	apply("System health", settings.Modes.SystemInterval)
	apply("Weather", settings.Modes.WeatherInterval)
}

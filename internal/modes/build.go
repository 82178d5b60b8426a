package modes

import (
	"log/slog"
	"time"

	"ambientpi/internal/source"
)

// BuildConfig selects which modes are active and how they are tuned.
type BuildConfig struct {
	SystemInterval time.Duration
	RootPath       string
	ThermalZone    string

	// Weather mode is enabled only when coordinates are set. Zero values
	// mean "not configured".
	Latitude        float64
	Longitude       float64
	Timezone        string
	WeatherInterval time.Duration
	WeatherURL      string
}

// Build creates the active mode list. The system health mode is always
// present; the weather mode requires coordinates.
func Build(cfg BuildConfig, logger *slog.Logger) []Mode {
	systemOpts := []source.SystemOption{}
	if cfg.RootPath != "" {
		systemOpts = append(systemOpts, source.WithRootPath(cfg.RootPath))
	}
	if cfg.ThermalZone != "" {
		systemOpts = append(systemOpts, source.WithThermalZone(cfg.ThermalZone))
	}

	system := source.NewSystemSource(logger, systemOpts...)
	list := []Mode{{
		Name:     system.Name(),
		Source:   system,
		Interval: cfg.SystemInterval,
	}}

	if cfg.Latitude == 0 && cfg.Longitude == 0 {
		logger.Info("No coordinates configured, weather mode disabled")
		return list
	}

	weatherOpts := []source.WeatherOption{}
	if cfg.Timezone != "" {
		weatherOpts = append(weatherOpts, source.WithTimezone(cfg.Timezone))
	}
	if cfg.WeatherURL != "" {
		weatherOpts = append(weatherOpts, source.WithBaseURL(cfg.WeatherURL))
	}

	weather := source.NewWeatherSource(cfg.Latitude, cfg.Longitude, logger, weatherOpts...)
	list = append(list, Mode{
		Name:     weather.Name(),
		Source:   weather,
		Interval: cfg.WeatherInterval,
	})
	return list
}

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ambientpi/internal/status"
)

const (
	weatherSourceName = "Weather"

	// DefaultWeatherURL is the Open-Meteo forecast endpoint. No API key
	// required.
	DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

	weatherRequestTimeout = 10 * time.Second
)

// WeatherSource retrieves current weather conditions for a fixed location
// and renders them as a temperature gradient with a wind tone.
type WeatherSource struct {
	latitude  float64
	longitude float64
	timezone  string
	baseURL   string
	client    *http.Client
	logger    *slog.Logger
}

// WeatherOption configures a WeatherSource.
type WeatherOption func(*WeatherSource)

// WithBaseURL overrides the forecast endpoint, used by tests.
func WithBaseURL(u string) WeatherOption {
	return func(w *WeatherSource) {
		w.baseURL = u
	}
}

// WithTimezone sets the timezone identifier sent to the API.
func WithTimezone(tz string) WeatherOption {
	return func(w *WeatherSource) {
		w.timezone = tz
	}
}

// NewWeatherSource creates a weather source for the given coordinates.
func NewWeatherSource(latitude, longitude float64, logger *slog.Logger, opts ...WeatherOption) *WeatherSource {
	w := &WeatherSource{
		latitude:  latitude,
		longitude: longitude,
		timezone:  "auto",
		baseURL:   DefaultWeatherURL,
		client:    &http.Client{Timeout: weatherRequestTimeout},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the mode name shown for this source.
func (w *WeatherSource) Name() string { return weatherSourceName }

// forecastResponse mirrors the subset of the Open-Meteo payload we consume.
// The hourly arrays are parallel time-indexed sequences; the last element
// is treated as "now".
type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		// Pointer so an absent code is distinguishable from 0 (clear sky).
		WeatherCode *int `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		RelativeHumidity         []float64 `json:"relativehumidity_2m"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// Fetch queries the forecast endpoint and maps the result onto LED color
// and buzzer tone.
func (w *WeatherSource) Fetch(ctx context.Context) (status.Status, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(w.latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(w.longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("hourly", "temperature_2m,relativehumidity_2m,precipitation_probability")
	params.Set("timezone", w.timezone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return status.Status{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return status.Status{}, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return status.Status{}, fmt.Errorf("forecast request: unexpected status %s", resp.Status)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return status.Status{}, fmt.Errorf("decode forecast response: %w", err)
	}

	tempC := payload.CurrentWeather.Temperature
	windSpeed := payload.CurrentWeather.WindSpeed
	humidity, hasHumidity := latest(payload.Hourly.RelativeHumidity)
	precipProbability, hasPrecip := latest(payload.Hourly.PrecipitationProbability)
	if !hasPrecip {
		precipProbability = 0
	}

	parts := []string{
		fmt.Sprintf("Temperature: %.1f°C", tempC),
		fmt.Sprintf("Wind: %.1f km/h", windSpeed),
	}
	if hasHumidity {
		parts = append(parts, fmt.Sprintf("Humidity: %.0f%%", humidity))
	}
	if hasPrecip {
		parts = append(parts, fmt.Sprintf("Precipitation chance: %.0f%%", precipProbability))
	}
	weatherCode := -1
	if payload.CurrentWeather.WeatherCode != nil {
		weatherCode = *payload.CurrentWeather.WeatherCode
	}
	if desc := describeWeatherCode(weatherCode); desc != "" {
		parts = append(parts, desc)
	}

	return status.Status{
		Label:       weatherSourceName,
		Color:       status.TemperatureColor(tempC, precipProbability),
		Description: strings.Join(parts, ", "),
		Tone:        status.WindTone(windSpeed),
	}, nil
}

// latest returns the last element of an hourly sequence.
func latest(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return values[len(values)-1], true
}

package source

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ambientpi/internal/status"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

const forecastFixture = `{
	"current_weather": {
		"temperature": 21.5,
		"windspeed": 30.0,
		"weathercode": 3
	},
	"hourly": {
		"relativehumidity_2m": [60, 62, 71],
		"precipitation_probability": [10, 20, 40]
	}
}`

func TestWeatherSource_Fetch(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":        r.URL.Query().Get("latitude"),
			"longitude":       r.URL.Query().Get("longitude"),
			"current_weather": r.URL.Query().Get("current_weather"),
			"hourly":          r.URL.Query().Get("hourly"),
			"timezone":        r.URL.Query().Get("timezone"),
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(forecastFixture)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	src := NewWeatherSource(40.7128, -74.006, testLogger(), WithBaseURL(server.URL))

	st, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotQuery["latitude"] != "40.7128" {
		t.Errorf("latitude param = %q, want 40.7128", gotQuery["latitude"])
	}
	if gotQuery["current_weather"] != "true" {
		t.Errorf("current_weather param = %q, want true", gotQuery["current_weather"])
	}
	if !strings.Contains(gotQuery["hourly"], "precipitation_probability") {
		t.Errorf("hourly param missing precipitation_probability: %q", gotQuery["hourly"])
	}
	if gotQuery["timezone"] != "auto" {
		t.Errorf("timezone param = %q, want auto", gotQuery["timezone"])
	}

	if st.Label != "Weather" {
		t.Errorf("Label = %q, want Weather", st.Label)
	}

	// Last hourly elements are "current": humidity 71, precipitation 40.
	for _, want := range []string{"Temperature: 21.5°C", "Wind: 30.0 km/h", "Humidity: 71%", "Precipitation chance: 40%", "Overcast"} {
		if !strings.Contains(st.Description, want) {
			t.Errorf("Description %q missing %q", st.Description, want)
		}
	}

	if wantColor := status.TemperatureColor(21.5, 40); st.Color != wantColor {
		t.Errorf("Color = %+v, want %+v", st.Color, wantColor)
	}

	if st.Tone == nil {
		t.Fatal("Tone = nil, want wind tone at 30 km/h")
	}
	wantTone := status.WindTone(30.0)
	if math.Abs(st.Tone.Frequency-wantTone.Frequency) > 1e-9 {
		t.Errorf("Tone = %.3f, want %.3f", st.Tone.Frequency, wantTone.Frequency)
	}
}

func TestWeatherSource_MissingHourlyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather": {"temperature": 5, "windspeed": 2, "weathercode": 0}, "hourly": {}}`))
	}))
	defer server.Close()

	src := NewWeatherSource(0, 0, testLogger(), WithBaseURL(server.URL))
	st, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if strings.Contains(st.Description, "Humidity") {
		t.Errorf("Description %q mentions humidity without data", st.Description)
	}
	if st.Tone != nil {
		t.Errorf("Tone = %v, want nil for calm wind", st.Tone)
	}
	// Missing precipitation treated as zero.
	if wantColor := status.TemperatureColor(5, 0); st.Color != wantColor {
		t.Errorf("Color = %+v, want %+v", st.Color, wantColor)
	}
}

func TestWeatherSource_MissingWeatherCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather": {"temperature": 12, "windspeed": 3}, "hourly": {}}`))
	}))
	defer server.Close()

	src := NewWeatherSource(0, 0, testLogger(), WithBaseURL(server.URL))
	st, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// An absent code must not read as code 0 (clear sky).
	if strings.Contains(st.Description, "Clear sky") {
		t.Errorf("Description %q claims clear sky without a weather code", st.Description)
	}
	if !strings.Contains(st.Description, "Unknown weather") {
		t.Errorf("Description %q missing %q", st.Description, "Unknown weather")
	}
}

func TestWeatherSource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	src := NewWeatherSource(0, 0, testLogger(), WithBaseURL(server.URL))
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch should fail on HTTP 500")
	}
}

func TestWeatherSource_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	src := NewWeatherSource(0, 0, testLogger(), WithBaseURL(server.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := src.Fetch(ctx); err == nil {
		t.Fatal("Fetch should fail when the context deadline expires")
	}
}

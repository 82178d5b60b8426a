// Package metrics exposes the hub's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the hub's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	FetchTotal    *prometheus.CounterVec
	FetchErrors   *prometheus.CounterVec
	FetchDuration *prometheus.GaugeVec
	ModeSwitches  prometheus.Counter
	ButtonPresses prometheus.Counter
	LEDColor      *prometheus.GaugeVec
	ToneFrequency prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ambientpi_fetch_total",
			Help: "Status fetches per mode.",
		}, []string{"mode"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ambientpi_fetch_errors_total",
			Help: "Failed status fetches per mode.",
		}, []string{"mode"}),
		FetchDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ambientpi_fetch_duration_seconds",
			Help: "Duration of the most recent fetch per mode.",
		}, []string{"mode"}),
		ModeSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ambientpi_mode_switches_total",
			Help: "Mode advances from any origin.",
		}),
		ButtonPresses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ambientpi_button_presses_total",
			Help: "Physical and API button presses.",
		}),
		LEDColor: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ambientpi_led_channel",
			Help: "Current LED channel values in [0,1].",
		}, []string{"channel"}),
		ToneFrequency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ambientpi_tone_frequency_hz",
			Help: "Currently displayed tone frequency, 0 when silent.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FetchTotal,
		m.FetchErrors,
		m.FetchDuration,
		m.ModeSwitches,
		m.ButtonPresses,
		m.LEDColor,
		m.ToneFrequency,
	)
	return m
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package hub contains the ambient controller: the single loop that fetches
// the current mode's status, drives the LED and buzzer, and waits for either
// the mode's refresh interval or a wake signal from the button.
package hub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ambientpi/internal/device"
	"ambientpi/internal/events"
	"ambientpi/internal/metrics"
	"ambientpi/internal/modes"
	"ambientpi/internal/status"
)

const (
	// toneDuration keeps alert tones short so the hub is not annoying.
	toneDuration = 600 * time.Millisecond

	// fetchTimeout bounds every source fetch so a stalled collaborator
	// cannot block mode switching.
	fetchTimeout = 15 * time.Second
)

// Controller owns the output devices and the mode registry and runs the
// fetch/display/wait cycle. The loop goroutine is the only writer of device
// state; asynchronous mode changes arrive through a single-slot wake
// channel.
type Controller struct {
	registry *modes.Registry
	led      device.RGBLED
	buzzer   device.Buzzer
	bus      *events.Bus
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// wake has capacity 1; rapid presses coalesce into one redisplay
	// while each press still advances the index exactly once.
	wake chan struct{}

	unsubscribe func()

	mu          sync.RWMutex
	lastStatus  status.Status
	lastMode    string
	lastUpdated time.Time
	hasStatus   bool
}

// New creates a controller. The metrics argument may be nil.
func New(registry *modes.Registry, led device.RGBLED, buzzer device.Buzzer, bus *events.Bus, m *metrics.Metrics, logger *slog.Logger) *Controller {
	return &Controller{
		registry: registry,
		led:      led,
		buzzer:   buzzer,
		bus:      bus,
		metrics:  m,
		logger:   logger,
		wake:     make(chan struct{}, 1),
	}
}

// Start subscribes the controller to button events. The button callback
// publishes on the bus; only this subscription touches the registry.
func (c *Controller) Start() {
	c.unsubscribe = c.bus.Subscribe(func(e events.ButtonPressedEvent) {
		if c.metrics != nil {
			c.metrics.ButtonPresses.Inc()
		}
		c.Advance()
	})
}

// Stop removes the button subscription.
func (c *Controller) Stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Advance selects the next mode and wakes the loop. Safe to call from any
// goroutine: the index update happens inside the registry and the wake is
// a non-blocking send on a buffered channel.
func (c *Controller) Advance() {
	mode, index := c.registry.Advance()
	c.logger.Info("Switched mode", "mode", mode.Name, "index", index)

	if c.metrics != nil {
		c.metrics.ModeSwitches.Inc()
	}
	c.bus.Publish(events.ModeChangedEvent{
		Mode:      mode.Name,
		Index:     index,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run drives the loop until the context is cancelled. Fetch failures are
// rendered as an error status and never stop the loop.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("Ambient controller starting", "modes", c.registry.Len())

	for {
		mode, _ := c.registry.Current()

		st, failed := c.fetch(ctx, mode)
		if ctx.Err() != nil {
			c.shutdown()
			return ctx.Err()
		}

		c.display(ctx, st)
		c.record(mode.Name, st, failed)

		timer := time.NewTimer(mode.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.shutdown()
			return ctx.Err()
		case <-c.wake:
			// Mode already advanced; redisplay immediately.
			timer.Stop()
		case <-timer.C:
			// Refresh the same mode.
		}
	}
}

// LastStatus returns the most recently displayed status and the mode that
// produced it.
func (c *Controller) LastStatus() (status.Status, string, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastStatus, c.lastMode, c.lastUpdated, c.hasStatus
}

// fetch calls the mode's source with a bounded deadline, substituting a
// synthesized error status on failure.
func (c *Controller) fetch(ctx context.Context, mode modes.Mode) (status.Status, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	start := time.Now()
	st, err := mode.Source.Fetch(fetchCtx)
	elapsed := time.Since(start)

	if c.metrics != nil {
		c.metrics.FetchTotal.WithLabelValues(mode.Name).Inc()
		c.metrics.FetchDuration.WithLabelValues(mode.Name).Set(elapsed.Seconds())
	}

	if err == nil {
		return st, false
	}

	c.logger.Error("Fetch failed", "mode", mode.Name, "error", err)
	if c.metrics != nil {
		c.metrics.FetchErrors.WithLabelValues(mode.Name).Inc()
	}
	c.bus.Publish(events.FetchErrorEvent{
		Mode:      mode.Name,
		Error:     err.Error(),
		Timestamp: time.Now().Format(time.RFC3339),
	})

	return status.Status{
		Label:       mode.Name + " error",
		Color:       status.Color{R: 1},
		Description: err.Error(),
		Tone:        status.NewTone(status.NoteA4),
	}, true
}

// display applies the status to the devices. Tones play for a fixed short
// duration. Device write failures are logged and otherwise ignored.
func (c *Controller) display(ctx context.Context, st status.Status) {
	if err := c.led.SetColor(st.Color); err != nil {
		c.logger.Warn("LED write failed", "error", err)
	}
	c.logger.Info(st.Label, "description", st.Description, "tone", st.Tone.String())

	if st.Tone == nil {
		if err := c.buzzer.Stop(); err != nil {
			c.logger.Warn("Buzzer stop failed", "error", err)
		}
		return
	}

	if err := c.buzzer.Play(st.Tone.Frequency); err != nil {
		c.logger.Warn("Buzzer write failed", "error", err)
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(toneDuration):
	}
	if err := c.buzzer.Stop(); err != nil {
		c.logger.Warn("Buzzer stop failed", "error", err)
	}
}

// record stores the status for the API and publishes it on the bus.
func (c *Controller) record(modeName string, st status.Status, failed bool) {
	now := time.Now()

	c.mu.Lock()
	c.lastStatus = st
	c.lastMode = modeName
	c.lastUpdated = now
	c.hasStatus = true
	c.mu.Unlock()

	var toneHz float64
	if st.Tone != nil {
		toneHz = st.Tone.Frequency
	}
	if c.metrics != nil {
		c.metrics.LEDColor.WithLabelValues("r").Set(st.Color.R)
		c.metrics.LEDColor.WithLabelValues("g").Set(st.Color.G)
		c.metrics.LEDColor.WithLabelValues("b").Set(st.Color.B)
		c.metrics.ToneFrequency.Set(toneHz)
	}

	c.bus.Publish(events.StatusUpdatedEvent{
		Mode:        modeName,
		Label:       st.Label,
		Description: st.Description,
		R:           st.Color.R,
		G:           st.Color.G,
		B:           st.Color.B,
		ToneHz:      toneHz,
		Failed:      failed,
		Timestamp:   now.Format(time.RFC3339),
	})
}

// shutdown silences and blanks the devices on loop exit.
func (c *Controller) shutdown() {
	if err := c.buzzer.Stop(); err != nil {
		c.logger.Debug("Buzzer stop on shutdown failed", "error", err)
	}
	if err := c.led.SetColor(status.Color{}); err != nil {
		c.logger.Debug("LED blank on shutdown failed", "error", err)
	}
	c.logger.Info("Ambient controller stopped")
}

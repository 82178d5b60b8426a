package events

// Event type constants for kelindar/event.
const (
	TypeButtonPressed uint32 = iota + 1
	TypeModeChanged
	TypeStatusUpdated
	TypeFetchError
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ButtonPressedEvent is published from the GPIO edge callback (or the API)
// whenever the mode button fires. The controller consumes it; the callback
// context never touches loop state directly.
type ButtonPressedEvent struct {
	Origin    string `json:"origin" example:"gpio" doc:"What triggered the press: gpio or api"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Press timestamp"`
}

// Type returns the event type identifier for ButtonPressedEvent.
func (e ButtonPressedEvent) Type() uint32 { return TypeButtonPressed }

// ModeChangedEvent records a mode index change.
type ModeChangedEvent struct {
	Mode      string `json:"mode" example:"Weather" doc:"Name of the newly selected mode"`
	Index     int    `json:"index" example:"1" doc:"New mode index"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ModeChangedEvent.
func (e ModeChangedEvent) Type() uint32 { return TypeModeChanged }

// StatusUpdatedEvent carries the status the hardware just displayed.
type StatusUpdatedEvent struct {
	Mode        string  `json:"mode" example:"System health" doc:"Mode that produced the status"`
	Label       string  `json:"label" example:"System health" doc:"Status label"`
	Description string  `json:"description" example:"5m load: 0.42, Disk used: 61%" doc:"Human-readable summary"`
	R           float64 `json:"r" doc:"Red LED channel in [0,1]"`
	G           float64 `json:"g" doc:"Green LED channel in [0,1]"`
	B           float64 `json:"b" doc:"Blue LED channel in [0,1]"`
	ToneHz      float64 `json:"tone_hz,omitempty" doc:"Buzzer frequency in Hz, 0 when silent"`
	Failed      bool    `json:"failed" doc:"True when this is a synthesized fetch-error status"`
	Timestamp   string  `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Display timestamp"`
}

// Type returns the event type identifier for StatusUpdatedEvent.
func (e StatusUpdatedEvent) Type() uint32 { return TypeStatusUpdated }

// FetchErrorEvent records a transient source failure. The loop keeps running.
type FetchErrorEvent struct {
	Mode      string `json:"mode" example:"Weather" doc:"Mode whose fetch failed"`
	Error     string `json:"error" example:"context deadline exceeded" doc:"Error description"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for FetchErrorEvent.
func (e FetchErrorEvent) Type() uint32 { return TypeFetchError }

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"ambientpi/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint streaming bus
// events: button presses, mode changes, status updates, and fetch errors.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of button presses, mode changes, status updates, and fetch errors",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"button-pressed": events.ButtonPressedEvent{},
		"mode-changed":   events.ModeChangedEvent{},
		"status-updated": events.StatusUpdatedEvent{},
		"fetch-error":    events.FetchErrorEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 16)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.ButtonPressedEvent](s.options.Bus, eventCh),
			events.SubscribeToChannel[events.ModeChangedEvent](s.options.Bus, eventCh),
			events.SubscribeToChannel[events.StatusUpdatedEvent](s.options.Bus, eventCh),
			events.SubscribeToChannel[events.FetchErrorEvent](s.options.Bus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// Replay the latest status so a new client renders immediately.
		if st, mode, updated, ok := s.options.Hub.LastStatus(); ok {
			var toneHz float64
			if st.Tone != nil {
				toneHz = st.Tone.Frequency
			}
			initial := events.StatusUpdatedEvent{
				Mode:        mode,
				Label:       st.Label,
				Description: st.Description,
				R:           st.Color.R,
				G:           st.Color.G,
				B:           st.Color.B,
				ToneHz:      toneHz,
				Timestamp:   updated.Format(time.RFC3339),
			}
			if err := send.Data(initial); err != nil {
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}

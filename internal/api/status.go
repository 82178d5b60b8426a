package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"ambientpi/internal/events"
)

// registerStatusRoutes registers the current-status endpoint.
func (s *Server) registerStatusRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Current Status",
		Description: "Get the status currently shown on the LED and buzzer",
		Tags:        []string{"status"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*StatusResponse, error) {
		st, mode, updated, ok := s.options.Hub.LastStatus()
		if !ok {
			return nil, huma.Error404NotFound("No status displayed yet")
		}

		var toneHz float64
		if st.Tone != nil {
			toneHz = st.Tone.Frequency
		}
		return &StatusResponse{
			Body: StatusData{
				Mode:        mode,
				Label:       st.Label,
				Description: st.Description,
				R:           st.Color.R,
				G:           st.Color.G,
				B:           st.Color.B,
				ToneHz:      toneHz,
				UpdatedAt:   updated.Format(time.RFC3339),
			},
		}, nil
	})
}

// registerModeRoutes registers mode listing and advancing.
func (s *Server) registerModeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-modes",
		Method:      http.MethodGet,
		Path:        "/api/modes",
		Summary:     "List Modes",
		Description: "List configured modes in cycle order with the current selection",
		Tags:        []string{"modes"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*ModeListResponse, error) {
		_, currentIndex := s.options.Registry.Current()
		list := s.options.Registry.List()

		out := make([]ModeData, len(list))
		for i, mode := range list {
			out[i] = ModeData{
				Name:     mode.Name,
				Index:    i,
				Interval: mode.Interval.String(),
				Current:  i == currentIndex,
			}
		}
		return &ModeListResponse{
			Body: ModeListData{Modes: out, Count: len(out)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "advance-mode",
		Method:      http.MethodPost,
		Path:        "/api/modes/advance",
		Summary:     "Advance Mode",
		Description: "Switch to the next mode, same as pressing the physical button",
		Tags:        []string{"modes"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*AdvanceResponse, error) {
		// Same path as the hardware button so metrics and subscribers
		// see one kind of press.
		s.options.Bus.Publish(events.ButtonPressedEvent{
			Origin:    "api",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return &AdvanceResponse{
			Body: AdvanceData{Message: "Mode advance requested"},
		}, nil
	})
}

package api

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ambientpi/internal/events"
	"ambientpi/internal/modes"
	"ambientpi/internal/status"
)

type stubSource struct {
	name string
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(_ context.Context) (status.Status, error) {
	return status.Status{Label: s.name}, nil
}

// fakeHub implements StatusProvider with a fixed snapshot.
type fakeHub struct {
	status  status.Status
	mode    string
	updated time.Time
	ok      bool
}

func (h *fakeHub) LastStatus() (status.Status, string, time.Time, bool) {
	return h.status, h.mode, h.updated, h.ok
}

func newTestServer(t *testing.T, hub *fakeHub, username, password string) (*Server, *httptest.Server, *events.Bus) {
	t.Helper()

	registry, err := modes.NewRegistry([]modes.Mode{
		{Name: "System health", Source: stubSource{name: "System health"}, Interval: time.Minute},
		{Name: "Weather", Source: stubSource{name: "Weather"}, Interval: 10 * time.Minute},
	}, 0)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	bus := events.New()
	server := NewServer(&Options{
		AuthUsername: username,
		AuthPassword: password,
		Hub:          hub,
		Registry:     registry,
		Bus:          bus,
	})

	ts := httptest.NewServer(server.GetMux())
	t.Cleanup(ts.Close)
	return server, ts, bus
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func doRequest(t *testing.T, method, url, auth string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthEndpoint_NoAuthRequired(t *testing.T) {
	_, ts, _ := newTestServer(t, &fakeHub{}, "admin", "secret")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
}

func TestStatusEndpoint_RequiresAuth(t *testing.T) {
	_, ts, _ := newTestServer(t, &fakeHub{}, "admin", "secret")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/status", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", resp.StatusCode)
	}
	if got := resp.Header.Get("WWW-Authenticate"); !strings.Contains(got, "Basic") {
		t.Errorf("WWW-Authenticate = %q, want Basic challenge", got)
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/status", basicAuth("admin", "wrong"))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", resp.StatusCode)
	}
}

func TestStatusEndpoint_NoStatusYet(t *testing.T) {
	_, ts, _ := newTestServer(t, &fakeHub{ok: false}, "", "")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/status", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d before first display, want 404", resp.StatusCode)
	}
}

func TestStatusEndpoint_ReturnsLastStatus(t *testing.T) {
	hub := &fakeHub{
		status: status.Status{
			Label:       "Weather",
			Description: "Partly cloudy, 18.2°C",
			Color:       status.Color{R: 0.4, G: 0.8, B: 0.5},
			Tone:        status.NewTone(status.NoteG4),
		},
		mode:    "Weather",
		updated: time.Now(),
		ok:      true,
	}
	_, ts, _ := newTestServer(t, hub, "admin", "secret")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/status", basicAuth("admin", "secret"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body StatusData
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Mode != "Weather" || body.Label != "Weather" {
		t.Errorf("mode/label = %q/%q, want Weather", body.Mode, body.Label)
	}
	if body.R != 0.4 || body.ToneHz != status.NoteG4 {
		t.Errorf("r = %v tone = %v, want 0.4 / %v", body.R, body.ToneHz, status.NoteG4)
	}
}

func TestModesEndpoint_ListsAllModes(t *testing.T) {
	_, ts, _ := newTestServer(t, &fakeHub{}, "", "")

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/modes", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("modes status = %d, want 200", resp.StatusCode)
	}

	var body ModeListData
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Count != 2 || len(body.Modes) != 2 {
		t.Fatalf("count = %d, want 2 modes", body.Count)
	}
	if !body.Modes[0].Current || body.Modes[1].Current {
		t.Errorf("current flag should mark only index 0: %+v", body.Modes)
	}
	if body.Modes[1].Interval != "10m0s" {
		t.Errorf("interval = %q, want 10m0s", body.Modes[1].Interval)
	}
}

func TestAdvanceEndpoint_PublishesButtonPress(t *testing.T) {
	_, ts, bus := newTestServer(t, &fakeHub{}, "", "")

	pressed := make(chan events.ButtonPressedEvent, 1)
	unsub := bus.Subscribe(func(e events.ButtonPressedEvent) { pressed <- e })
	defer unsub()

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/modes/advance", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance status = %d, want 200", resp.StatusCode)
	}

	select {
	case e := <-pressed:
		if e.Origin != "api" {
			t.Errorf("origin = %q, want api", e.Origin)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("advance did not publish a button press")
	}
}

func TestVersionEndpoint(t *testing.T) {
	_, ts, _ := newTestServer(t, &fakeHub{}, "admin", "secret")

	// Version is public even when auth is configured.
	resp := doRequest(t, http.MethodGet, ts.URL+"/api/version", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("version status = %d, want 200", resp.StatusCode)
	}

	var body VersionData
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Version == "" || body.GoVersion == "" {
		t.Errorf("version payload incomplete: %+v", body)
	}
}

func TestSSEEndpoint_StreamsBusEvents(t *testing.T) {
	hub := &fakeHub{
		status:  status.Status{Label: "System health", Color: status.Color{G: 1}},
		mode:    "System health",
		updated: time.Now(),
		ok:      true,
	}
	_, ts, bus := newTestServer(t, hub, "", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("SSE request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("SSE status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	// Publish after the handler subscribes; retry until the reader sees it.
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bus.Publish(events.ModeChangedEvent{Mode: "Weather", Index: 1, Timestamp: time.Now().Format(time.RFC3339)})
			}
		}
	}()

	scanner := bufio.NewScanner(resp.Body)
	sawInitial := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, `"label":"System health"`) {
			sawInitial = true
		}
		if strings.Contains(line, `"mode":"Weather"`) {
			if !sawInitial {
				t.Error("bus event arrived before the initial status replay")
			}
			return
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF && ctx.Err() == nil {
		t.Fatalf("scan failed: %v", err)
	}
	t.Fatal("never received the published mode change")
}

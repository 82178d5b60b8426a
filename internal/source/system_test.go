package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeThermal(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "temp")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write thermal file: %v", err)
	}
	return path
}

func TestSystemSource_Fetch(t *testing.T) {
	src := NewSystemSource(testLogger(),
		WithRootPath("/"),
		WithThermalZone(writeThermal(t, "48000\n")),
	)

	st, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if st.Label != "System health" {
		t.Errorf("Label = %q, want System health", st.Label)
	}
	for _, want := range []string{"5m load:", "Disk used:", "CPU temp: 48.0°C"} {
		if !strings.Contains(st.Description, want) {
			t.Errorf("Description %q missing %q", st.Description, want)
		}
	}
	for name, v := range map[string]float64{"r": st.Color.R, "g": st.Color.G, "b": st.Color.B} {
		if v < 0 || v > 1 {
			t.Errorf("channel %s out of range: %.3f", name, v)
		}
	}
}

func TestSystemSource_MissingThermalZoneTolerated(t *testing.T) {
	src := NewSystemSource(testLogger(),
		WithRootPath("/"),
		WithThermalZone(filepath.Join(t.TempDir(), "does-not-exist")),
	)

	st, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if strings.Contains(st.Description, "CPU temp") {
		t.Errorf("Description %q mentions CPU temp without a thermal zone", st.Description)
	}
}

func TestSystemSource_GarbageThermalReading(t *testing.T) {
	src := NewSystemSource(testLogger(),
		WithRootPath("/"),
		WithThermalZone(writeThermal(t, "not-a-number")),
	)

	st, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if strings.Contains(st.Description, "CPU temp") {
		t.Errorf("Description %q includes unparseable temperature", st.Description)
	}
}

func TestSystemSource_HotCPURaisesSeverity(t *testing.T) {
	cool := NewSystemSource(testLogger(), WithThermalZone(writeThermal(t, "30000")))
	hot := NewSystemSource(testLogger(), WithThermalZone(writeThermal(t, "80000")))

	coolStatus, err := cool.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	hotStatus, err := hot.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// 80°C normalizes to severity 1.0, which dominates whatever load and
	// disk report on the test machine.
	if hotStatus.Color.R != 1.0 {
		t.Errorf("hot CPU red channel = %.3f, want 1.0", hotStatus.Color.R)
	}
	if hotStatus.Tone == nil {
		t.Error("hot CPU should produce a tone")
	}
	if hotStatus.Color.R < coolStatus.Color.R {
		t.Errorf("hot CPU should not lower severity: hot %.3f < cool %.3f",
			hotStatus.Color.R, coolStatus.Color.R)
	}
}

func TestSystemSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewSystemSource(testLogger())
	if _, err := src.Fetch(ctx); err == nil {
		t.Fatal("Fetch should fail with a cancelled context")
	}
}

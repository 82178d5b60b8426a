package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

type testOptions struct {
	Config string `help:"Config file path"`

	Port           string  `toml:"server.port" env:"SERVER_PORT"`
	Latitude       float64 `toml:"weather.latitude" env:"WEATHER_LATITUDE"`
	SystemInterval string  `toml:"modes.system_interval" env:"MODES_SYSTEM_INTERVAL"`
	Hardware       bool    `toml:"hardware.enabled" env:"HARDWARE_ENABLED"`
	ButtonPin      int     `toml:"hardware.button_pin" env:"HARDWARE_BUTTON_PIN"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_FromTOML(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":9000"

[weather]
latitude = 40.7128

[modes]
system_interval = "45s"

[hardware]
enabled = true
button_pin = 23
`)

	opts := &testOptions{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.Port != ":9000" {
		t.Errorf("Port = %q, want :9000", opts.Port)
	}
	if opts.Latitude != 40.7128 {
		t.Errorf("Latitude = %v, want 40.7128", opts.Latitude)
	}
	if opts.SystemInterval != "45s" {
		t.Errorf("SystemInterval = %q, want 45s", opts.SystemInterval)
	}
	if !opts.Hardware {
		t.Error("Hardware = false, want true")
	}
	if opts.ButtonPin != 23 {
		t.Errorf("ButtonPin = %d, want 23", opts.ButtonPin)
	}
}

func TestLoadConfig_EnvOverridesTOML(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":9000"
`)

	t.Setenv("AMBIENTPI_SERVER_PORT", ":7777")
	t.Setenv("AMBIENTPI_WEATHER_LATITUDE", "-33.87")

	opts := &testOptions{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.Port != ":7777" {
		t.Errorf("Port = %q, want env override :7777", opts.Port)
	}
	if opts.Latitude != -33.87 {
		t.Errorf("Latitude = %v, want -33.87", opts.Latitude)
	}
}

func TestLoadConfig_CLIFlagWinsOverTOMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":8080"

[hardware]
button_pin = 23
`)
	t.Setenv("AMBIENTPI_SERVER_PORT", ":7777")

	cmd := &cobra.Command{}
	cmd.Flags().String("port", "", "")
	if err := cmd.Flags().Set("port", ":9999"); err != nil {
		t.Fatalf("Set flag failed: %v", err)
	}

	opts := &testOptions{Config: path, Port: ":9999"}
	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.Port != ":9999" {
		t.Errorf("Port = %q, want CLI value :9999 kept over TOML and env", opts.Port)
	}
	// Fields not set on the CLI still come from the file.
	if opts.ButtonPin != 23 {
		t.Errorf("ButtonPin = %d, want 23 from TOML", opts.ButtonPin)
	}
}

func TestLoadConfig_MissingFileIsNotFatal(t *testing.T) {
	opts := &testOptions{Config: "/nonexistent/config.toml", Port: ":8090"}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig with missing file failed: %v", err)
	}
	if opts.Port != ":8090" {
		t.Errorf("Port = %q, want default preserved", opts.Port)
	}
}

func TestFlagKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Port", "port"},
		{"port", "port"},
		{"SystemInterval", "systeminterval"},
		{"system-interval", "systeminterval"},
		{"PWMChipPath", "pwmchippath"},
		{"pwm-chip-path", "pwmchippath"},
	}
	for _, tt := range tests {
		if got := flagKey(tt.in); got != tt.want {
			t.Errorf("flagKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

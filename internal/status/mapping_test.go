package status

import (
	"math"
	"testing"
)

func TestSeverityColor_Monotonic(t *testing.T) {
	prev := SeverityColor(0)
	for i := 1; i <= 100; i++ {
		severity := float64(i) / 100.0
		c := SeverityColor(severity)

		if c.R < prev.R {
			t.Errorf("red decreased at severity %.2f: %.3f -> %.3f", severity, prev.R, c.R)
		}
		if c.B > prev.B {
			t.Errorf("blue increased at severity %.2f: %.3f -> %.3f", severity, prev.B, c.B)
		}
		prev = c
	}
}

func TestSeverityColor_Clamped(t *testing.T) {
	low := SeverityColor(-3.0)
	if low != SeverityColor(0) {
		t.Errorf("SeverityColor(-3) = %v, want same as SeverityColor(0)", low)
	}
	high := SeverityColor(7.0)
	if high != SeverityColor(1) {
		t.Errorf("SeverityColor(7) = %v, want same as SeverityColor(1)", high)
	}
}

func TestSeverityTone_Threshold(t *testing.T) {
	tests := []struct {
		severity float64
		silent   bool
	}{
		{0.0, true},
		{0.1, true},
		{0.19, true},
		{0.2, false},
		{0.5, false},
		{1.0, false},
	}

	for _, tt := range tests {
		tone := SeverityTone(tt.severity)
		if (tone == nil) != tt.silent {
			t.Errorf("SeverityTone(%.2f) silent = %v, want %v", tt.severity, tone == nil, tt.silent)
		}
	}
}

func TestSeverityTone_StrictlyRising(t *testing.T) {
	prev := SeverityTone(0.2)
	for i := 21; i <= 100; i++ {
		severity := float64(i) / 100.0
		tone := SeverityTone(severity)
		if tone == nil {
			t.Fatalf("SeverityTone(%.2f) = nil above threshold", severity)
		}
		if tone.Frequency <= prev.Frequency {
			t.Errorf("frequency not rising at severity %.2f: %.3f <= %.3f",
				severity, tone.Frequency, prev.Frequency)
		}
		prev = tone
	}

	if f := SeverityTone(1.0).Frequency; f != NoteC6 {
		t.Errorf("SeverityTone(1.0) = %.3f, want C6 (%.3f)", f, NoteC6)
	}
}

func TestTemperatureColor_Clamped(t *testing.T) {
	if TemperatureColor(-20, 0) != TemperatureColor(-10, 0) {
		t.Error("color(-20) != color(-10); temperature should clamp at -10")
	}
	if TemperatureColor(50, 0) != TemperatureColor(35, 0) {
		t.Error("color(50) != color(35); temperature should clamp at 35")
	}
}

func TestTemperatureColor_Gradient(t *testing.T) {
	cold := TemperatureColor(-10, 0)
	hot := TemperatureColor(35, 0)

	if cold.B <= cold.R {
		t.Errorf("cold should be blue-dominant, got %+v", cold)
	}
	if hot.R <= hot.B {
		t.Errorf("hot should be red-dominant, got %+v", hot)
	}
}

func TestTemperatureColor_PrecipitationBlend(t *testing.T) {
	dry := TemperatureColor(30, 0)
	wet := TemperatureColor(30, 100)

	if wet.R >= dry.R {
		t.Errorf("rain should suppress red: dry %.3f, wet %.3f", dry.R, wet.R)
	}
	if wet.B <= dry.B {
		t.Errorf("rain should lift blue: dry %.3f, wet %.3f", dry.B, wet.B)
	}
	if wet.B > 1.0 {
		t.Errorf("blue out of range: %.3f", wet.B)
	}
}

func TestTemperatureColor_InRange(t *testing.T) {
	for temp := -30.0; temp <= 60.0; temp += 5 {
		for precip := 0.0; precip <= 100.0; precip += 25 {
			c := TemperatureColor(temp, precip)
			for name, v := range map[string]float64{"r": c.R, "g": c.G, "b": c.B} {
				if v < 0 || v > 1 {
					t.Errorf("channel %s out of range at temp=%.0f precip=%.0f: %.3f",
						name, temp, precip, v)
				}
			}
		}
	}
}

func TestWindTone(t *testing.T) {
	if tone := WindTone(0); tone != nil {
		t.Errorf("WindTone(0) = %v, want nil", tone)
	}
	if tone := WindTone(5); tone != nil {
		t.Errorf("WindTone(5) = %v, want nil", tone)
	}

	tone := WindTone(60)
	if tone == nil {
		t.Fatal("WindTone(60) = nil")
	}
	want := NoteG4 * 1.5
	if math.Abs(tone.Frequency-want) > 1e-9 {
		t.Errorf("WindTone(60) = %.4f, want base*1.5 = %.4f", tone.Frequency, want)
	}

	// Clamp above the maximum speed.
	if gale := WindTone(120); gale.Frequency != tone.Frequency {
		t.Errorf("WindTone(120) = %.4f, want clamp to WindTone(60) = %.4f",
			gale.Frequency, tone.Frequency)
	}

	// Rising between the bounds.
	breeze := WindTone(10)
	if breeze.Frequency <= NoteG4 {
		t.Errorf("WindTone(10) = %.4f, want above G4", breeze.Frequency)
	}
	if breeze.Frequency >= tone.Frequency {
		t.Errorf("WindTone(10) = %.4f, want below WindTone(60)", breeze.Frequency)
	}
}

func TestNormalizeCPUTemperature(t *testing.T) {
	tests := []struct {
		tempC float64
		want  float64
	}{
		{40, 0},
		{50, 0},
		{65, 0.5},
		{80, 1},
		{95, 1},
	}

	for _, tt := range tests {
		if got := NormalizeCPUTemperature(tt.tempC); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeCPUTemperature(%.0f) = %.3f, want %.3f", tt.tempC, got, tt.want)
		}
	}
}

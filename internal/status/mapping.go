package status

import "math"

// Severity thresholds and ranges for the system health mapping.
const (
	// toneThreshold is the severity below which the buzzer stays silent.
	toneThreshold = 0.2

	// CPU temperatures below cpuTempFloor are fine, above cpuTempCeil are
	// critical.
	cpuTempFloor = 50.0
	cpuTempCeil  = 80.0
)

// Weather mapping constants.
const (
	// Outdoor temperature clamp range for the blue-to-red gradient.
	weatherTempMin = -10.0
	weatherTempMax = 35.0

	// Wind speeds in km/h mapped onto a rising pitch. At windSpeedMax the
	// frequency is exactly 1.5x the base pitch (a musical fifth up).
	windSpeedMin = 5.0
	windSpeedMax = 60.0
	windToneSpan = 1.5
)

// SeverityColor maps a normalized severity in [0, 1] to a green-to-red
// gradient. Red rises monotonically with severity, blue falls away.
func SeverityColor(severity float64) Color {
	severity = Clamp(severity, 0, 1)
	return Color{
		R: severity,
		G: 1.0 - 0.4*severity,
		B: math.Max(0, 1.0-severity*1.2),
	}
}

// SeverityTone maps severity to a tone rising linearly from E4 to C6.
// Below the threshold the buzzer stays silent.
func SeverityTone(severity float64) *Tone {
	if severity < toneThreshold {
		return nil
	}
	severity = Clamp(severity, 0, 1)
	return NewTone(NoteE4 + (NoteC6-NoteE4)*severity)
}

// NormalizeCPUTemperature converts a CPU temperature in Celsius to a
// severity contribution in [0, 1].
func NormalizeCPUTemperature(tempC float64) float64 {
	return Clamp((tempC-cpuTempFloor)/(cpuTempCeil-cpuTempFloor), 0, 1)
}

// TemperatureColor maps an outdoor temperature to a blue(cold)-to-red(hot)
// gradient, blended toward teal as the precipitation probability (percent,
// 0-100) rises.
func TemperatureColor(tempC, precipProbability float64) Color {
	clamped := Clamp(tempC, weatherTempMin, weatherTempMax)
	n := (clamped - weatherTempMin) / (weatherTempMax - weatherTempMin)

	red := n
	blue := 1.0 - n
	green := 0.3 + 0.7*(1.0-math.Abs(n-0.5)*2)

	p := Clamp(precipProbability/100.0, 0, 1)
	red *= 1.0 - p
	green = green*(1.0-0.3*p) + 0.3*p
	blue = math.Min(1.0, blue+0.7*p)

	return Color{R: red, G: green, B: blue}
}

// WindTone maps wind speed in km/h to a pitch between G4 and a fifth above
// it, scaled exponentially. Calm air stays silent.
func WindTone(speedKmh float64) *Tone {
	if speedKmh <= windSpeedMin {
		return nil
	}
	clamped := Clamp(speedKmh, windSpeedMin, windSpeedMax)
	scale := (clamped - windSpeedMin) / (windSpeedMax - windSpeedMin)
	return NewTone(NoteG4 * math.Pow(windToneSpan, scale))
}

package domain

import (
	"math"
	"time"
)

const (
	pulsePeriod    = 2 * time.Second
	pulseAmplitude = 0.15

	// sunAngularSpeed is the cosmetic spin of the sun mesh in rad/s.
	sunAngularSpeed = 0.05

	markerBaseSize = 0.04
)

// Frame holds the cosmetic per-frame values for the sun and its marker.
// It is a pure function of elapsed time and intensity; nothing carries over
// between frames.
type Frame struct {
	Elapsed       time.Duration `json:"elapsed"`
	PulseScale    float64       `json:"pulse_scale"`
	MarkerSize    float64       `json:"marker_size"`
	MarkerOpacity float64       `json:"marker_opacity"`
	SunRotation   float64       `json:"sun_rotation"`
}

// PulseScale oscillates around 1 with a fixed period.
func PulseScale(elapsed time.Duration) float64 {
	phase := 2 * math.Pi * elapsed.Seconds() / pulsePeriod.Seconds()
	return 1 + pulseAmplitude*math.Sin(phase)
}

// SunRotation is the sun's Y-axis rotation in radians, wrapped to [0, 2π).
func SunRotation(elapsed time.Duration) float64 {
	return math.Mod(sunAngularSpeed*elapsed.Seconds(), 2*math.Pi)
}

// FrameAt computes the frame for a marker of the given intensity.
func FrameAt(elapsed time.Duration, intensity float64) Frame {
	if elapsed < 0 {
		elapsed = 0
	}
	pulse := PulseScale(elapsed)
	return Frame{
		Elapsed:       elapsed,
		PulseScale:    pulse,
		MarkerSize:    markerBaseSize * intensity * pulse,
		MarkerOpacity: math.Min(1, 0.5+0.1*intensity),
		SunRotation:   SunRotation(elapsed),
	}
}

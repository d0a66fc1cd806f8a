package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPulseScale(t *testing.T) {
	assert.InDelta(t, 1.0, PulseScale(0), floatTolerance)
	assert.InDelta(t, 1.15, PulseScale(500*time.Millisecond), floatTolerance)
	assert.InDelta(t, 0.85, PulseScale(1500*time.Millisecond), floatTolerance)
	assert.InDelta(t, PulseScale(300*time.Millisecond), PulseScale(2300*time.Millisecond), 1e-9, "period is 2s")
}

func TestSunRotation(t *testing.T) {
	assert.InDelta(t, 0, SunRotation(0), floatTolerance)
	assert.InDelta(t, 0.5, SunRotation(10*time.Second), floatTolerance)

	wrapped := SunRotation(time.Hour)
	assert.GreaterOrEqual(t, wrapped, 0.0)
	assert.Less(t, wrapped, 2*math.Pi)
}

func TestFrameAt(t *testing.T) {
	t.Run("pure", func(t *testing.T) {
		assert.Equal(t, FrameAt(1234*time.Millisecond, 5.6), FrameAt(1234*time.Millisecond, 5.6))
	})

	t.Run("size scales with intensity", func(t *testing.T) {
		small := FrameAt(0, 1)
		large := FrameAt(0, 5.6)
		assert.InDelta(t, 0.04, small.MarkerSize, floatTolerance)
		assert.InDelta(t, 0.04*5.6, large.MarkerSize, floatTolerance)
	})

	t.Run("opacity capped", func(t *testing.T) {
		assert.InDelta(t, 0.6, FrameAt(0, 1).MarkerOpacity, floatTolerance)
		assert.InDelta(t, 1.0, FrameAt(0, 20).MarkerOpacity, floatTolerance)
	})

	t.Run("negative elapsed clamps to zero", func(t *testing.T) {
		assert.Equal(t, FrameAt(0, 2), FrameAt(-time.Second, 2))
	})
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	// Park Street to Downtown Crossing, roughly 350m apart
	distance := DistanceMeters(42.356395, -71.062424, 42.355518, -71.060225)
	assert.InDelta(t, 205, distance, 15)

	assert.Zero(t, DistanceMeters(42.0, -71.0, 42.0, -71.0))
}

func TestInitialBearing(t *testing.T) {
	assert.InDelta(t, 0, InitialBearing(42.0, -71.0, 43.0, -71.0), 0.01)
	assert.InDelta(t, 180, InitialBearing(43.0, -71.0, 42.0, -71.0), 0.01)
	assert.InDelta(t, 90, InitialBearing(42.0, -71.0, 42.0, -70.0), 1)
	assert.InDelta(t, 270, InitialBearing(42.0, -70.0, 42.0, -71.0), 1)
}

func TestMetersToFeet(t *testing.T) {
	assert.Equal(t, 3281, MetersToFeet(1000))
	assert.Equal(t, 0, MetersToFeet(0))
}

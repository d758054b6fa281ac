package hastus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatePlaneToLatLon(t *testing.T) {
	// Mass Ave @ Columbus Ave
	lat, lon := StatePlaneToLatLon(768989.0, 2945910.0)
	assert.InDelta(t, 42.330970, lat, 1e-4)
	assert.InDelta(t, -71.082752, lon, 1e-4)

	// Tremont St opp Temple Pl
	lat, lon = StatePlaneToLatLon(774308.2, 2954951.1)
	assert.InDelta(t, 42.355706, lat, 1e-4)
	assert.InDelta(t, -71.062909, lon, 1e-4)
}

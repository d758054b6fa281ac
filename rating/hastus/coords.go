package hastus

import "math"

// Stop locations are exported in the NAD83 / Massachusetts Mainland state
// plane system (EPSG 2249), in US survey feet. StatePlaneToLatLon inverts
// the Lambert Conformal Conic (2SP) projection, EPSG method 9802.
const (
	grs80A    = 6378137.0      // semi-major axis, meters
	grs80InvF = 298.257222101  // inverse flattening
	usftToM   = 1200.0 / 3937.0

	spFalseEastingM  = 200000.0
	spFalseNorthingM = 750000.0
)

var (
	grs80F  = 1 / grs80InvF
	grs80E2 = 2*grs80F - grs80F*grs80F
	grs80E  = math.Sqrt(grs80E2)

	spLat1 = radians(41 + 43.0/60) // first standard parallel, 41d43'N
	spLat2 = radians(42 + 41.0/60) // second standard parallel, 42d41'N
	spLat0 = radians(41.0)         // latitude of false origin
	spLon0 = radians(-71.5)        // longitude of false origin

	spN    = (math.Log(lccM(spLat1)) - math.Log(lccM(spLat2))) / (math.Log(lccT(spLat1)) - math.Log(lccT(spLat2)))
	spBigF = lccM(spLat1) / (spN * math.Pow(lccT(spLat1), spN))
	spRho0 = grs80A * spBigF * math.Pow(lccT(spLat0), spN)
)

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func lccM(phi float64) float64 {
	sin := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-grs80E2*sin*sin)
}

func lccT(phi float64) float64 {
	sin := math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) /
		math.Pow((1-grs80E*sin)/(1+grs80E*sin), grs80E/2)
}

// StatePlaneToLatLon converts an easting/northing in US survey feet to a
// latitude/longitude in degrees.
func StatePlaneToLatLon(eastingFt, northingFt float64) (float64, float64) {
	easting := eastingFt*usftToM - spFalseEastingM
	northing := northingFt*usftToM - spFalseNorthingM

	rho := math.Copysign(math.Hypot(easting, spRho0-northing), spN)
	tPrime := math.Pow(rho/(grs80A*spBigF), 1/spN)
	theta := math.Atan2(easting, spRho0-northing)

	lon := theta/spN + spLon0

	// iterate the latitude until it converges
	phi := math.Pi/2 - 2*math.Atan(tPrime)
	for i := 0; i < 10; i++ {
		sin := math.Sin(phi)
		phi = math.Pi/2 - 2*math.Atan(tPrime*math.Pow((1-grs80E*sin)/(1+grs80E*sin), grs80E/2))
	}

	return phi * 180 / math.Pi, lon * 180 / math.Pi
}

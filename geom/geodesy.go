package geom

import "math"

// Scales returns the length in meters of one degree of latitude and one
// degree of longitude at latDeg, using the usual WGS84 series fit.
// Values near the poles are meaningless but not guarded.
func Scales(latDeg float64) (latScale, lonScale float64) {
	lat := latDeg * math.Pi / 180
	latScale = 111132.92 - 559.82*math.Cos(2*lat) + 1.175*math.Cos(4*lat)
	lonScale = 111412.84*math.Cos(lat) - 93.5*math.Cos(3*lat)
	return latScale, lonScale
}

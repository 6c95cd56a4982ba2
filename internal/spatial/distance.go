package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	// EarthRadiusMeters is the equatorial radius the device protocol was built
	// with. Stored route distances were accumulated against this constant, so
	// it must not be swapped for the mean radius (6371000).
	EarthRadiusMeters = 6378000.0

	// KmhPerKnot is the nautical-mile-per-hour conversion factor
	KmhPerKnot = 1.852
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// KnotsToKmh converts speed from knots to kilometers per hour,
// rounded half-up to two decimal places
func KnotsToKmh(speedKnots float64) float64 {
	return math.Round(speedKnots*KmhPerKnot*100) / 100
}

// RoundCoordinate rounds a decimal-degree coordinate to 7 decimal places
func RoundCoordinate(deg float64) float64 {
	return math.Round(deg*1e7) / 1e7
}

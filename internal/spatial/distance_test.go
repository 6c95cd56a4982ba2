package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistanceZeroForSamePoint(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 48.1486, Lon: 17.1077},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 90, Lon: 0},
	}

	for _, p := range points {
		if d := HaversineDistance(p.Lat, p.Lon, p.Lat, p.Lon); d != 0 {
			t.Errorf("distance from (%v, %v) to itself = %f, want 0", p.Lat, p.Lon, d)
		}
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	a := Point{Lat: 48.0, Lon: 17.0}
	b := Point{Lat: 47.5, Lon: 19.05}

	ab := HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
	ba := HaversineDistance(b.Lat, b.Lon, a.Lat, a.Lon)

	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance is not symmetric: %f vs %f", ab, ba)
	}
}

func TestHaversineDistanceKnownSegment(t *testing.T) {
	// One upload interval of city driving
	d := HaversineDistance(48.0, 17.0, 48.001, 17.001)
	if d < 120 || d > 145 {
		t.Errorf("expected roughly 130m, got %f", d)
	}

	// A degree of latitude at the equator under the protocol's radius
	d = HaversineDistance(0, 0, 1, 0)
	want := EarthRadiusMeters * math.Pi / 180
	if math.Abs(d-want) > 1 {
		t.Errorf("degree of latitude = %f, want %f", d, want)
	}
}

func TestKnotsToKmh(t *testing.T) {
	tests := []struct {
		knots float64
		want  float64
	}{
		{0, 0},
		{1, 1.85},
		{10, 18.52},
		{5.5, 10.19},
		{27.3, 50.56},
	}

	for _, tt := range tests {
		if got := KnotsToKmh(tt.knots); got != tt.want {
			t.Errorf("KnotsToKmh(%v) = %v, want %v", tt.knots, got, tt.want)
		}
	}
}

func TestRoundCoordinate(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{48.123456789, 48.1234568},
		{17.98765432, 17.9876543},
		{-17.98765437, -17.9876544},
		{48.0, 48.0},
	}

	for _, tt := range tests {
		if got := RoundCoordinate(tt.in); got != tt.want {
			t.Errorf("RoundCoordinate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

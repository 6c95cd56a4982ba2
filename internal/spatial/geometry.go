package spatial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// Point represents a geographic point with latitude and longitude in decimal degrees
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point is a normalized lat/lng pair
func (p Point) Valid() bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}

// WKT returns the point as WKT, longitude first per SRID 4326 axis order
func (p Point) WKT() string {
	return fmt.Sprintf("POINT(%s %s)", formatCoord(p.Lon), formatCoord(p.Lat))
}

// ParsePointWKT parses a WKT POINT into a Point
func ParsePointWKT(wkt string) (Point, error) {
	body, err := wktBody(wkt, "POINT")
	if err != nil {
		return Point{}, err
	}
	return parseCoordPair(body)
}

// LineString is an ordered sequence of points, one per accepted position sample
type LineString struct {
	Points []Point
}

// NewLineString creates a line from the given points
func NewLineString(points ...Point) *LineString {
	return &LineString{Points: points}
}

// Append adds a vertex to the end of the line
func (l *LineString) Append(p Point) {
	l.Points = append(l.Points, p)
}

// Len returns the vertex count
func (l *LineString) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Points)
}

// LengthMeters returns the sum of great-circle segment lengths
func (l *LineString) LengthMeters() float64 {
	var total float64
	for i := 1; i < len(l.Points); i++ {
		a, b := l.Points[i-1], l.Points[i]
		total += HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
	}
	return total
}

// WKT returns the line as WKT. A single-point line is still encoded as a
// LINESTRING so that the stored geometry grows by plain vertex appends.
func (l *LineString) WKT() string {
	parts := make([]string, len(l.Points))
	for i, p := range l.Points {
		parts[i] = formatCoord(p.Lon) + " " + formatCoord(p.Lat)
	}
	return "LINESTRING(" + strings.Join(parts, ", ") + ")"
}

// ParseLineStringWKT parses a WKT LINESTRING into a LineString
func ParseLineStringWKT(wkt string) (*LineString, error) {
	body, err := wktBody(wkt, "LINESTRING")
	if err != nil {
		// Routes created before the line codec stored their first vertex as a POINT
		if p, perr := ParsePointWKT(wkt); perr == nil {
			return NewLineString(p), nil
		}
		return nil, err
	}

	line := &LineString{}
	for _, pair := range strings.Split(body, ",") {
		p, err := parseCoordPair(pair)
		if err != nil {
			return nil, err
		}
		line.Append(p)
	}
	return line, nil
}

func wktBody(wkt, keyword string) (string, error) {
	s := strings.TrimSpace(wkt)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, keyword) {
		return "", fmt.Errorf("not a %s: %q", keyword, wkt)
	}
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < open {
		return "", fmt.Errorf("malformed %s: %q", keyword, wkt)
	}
	return s[open+1 : close], nil
}

func parseCoordPair(pair string) (Point, error) {
	fields := strings.Fields(strings.TrimSpace(pair))
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("malformed coordinate pair: %q", pair)
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("malformed longitude: %q", fields[0])
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("malformed latitude: %q", fields[1])
	}
	return Point{Lat: lat, Lon: lon}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

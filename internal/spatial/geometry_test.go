package spatial

import "testing"

func TestPointWKTRoundTrip(t *testing.T) {
	p := Point{Lat: 48.1234567, Lon: 17.9876543}

	wkt := p.WKT()
	if wkt != "POINT(17.9876543 48.1234567)" {
		t.Errorf("unexpected WKT: %s", wkt)
	}

	parsed, err := ParsePointWKT(wkt)
	if err != nil {
		t.Fatalf("ParsePointWKT failed: %v", err)
	}
	if parsed != p {
		t.Errorf("round trip mismatch: %+v != %+v", parsed, p)
	}
}

func TestParsePointWKTRejectsGarbage(t *testing.T) {
	inputs := []string{
		"",
		"POINT()",
		"POINT(17.0)",
		"POINT(a b)",
		"LINESTRING(17 48, 18 48)",
	}

	for _, in := range inputs {
		if _, err := ParsePointWKT(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestLineStringWKTRoundTrip(t *testing.T) {
	line := NewLineString(
		Point{Lat: 48.0, Lon: 17.0},
		Point{Lat: 48.001, Lon: 17.001},
		Point{Lat: 48.002, Lon: 17.002},
	)

	parsed, err := ParseLineStringWKT(line.WKT())
	if err != nil {
		t.Fatalf("ParseLineStringWKT failed: %v", err)
	}
	if parsed.Len() != 3 {
		t.Fatalf("expected 3 vertices, got %d", parsed.Len())
	}
	for i, p := range parsed.Points {
		if p != line.Points[i] {
			t.Errorf("vertex %d mismatch: %+v != %+v", i, p, line.Points[i])
		}
	}
}

func TestSinglePointLineString(t *testing.T) {
	line := NewLineString(Point{Lat: 48.0, Lon: 17.0})

	if line.WKT() != "LINESTRING(17 48)" {
		t.Errorf("unexpected WKT: %s", line.WKT())
	}

	parsed, err := ParseLineStringWKT(line.WKT())
	if err != nil {
		t.Fatalf("ParseLineStringWKT failed: %v", err)
	}
	if parsed.Len() != 1 {
		t.Errorf("expected 1 vertex, got %d", parsed.Len())
	}
}

func TestParseLineStringAcceptsLegacyPoint(t *testing.T) {
	parsed, err := ParseLineStringWKT("POINT(17.5 48.5)")
	if err != nil {
		t.Fatalf("ParseLineStringWKT failed: %v", err)
	}
	if parsed.Len() != 1 {
		t.Fatalf("expected 1 vertex, got %d", parsed.Len())
	}
	if (parsed.Points[0] != Point{Lat: 48.5, Lon: 17.5}) {
		t.Errorf("unexpected vertex: %+v", parsed.Points[0])
	}
}

func TestLineStringAppendAndLength(t *testing.T) {
	line := NewLineString(Point{Lat: 48.0, Lon: 17.0})
	line.Append(Point{Lat: 48.001, Lon: 17.001})
	line.Append(Point{Lat: 48.002, Lon: 17.002})

	if line.Len() != 3 {
		t.Fatalf("expected 3 vertices, got %d", line.Len())
	}

	want := HaversineDistance(48.0, 17.0, 48.001, 17.001) +
		HaversineDistance(48.001, 17.001, 48.002, 17.002)
	if got := line.LengthMeters(); got != want {
		t.Errorf("LengthMeters = %f, want %f", got, want)
	}
}

func TestPointValid(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{Lat: 48, Lon: 17}, true},
		{Point{Lat: -90, Lon: 180}, true},
		{Point{Lat: 91, Lon: 0}, false},
		{Point{Lat: 0, Lon: 181}, false},
	}

	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("Valid(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

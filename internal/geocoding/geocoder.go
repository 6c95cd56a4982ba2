package geocoding

// Geocoder resolves coordinates to a place name. It is used only to stamp
// route start/end cities; a failing geocoder must never abort ingestion.
type Geocoder interface {
	CityByCoords(lat, lon float64) (string, error)
}

// StubGeocoder returns a fixed placeholder for every lookup. It stands in
// until a real reverse-geocoding backend is wired up.
type StubGeocoder struct {
	Placeholder string
}

// NewStubGeocoder creates a stub geocoder with the default placeholder
func NewStubGeocoder() *StubGeocoder {
	return &StubGeocoder{Placeholder: "CityName"}
}

// CityByCoords returns the configured placeholder
func (g *StubGeocoder) CityByCoords(lat, lon float64) (string, error) {
	return g.Placeholder, nil
}

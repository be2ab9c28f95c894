package models

// Location is a point on the globe, optionally annotated with address
// details from geocoding. Immutable once constructed.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// GeographicBounds is a lat/lon bounding box.
type GeographicBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether the location falls inside the bounds.
func (b GeographicBounds) Contains(loc Location) bool {
	return loc.Latitude <= b.North &&
		loc.Latitude >= b.South &&
		loc.Longitude <= b.East &&
		loc.Longitude >= b.West
}

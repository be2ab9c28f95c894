package geo

import (
	"math"
	"testing"

	"github.com/havenapp/haven/internal/models"
)

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.01, 0, false},
		{-90.01, 0, false},
		{0, 180.5, false},
		{0, -181, false},
	}
	for _, c := range cases {
		if got := ValidCoordinates(c.lat, c.lon); got != c.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", c.lat, c.lon, got, c.want)
		}
	}
}

func TestDistance_SamePoint(t *testing.T) {
	p := models.Location{Latitude: 37.0, Longitude: -122.0}
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0 distance, got %v", d)
	}
}

func TestDistance_OneDegreeLatitude(t *testing.T) {
	a := models.Location{Latitude: 0, Longitude: 0}
	b := models.Location{Latitude: 1, Longitude: 0}
	d := Distance(a, b)
	if math.Abs(d-111.32) > 0.01 {
		t.Errorf("expected ~111.32 km per degree latitude, got %v", d)
	}
}

func TestDistance_LongitudeScaleShrinksWithLatitude(t *testing.T) {
	equatorA := models.Location{Latitude: 0, Longitude: 0}
	equatorB := models.Location{Latitude: 0, Longitude: 1}
	northA := models.Location{Latitude: 60, Longitude: 0}
	northB := models.Location{Latitude: 60, Longitude: 1}

	de := Distance(equatorA, equatorB)
	dn := Distance(northA, northB)
	if dn >= de {
		t.Errorf("expected shorter longitude degree at 60N: equator=%v north=%v", de, dn)
	}
	// cos(60 deg) = 0.5
	if math.Abs(dn-de/2) > 0.01 {
		t.Errorf("expected half the equatorial distance at 60N, got %v vs %v", dn, de)
	}
}

func TestOffset_RoundTrip(t *testing.T) {
	origin := models.Location{Latitude: 34.05, Longitude: -118.25}
	for _, bearing := range []float64{0, math.Pi / 4, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		p := Offset(origin, bearing, 5)
		d := Distance(origin, p)
		if math.Abs(d-5) > 0.05 {
			t.Errorf("bearing %v: offset by 5 km measured %v km", bearing, d)
		}
	}
}

func TestGreatCircleDistance_KnownPair(t *testing.T) {
	la := models.Location{Latitude: 34.0522, Longitude: -118.2437}
	sf := models.Location{Latitude: 37.7749, Longitude: -122.4194}
	d := GreatCircleDistance(la, sf)
	// LA to SF is roughly 559 km.
	if d < 540 || d > 580 {
		t.Errorf("LA-SF great-circle distance out of range: %v", d)
	}
}

func TestBoundsContains(t *testing.T) {
	b := models.GeographicBounds{North: 38, South: 36, East: -121, West: -123}
	if !b.Contains(models.Location{Latitude: 37, Longitude: -122}) {
		t.Error("expected point inside bounds")
	}
	if b.Contains(models.Location{Latitude: 39, Longitude: -122}) {
		t.Error("expected point north of bounds to be outside")
	}
}

package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/havenapp/haven/internal/models"
)

const deviceLookupTimeout = 10 * time.Second

// PositionProvider reports the device's current coordinates, for
// example from a platform location service.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (latitude, longitude float64, err error)
}

// ReverseGeocoder resolves coordinates to a named location.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) models.Location
}

// CurrentDevice reads the device position and enriches it with a
// reverse-geocoded address. Position errors are surfaced to the caller;
// reverse-geocode failures degrade to a coordinates-only location.
func CurrentDevice(ctx context.Context, provider PositionProvider, geocoder ReverseGeocoder) (models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, deviceLookupTimeout)
	defer cancel()

	lat, lon, err := provider.CurrentPosition(ctx)
	if err != nil {
		return models.Location{}, fmt.Errorf("error reading device position: %w", err)
	}

	return geocoder.ReverseGeocode(ctx, lat, lon), nil
}

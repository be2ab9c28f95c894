// Package geo holds the flat-earth distance approximation used for
// regional lookups and the bearing offset used to scatter synthetic
// resources. Neither is suitable beyond ~100 km; callers needing real
// accuracy should use GreatCircleDistance.
package geo

import (
	"math"

	"github.com/havenapp/haven/internal/models"
)

// kmPerDegree is the latitude scale at the equator.
const kmPerDegree = 111.32

const earthRadiusKm = 6371

// ValidCoordinates reports whether lat/lon are inside the WGS84 ranges.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Distance returns the planar approximate distance in kilometers between
// two points. The longitude scale is corrected by cos(a.Latitude).
func Distance(a, b models.Location) float64 {
	dLat := (b.Latitude - a.Latitude) * kmPerDegree
	dLon := (b.Longitude - a.Longitude) * kmPerDegree * math.Cos(a.Latitude*math.Pi/180)
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Offset returns the point reached from origin by travelling distanceKm
// along the given bearing (radians from due east). Inverse of the
// Distance scale factors.
func Offset(origin models.Location, bearing, distanceKm float64) models.Location {
	latOffset := (distanceKm / kmPerDegree) * math.Cos(bearing)
	lonOffset := (distanceKm / (kmPerDegree * math.Cos(origin.Latitude*math.Pi/180))) * math.Sin(bearing)
	return models.Location{
		Latitude:  origin.Latitude + latOffset,
		Longitude: origin.Longitude + lonOffset,
	}
}

// GreatCircleDistance returns the haversine distance in kilometers.
func GreatCircleDistance(a, b models.Location) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

package api

import (
	"github.com/havenapp/haven/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(resources []models.EmergencyResource) FeatureCollection {
	features := make([]Feature, 0, len(resources))

	for _, r := range resources {
		props := map[string]any{
			"id":            r.ID,
			"name":          r.Name,
			"type":          string(r.Type),
			"address":       r.Location.Address,
			"phone":         r.Contact.Phone,
			"isOpen":        r.Availability.IsOpen,
			"services":      r.Services,
			"accessibility": r.Accessibility,
		}
		if r.Capacity != nil {
			props["capacity"] = *r.Capacity
			props["currentOccupancy"] = r.Availability.CurrentOccupancy
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{r.Location.Longitude, r.Location.Latitude},
			},
			Properties: props,
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// Package ingestion pulls earthquake alerts from the USGS GeoJSON
// feeds, both on demand for API requests and on a background poll that
// feeds the alert store.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/havenapp/haven/internal/models"
)

const defaultUSGSBaseURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary"

// ValidFeeds lists the USGS summary feeds the API accepts.
var ValidFeeds = []string{"significant_day", "all_day", "significant_week", "all_week", "significant_month"}

// ValidFeed reports whether feed names a supported USGS summary feed.
func ValidFeed(feed string) bool {
	for _, f := range ValidFeeds {
		if feed == f {
			return true
		}
	}
	return false
}

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}

type usgsProperties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // unix millis
	Title string  `json:"title"`
}

type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// USGSClient fetches a feed and converts its features into alerts.
type USGSClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewUSGSClient(baseURL string, timeout time.Duration) *USGSClient {
	if baseURL == "" {
		baseURL = defaultUSGSBaseURL
	}
	return &USGSClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves one USGS summary feed. Features without coordinates
// are skipped.
func (c *USGSClient) Fetch(ctx context.Context, feed string) ([]models.DisasterAlert, error) {
	if !ValidFeed(feed) {
		return nil, fmt.Errorf("invalid feed %q", feed)
	}

	url := fmt.Sprintf("%s/%s.geojson", c.baseURL, feed)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	alerts := make([]models.DisasterAlert, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		alerts = append(alerts, quakeAlert(f))
	}
	return alerts, nil
}

func quakeAlert(f usgsFeature) models.DisasterAlert {
	lon := f.Geometry.Coordinates[0]
	lat := f.Geometry.Coordinates[1]

	return models.DisasterAlert{
		ID:          f.ID,
		Type:        models.DisasterTypeEarthquake,
		Severity:    quakeSeverity(f.Properties.Mag),
		Title:       f.Properties.Title,
		Description: fmt.Sprintf("Magnitude %v earthquake", f.Properties.Mag),
		Location: models.Location{
			Latitude:  lat,
			Longitude: lon,
		},
		AffectedArea: models.GeographicBounds{
			North: lat + 1,
			South: lat - 1,
			East:  lon + 1,
			West:  lon - 1,
		},
		StartTime:    time.UnixMilli(f.Properties.Time).UTC(),
		Instructions: quakeInstructions(f.Properties.Mag),
		Source:       "USGS",
		IsActive:     true,
		Urgency:      models.UrgencyImmediate,
	}
}

func quakeSeverity(magnitude float64) models.AlertSeverity {
	switch {
	case magnitude >= 7:
		return models.SeverityExtreme
	case magnitude >= 6:
		return models.SeverityHigh
	case magnitude >= 4:
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

func quakeInstructions(magnitude float64) []string {
	if magnitude >= 6 {
		return []string{
			"Drop, cover, and hold on immediately",
			"Stay away from windows and heavy objects",
			"If outdoors, move to open area away from buildings",
			"After shaking stops, check for injuries and hazards",
			"Be prepared for aftershocks",
		}
	}
	return []string{
		"Drop, cover, and hold on if you feel strong shaking",
		"Check for damage after shaking stops",
		"Be aware of potential aftershocks",
	}
}

// Package geocode turns place-name queries into coordinates and back
// using the Nominatim (OpenStreetMap) service.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/havenapp/haven/internal/models"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	minQueryLength = 3
	maxSuggestions = 5
)

type nominatimAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	Country string `json:"country"`
}

func (a nominatimAddress) locality() string {
	if a.City != "" {
		return a.City
	}
	if a.Town != "" {
		return a.Town
	}
	return a.Village
}

type nominatimPlace struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}

// Client queries Nominatim. A descriptive User-Agent is required by
// the service's usage policy.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search returns up to 5 location suggestions for a free-text query.
// Queries shorter than 3 characters return no suggestions without
// hitting the service.
func (c *Client) Search(ctx context.Context, query string) ([]models.Location, error) {
	if len(query) < minQueryLength {
		return nil, nil
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(maxSuggestions))
	q.Set("addressdetails", "1")

	var places []nominatimPlace
	if err := c.get(ctx, "/search", q, &places); err != nil {
		return nil, fmt.Errorf("error searching locations: %w", err)
	}

	locations := make([]models.Location, 0, len(places))
	for _, p := range places {
		loc, err := p.toLocation()
		if err != nil {
			continue
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// ReverseGeocode resolves coordinates to a named location. Lookup
// failures are not fatal; the caller still gets a coordinates-only
// location.
func (c *Client) ReverseGeocode(ctx context.Context, latitude, longitude float64) models.Location {
	loc := models.Location{Latitude: latitude, Longitude: longitude}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("addressdetails", "1")

	var place nominatimPlace
	if err := c.get(ctx, "/reverse", q, &place); err != nil {
		return loc
	}

	loc.City = place.Address.locality()
	loc.State = place.Address.State
	loc.Country = place.Address.Country
	loc.Address = place.DisplayName
	return loc
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching from nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding nominatim response: %w", err)
	}
	return nil
}

func (p nominatimPlace) toLocation() (models.Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("error parsing latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("error parsing longitude %q: %w", p.Lon, err)
	}

	return models.Location{
		Latitude:  lat,
		Longitude: lon,
		City:      p.Address.locality(),
		State:     p.Address.State,
		Country:   p.Address.Country,
		Address:   p.DisplayName,
	}, nil
}

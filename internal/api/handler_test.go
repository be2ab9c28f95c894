package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/havenapp/haven/internal/alertstore"
	"github.com/havenapp/haven/internal/models"
	"github.com/havenapp/haven/internal/resource"
)

type mockWeather struct {
	current  *models.WeatherData
	forecast []models.WeatherForecast
	err      error
}

func (m *mockWeather) Current(ctx context.Context, lat, lon float64) (*models.WeatherData, error) {
	return m.current, m.err
}

func (m *mockWeather) Forecast(ctx context.Context, lat, lon float64) ([]models.WeatherForecast, error) {
	return m.forecast, m.err
}

type mockQuakes struct {
	alerts []models.DisasterAlert
	err    error
}

func (m *mockQuakes) Fetch(ctx context.Context, feed string) ([]models.DisasterAlert, error) {
	return m.alerts, m.err
}

type mockPlanner struct {
	planText string
	recsText string
	riskText string
	err      error
}

func (m *mockPlanner) GenerateEmergencyPlan(ctx context.Context, disasterType, location string) (string, error) {
	return m.planText, m.err
}

func (m *mockPlanner) GenerateResilienceRecommendations(ctx context.Context, location string, riskFactors []string) (string, error) {
	return m.recsText, m.err
}

func (m *mockPlanner) AnalyzeRisk(ctx context.Context, location string, historicalData []string) (string, error) {
	return m.riskText, m.err
}

type mockLocations struct {
	results []models.Location
	err     error
}

func (m *mockLocations) Search(ctx context.Context, query string) ([]models.Location, error) {
	if len(query) < 3 {
		return nil, nil
	}
	return m.results, m.err
}

type testEnv struct {
	store     *alertstore.Store
	weather   *mockWeather
	quakes    *mockQuakes
	planner   *mockPlanner
	locations *mockLocations
	router    *gin.Engine
}

func setupTestRouter(t *testing.T) *testEnv {
	store, err := alertstore.New(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(store.Close)

	env := &testEnv{
		store:     store,
		weather:   &mockWeather{},
		quakes:    &mockQuakes{},
		planner:   &mockPlanner{},
		locations: &mockLocations{},
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(store, env.weather, env.quakes, env.planner, resource.NewSeeded(1), env.locations)
	handler.RegisterRoutes(router)
	env.router = router
	return env
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetWeather_Current(t *testing.T) {
	env := setupTestRouter(t)
	env.weather.current = &models.WeatherData{Temperature: 21.5, Description: "clear sky"}

	w := doRequest(env.router, http.MethodGet, "/api/weather?lat=34.05&lon=-118.25", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.WeatherData
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Temperature != 21.5 {
		t.Errorf("unexpected weather: %+v", got)
	}

	if cached := env.store.Weather(); cached == nil || cached.Temperature != 21.5 {
		t.Error("expected weather cached in store")
	}
}

func TestGetWeather_InvalidParams(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing coordinates", "/api/weather"},
		{"non-numeric", "/api/weather?lat=abc&lon=def"},
		{"out of range", "/api/weather?lat=91&lon=0"},
		{"bad type", "/api/weather?lat=34&lon=-118&type=hourly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router, http.MethodGet, tt.target, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestGetWeather_UpstreamFailure(t *testing.T) {
	env := setupTestRouter(t)
	env.weather.err = errors.New("upstream down")

	w := doRequest(env.router, http.MethodGet, "/api/weather?lat=34&lon=-118", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetEarthquakes(t *testing.T) {
	env := setupTestRouter(t)
	env.quakes.alerts = []models.DisasterAlert{
		{ID: "q1", Type: models.DisasterTypeEarthquake, Severity: models.SeverityHigh},
	}

	w := doRequest(env.router, http.MethodGet, "/api/earthquakes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got struct {
		Earthquakes []models.DisasterAlert `json:"earthquakes"`
		Metadata    struct {
			Count int    `json:"count"`
			Feed  string `json:"feed"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Metadata.Count != 1 || got.Metadata.Feed != "significant_day" {
		t.Errorf("unexpected metadata: %+v", got.Metadata)
	}
	if len(got.Earthquakes) != 1 || got.Earthquakes[0].ID != "q1" {
		t.Errorf("unexpected earthquakes: %+v", got.Earthquakes)
	}
}

func TestGetEarthquakes_InvalidFeed(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodGet, "/api/earthquakes?feed=all_hour", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAssessRisk(t *testing.T) {
	env := setupTestRouter(t)
	env.planner.err = errors.New("no api key")

	w := doRequest(env.router, http.MethodPost, "/api/risk", `{"latitude": 34.05, "longitude": -118.25}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.RiskAssessment
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.OverallRisk != 50 {
		t.Errorf("expected overall risk 50 for mid-latitude inland point, got %v", got.OverallRisk)
	}
	if len(got.Risks) != 4 {
		t.Errorf("expected 4 hazard entries, got %d", len(got.Risks))
	}
	if len(got.Recommendations) == 0 {
		t.Error("expected fallback recommendations when AI fails")
	}

	if env.store.RiskAssessment() == nil {
		t.Error("expected assessment cached in store")
	}
}

func TestAssessRisk_BadInput(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"latitude": `, http.StatusInternalServerError},
		{"string coordinates", `{"latitude": "34", "longitude": "-118"}`, http.StatusBadRequest},
		{"missing longitude", `{"latitude": 34.05}`, http.StatusBadRequest},
		{"out of range", `{"latitude": 95, "longitude": 0}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router, http.MethodPost, "/api/risk", tt.body)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestGetResources(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodGet, "/api/resources?lat=34.05&lon=-118.25&radius=5&type=shelter", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got struct {
		Resources []models.EmergencyResource `json:"resources"`
		Metadata  struct {
			Count  int     `json:"count"`
			Type   string  `json:"type"`
			Radius float64 `json:"radius"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Metadata.Type != "shelter" || got.Metadata.Radius != 5 {
		t.Errorf("unexpected metadata: %+v", got.Metadata)
	}
	if got.Metadata.Count != len(got.Resources) {
		t.Errorf("count %d does not match resources %d", got.Metadata.Count, len(got.Resources))
	}
	for _, r := range got.Resources {
		if r.Type != models.ResourceShelter {
			t.Errorf("expected only shelters, got %s", r.Type)
		}
	}

	if len(env.store.Resources()) != len(got.Resources) {
		t.Error("expected resources cached in store")
	}
}

func TestGetResources_GeoJSON(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodGet, "/api/resources?lat=34.05&lon=-118.25&format=geojson", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/geo+json") {
		t.Errorf("expected geo+json content type, got %s", ct)
	}

	var fc FeatureCollection
	if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
		t.Fatalf("failed to decode feature collection: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) == 0 {
		t.Errorf("unexpected feature collection: %+v", fc)
	}
	if fc.Features[0].Geometry.Type != "Point" || len(fc.Features[0].Geometry.Coordinates) != 2 {
		t.Errorf("unexpected geometry: %+v", fc.Features[0].Geometry)
	}
}

func TestGetResources_Validation(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name   string
		target string
	}{
		{"zero radius", "/api/resources?lat=34&lon=-118&radius=0"},
		{"oversized radius", "/api/resources?lat=34&lon=-118&radius=101"},
		{"bad radius", "/api/resources?lat=34&lon=-118&radius=wide"},
		{"bad type", "/api/resources?lat=34&lon=-118&type=bunker"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router, http.MethodGet, tt.target, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCreateEmergencyPlan_FallsBackToTemplate(t *testing.T) {
	env := setupTestRouter(t)
	env.planner.err = errors.New("model unavailable")

	w := doRequest(env.router, http.MethodPost, "/api/emergency-plan",
		`{"disasterType": "flood", "latitude": 34.05, "longitude": -118.25}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 even when AI fails, got %d", w.Code)
	}

	var got models.EmergencyPlan
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode plan: %v", err)
	}
	if got.DisasterType != models.DisasterTypeFlood {
		t.Errorf("unexpected disaster type: %s", got.DisasterType)
	}
	if len(got.Phases) != 3 {
		t.Errorf("expected 3 template phases, got %d", len(got.Phases))
	}
}

func TestCreateEmergencyPlan_ParsesAIResponse(t *testing.T) {
	env := setupTestRouter(t)
	env.planner.planText = `Preparation Phase
- Stock at least three days of water and food
- Prepare an evacuation bag for each family member

Response Phase
- Move immediately to higher ground away from water
- Avoid walking or driving through flood waters`

	w := doRequest(env.router, http.MethodPost, "/api/emergency-plan",
		`{"disasterType": "flood", "latitude": 34.05, "longitude": -118.25}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.EmergencyPlan
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode plan: %v", err)
	}
	if len(got.Phases) < 2 {
		t.Fatalf("expected parsed phases, got %d", len(got.Phases))
	}
	if got.Phases[0].Phase != models.PhaseBefore {
		t.Errorf("expected first phase before, got %s", got.Phases[0].Phase)
	}
}

func TestCreateEmergencyPlan_BadInput(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing type", `{"latitude": 34.05, "longitude": -118.25}`, http.StatusBadRequest},
		{"invalid type", `{"disasterType": "meteor", "latitude": 34.05, "longitude": -118.25}`, http.StatusBadRequest},
		{"string coordinates", `{"disasterType": "flood", "latitude": "a", "longitude": "b"}`, http.StatusBadRequest},
		{"out of range", `{"disasterType": "flood", "latitude": 34.05, "longitude": 200}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router, http.MethodPost, "/api/emergency-plan", tt.body)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestGetResilience_FallsBackToDefaults(t *testing.T) {
	env := setupTestRouter(t)
	env.planner.err = errors.New("model unavailable")

	w := doRequest(env.router, http.MethodGet, "/api/resilience?lat=34.05&lon=-118.25", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got []models.ResilienceRecommendation
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode recommendations: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 default recommendations, got %d", len(got))
	}
}

func TestGetResilience_ParsesAIResponse(t *testing.T) {
	env := setupTestRouter(t)
	env.planner.recsText = `1. Install rain gardens
Capture runoff before it reaches storm drains.
Difficulty: easy

2. Upgrade to impact windows
Protect against wind-borne debris during storms.
Cost: $5000`

	w := doRequest(env.router, http.MethodGet, "/api/resilience?lat=34.05&lon=-118.25", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got []models.ResilienceRecommendation
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode recommendations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 parsed recommendations, got %d", len(got))
	}
	if got[0].Title != "Install rain gardens" {
		t.Errorf("unexpected title: %q", got[0].Title)
	}
}

func TestGetAlerts_Filters(t *testing.T) {
	env := setupTestRouter(t)

	env.store.Upsert(models.DisasterAlert{
		ID: "a", Type: models.DisasterTypeEarthquake, Severity: models.SeverityHigh, IsActive: true,
		Location: models.Location{Latitude: 34.05, Longitude: -118.25},
	})
	env.store.Upsert(models.DisasterAlert{
		ID: "b", Type: models.DisasterTypeFlood, Severity: models.SeverityLow, IsActive: false,
		Location: models.Location{Latitude: 40.71, Longitude: -74.0},
	})

	var got struct {
		Alerts []models.DisasterAlert `json:"alerts"`
	}

	w := doRequest(env.router, http.MethodGet, "/api/alerts?severity=high", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode alerts: %v", err)
	}
	if len(got.Alerts) != 1 || got.Alerts[0].ID != "a" {
		t.Errorf("severity filter failed: %+v", got.Alerts)
	}

	w = doRequest(env.router, http.MethodGet, "/api/alerts?active=true", "")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode alerts: %v", err)
	}
	if len(got.Alerts) != 1 || got.Alerts[0].ID != "a" {
		t.Errorf("active filter failed: %+v", got.Alerts)
	}

	w = doRequest(env.router, http.MethodGet, "/api/alerts?lat=34.05&lon=-118.25&radius=100", "")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode alerts: %v", err)
	}
	if len(got.Alerts) != 1 || got.Alerts[0].ID != "a" {
		t.Errorf("proximity filter failed: %+v", got.Alerts)
	}

	w = doRequest(env.router, http.MethodGet, "/api/alerts?type=volcano", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown type, got %d", w.Code)
	}
}

func TestSearchLocations(t *testing.T) {
	env := setupTestRouter(t)
	env.locations.results = []models.Location{
		{Latitude: 34.05, Longitude: -118.25, City: "Los Angeles", Address: "Los Angeles, California"},
	}

	var got struct {
		Locations []models.Location `json:"locations"`
		Metadata  struct {
			Query string `json:"query"`
			Count int    `json:"count"`
		} `json:"metadata"`
	}

	w := doRequest(env.router, http.MethodGet, "/api/locations/search?q=Los+Angeles", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Metadata.Count != 1 || got.Locations[0].City != "Los Angeles" {
		t.Errorf("unexpected response: %+v", got)
	}

	w = doRequest(env.router, http.MethodGet, "/api/locations/search?q=LA", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for short query, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Metadata.Count != 0 || got.Locations == nil {
		t.Errorf("expected empty list for short query, got %+v", got)
	}
}

func TestUserLocation_RoundTrip(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodGet, "/api/user/location", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before save, got %d", w.Code)
	}

	w = doRequest(env.router, http.MethodPut, "/api/user/location",
		`{"latitude": 34.05, "longitude": -118.25, "city": "Los Angeles"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Location
	w = doRequest(env.router, http.MethodGet, "/api/user/location", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after save, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode location: %v", err)
	}
	if got.City != "Los Angeles" || got.Latitude != 34.05 {
		t.Errorf("unexpected location: %+v", got)
	}
}

func TestSaveUserLocation_BadInput(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodPut, "/api/user/location", `{"latitude": 95, "longitude": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range coordinates, got %d", w.Code)
	}

	w = doRequest(env.router, http.MethodPut, "/api/user/location", `{"city": "Oslo"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing coordinates, got %d", w.Code)
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodGet, "/api/user/preferences", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before save, got %d", w.Code)
	}

	w = doRequest(env.router, http.MethodPut, "/api/user/preferences",
		`{"units": "metric", "theme": "dark", "alertTypes": ["earthquake"], "notifications": {"push": true, "severity": ["high", "extreme"]}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.UserPreferences
	w = doRequest(env.router, http.MethodGet, "/api/user/preferences", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after save, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode preferences: %v", err)
	}
	if got.Units != "metric" || !got.Notifications.Push {
		t.Errorf("unexpected preferences: %+v", got)
	}
}

func TestSavePreferences_Validation(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodPut, "/api/user/preferences", `{"units": "stone"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown units, got %d", w.Code)
	}

	w = doRequest(env.router, http.MethodPut, "/api/user/preferences", `{"alertTypes": ["meteor"]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown alert type, got %d", w.Code)
	}
}

func TestCreateTestAlert(t *testing.T) {
	env := setupTestRouter(t)

	w := doRequest(env.router, http.MethodPost, "/api/debug/test-alert", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	critical := env.store.CriticalAlerts()
	if len(critical) != 1 || critical[0].Source != "TEST" {
		t.Errorf("expected injected test alert in store, got %+v", critical)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(1))
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	first := doRequest(router, http.MethodGet, "/ping", "")
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", first.Code)
	}

	var limited bool
	for i := 0; i < 5; i++ {
		if doRequest(router, http.MethodGet, "/ping", "").Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected burst to hit rate limit")
	}
}

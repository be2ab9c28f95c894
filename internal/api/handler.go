package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/havenapp/haven/internal/alertstore"
	"github.com/havenapp/haven/internal/geo"
	"github.com/havenapp/haven/internal/models"
	"github.com/havenapp/haven/internal/planner"
	"github.com/havenapp/haven/internal/risk"
)

const defaultResourceRadiusKm = 10.0

// WeatherService fetches live conditions for a coordinate pair.
type WeatherService interface {
	Current(ctx context.Context, latitude, longitude float64) (*models.WeatherData, error)
	Forecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherForecast, error)
}

// QuakeFetcher retrieves earthquake alerts from an upstream feed.
type QuakeFetcher interface {
	Fetch(ctx context.Context, feed string) ([]models.DisasterAlert, error)
}

// PlanGenerator produces free-text plans and recommendations that the
// planner package parses into structured responses.
type PlanGenerator interface {
	GenerateEmergencyPlan(ctx context.Context, disasterType, location string) (string, error)
	GenerateResilienceRecommendations(ctx context.Context, location string, riskFactors []string) (string, error)
	AnalyzeRisk(ctx context.Context, location string, historicalData []string) (string, error)
}

// ResourceFinder lists emergency resources near a location.
type ResourceFinder interface {
	Generate(loc models.Location, radiusKm float64, filterType models.ResourceType) []models.EmergencyResource
}

// LocationSearcher resolves free-text queries to location suggestions.
type LocationSearcher interface {
	Search(ctx context.Context, query string) ([]models.Location, error)
}

type Handler struct {
	store     *alertstore.Store
	weather   WeatherService
	quakes    QuakeFetcher
	planner   PlanGenerator // nil when no API key is configured
	resources ResourceFinder
	locations LocationSearcher
}

func NewHandler(store *alertstore.Store, weather WeatherService, quakes QuakeFetcher, plan PlanGenerator, resources ResourceFinder, locations LocationSearcher) *Handler {
	return &Handler{
		store:     store,
		weather:   weather,
		quakes:    quakes,
		planner:   plan,
		resources: resources,
		locations: locations,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/api/weather", h.getWeather)
	r.GET("/api/earthquakes", h.getEarthquakes)
	r.POST("/api/risk", h.assessRisk)
	r.GET("/api/resources", h.getResources)
	r.POST("/api/emergency-plan", h.createEmergencyPlan)
	r.GET("/api/resilience", h.getResilience)
	r.GET("/api/alerts", h.getAlerts)
	r.GET("/api/locations/search", h.searchLocations)
	r.GET("/api/user/location", h.getUserLocation)
	r.PUT("/api/user/location", h.saveUserLocation)
	r.GET("/api/user/preferences", h.getPreferences)
	r.PUT("/api/user/preferences", h.savePreferences)
	r.POST("/api/debug/test-alert", h.createTestAlert)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/weather?lat={lat}&lon={lon}&type={current|forecast}
func (h *Handler) getWeather(c *gin.Context) {
	lat, lon, ok := queryCoordinates(c)
	if !ok {
		return
	}

	kind := c.DefaultQuery("type", "current")
	switch kind {
	case "current":
		data, err := h.weather.Current(c.Request.Context(), lat, lon)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weather data"})
			return
		}
		h.store.SetWeather(data)
		c.JSON(http.StatusOK, data)
	case "forecast":
		forecast, err := h.weather.Forecast(c.Request.Context(), lat, lon)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch forecast data"})
			return
		}
		c.JSON(http.StatusOK, forecast)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": `Type must be either "current" or "forecast"`})
	}
}

// GET /api/earthquakes?feed={feed}
func (h *Handler) getEarthquakes(c *gin.Context) {
	feed := c.DefaultQuery("feed", "significant_day")
	if !validFeed(feed) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid feed parameter. Must be one of: significant_day, all_day, significant_week, all_week, significant_month",
		})
		return
	}

	earthquakes, err := h.quakes.Fetch(c.Request.Context(), feed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch earthquake data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"earthquakes": earthquakes,
		"metadata": gin.H{
			"count":       len(earthquakes),
			"feed":        feed,
			"lastUpdated": time.Now().UTC(),
			"source":      "USGS Earthquake Hazards Program",
		},
	})
}

// POST /api/risk
func (h *Handler) assessRisk(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	lat, latOK := body["latitude"].(float64)
	lon, lonOK := body["longitude"].(float64)
	if !latOK || !lonOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude or longitude parameters"})
		return
	}
	if !geo.ValidCoordinates(lat, lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of valid range"})
		return
	}

	loc := models.Location{Latitude: lat, Longitude: lon}

	// AI enrichment is best effort; the statistical assessment stands
	// on its own when the call fails.
	var aiAnalysis string
	if h.planner != nil {
		historicalData := []string{
			"Historical flooding in the region",
			"Moderate earthquake activity",
			"Wildfire risk in summer months",
			"Urban area with infrastructure",
		}
		if analysis, err := h.planner.AnalyzeRisk(c.Request.Context(), locationKey(lat, lon), historicalData); err == nil {
			aiAnalysis = analysis
		}
	}

	assessment := risk.Assess(loc, aiAnalysis)
	h.store.SetRiskAssessment(&assessment)
	c.JSON(http.StatusOK, assessment)
}

// GET /api/resources?lat={lat}&lon={lon}&radius={radius}&type={type}&format={json|geojson}
func (h *Handler) getResources(c *gin.Context) {
	lat, lon, ok := queryCoordinates(c)
	if !ok {
		return
	}

	radius := defaultResourceRadiusKm
	if r := c.Query("radius"); r != "" {
		parsed, err := strconv.ParseFloat(r, 64)
		if err != nil || parsed <= 0 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Radius must be between 0 and 100 km"})
			return
		}
		radius = parsed
	}

	var filterType models.ResourceType
	if t := c.Query("type"); t != "" {
		filterType = models.ResourceType(t)
		if !filterType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid resource type. Must be one of: " + joinResourceTypes(),
			})
			return
		}
	}

	loc := models.Location{Latitude: lat, Longitude: lon}
	resources := h.resources.Generate(loc, radius, filterType)
	h.store.SetResources(resources)

	if c.Query("format") == "geojson" {
		fc := toGeoJSON(resources)
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, fc)
		return
	}

	typeLabel := "all"
	if filterType != "" {
		typeLabel = string(filterType)
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": resources,
		"metadata": gin.H{
			"location":        loc,
			"radius":          radius,
			"type":            typeLabel,
			"count":           len(resources),
			"searchTimestamp": time.Now().UTC(),
		},
	})
}

// POST /api/emergency-plan
func (h *Handler) createEmergencyPlan(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	disasterType, _ := body["disasterType"].(string)
	lat, latOK := body["latitude"].(float64)
	lon, lonOK := body["longitude"].(float64)
	if disasterType == "" || !latOK || !lonOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: disasterType, latitude, longitude"})
		return
	}

	dt := models.DisasterType(disasterType)
	if !dt.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid disaster type. Must be one of: " + joinDisasterTypes()})
		return
	}
	if !geo.ValidCoordinates(lat, lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of valid range"})
		return
	}

	loc := models.Location{Latitude: lat, Longitude: lon}

	// Once input is valid the request always succeeds: a failed AI call
	// degrades to the built-in template.
	if h.planner != nil {
		if text, err := h.planner.GenerateEmergencyPlan(c.Request.Context(), disasterType, locationKey(lat, lon)); err == nil && text != "" {
			c.JSON(http.StatusOK, planner.ParsePlan(text, dt, loc))
			return
		}
	}
	c.JSON(http.StatusOK, planner.TemplatePlan(dt, loc))
}

// GET /api/resilience?lat={lat}&lon={lon}
func (h *Handler) getResilience(c *gin.Context) {
	lat, lon, ok := queryCoordinates(c)
	if !ok {
		return
	}

	if h.planner != nil {
		riskFactors := []string{"flooding", "earthquake", "wildfire", "climate change impacts"}
		if text, err := h.planner.GenerateResilienceRecommendations(c.Request.Context(), locationKey(lat, lon), riskFactors); err == nil && text != "" {
			c.JSON(http.StatusOK, planner.ParseRecommendations(text))
			return
		}
	}
	c.JSON(http.StatusOK, planner.DefaultRecommendations())
}

// GET /api/alerts?type={type}&severity={severity}&active={bool}&lat={lat}&lon={lon}&radius={km}
func (h *Handler) getAlerts(c *gin.Context) {
	var (
		filterType     models.DisasterType
		filterSeverity models.AlertSeverity
		activeOnly     bool
	)

	if t := c.Query("type"); t != "" {
		filterType = models.DisasterType(t)
		if !filterType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid disaster type. Must be one of: " + joinDisasterTypes()})
			return
		}
	}
	if s := c.Query("severity"); s != "" {
		filterSeverity = models.AlertSeverity(s)
		switch filterSeverity {
		case models.SeverityLow, models.SeverityModerate, models.SeverityHigh, models.SeverityExtreme:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity. Must be one of: low, moderate, high, extreme"})
			return
		}
	}
	if a := c.Query("active"); a != "" {
		parsed, err := strconv.ParseBool(a)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active parameter"})
			return
		}
		activeOnly = parsed
	}

	pred := func(a models.DisasterAlert) bool {
		if filterType != "" && a.Type != filterType {
			return false
		}
		if filterSeverity != "" && a.Severity != filterSeverity {
			return false
		}
		if activeOnly && !a.IsActive {
			return false
		}
		return true
	}

	var alerts []models.DisasterAlert
	if latStr, lonStr := c.Query("lat"), c.Query("lon"); latStr != "" || lonStr != "" {
		lat, lon, ok := queryCoordinates(c)
		if !ok {
			return
		}
		radius := 100.0
		if r := c.Query("radius"); r != "" {
			parsed, err := strconv.ParseFloat(r, 64)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius parameter"})
				return
			}
			radius = parsed
		}
		origin := models.Location{Latitude: lat, Longitude: lon}
		nearby := h.store.Nearby(origin, radius)
		alerts = make([]models.DisasterAlert, 0, len(nearby))
		for _, a := range nearby {
			if pred(a) {
				alerts = append(alerts, a)
			}
		}
	} else {
		alerts = h.store.FilteredSorted(pred, nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"metadata": gin.H{
			"count":       len(alerts),
			"lastUpdated": time.Now().UTC(),
		},
	})
}

// GET /api/locations/search?q={query}
func (h *Handler) searchLocations(c *gin.Context) {
	query := c.Query("q")

	locations, err := h.locations.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search locations"})
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": locations,
		"metadata": gin.H{
			"query": query,
			"count": len(locations),
		},
	})
}

// GET /api/user/location
func (h *Handler) getUserLocation(c *gin.Context) {
	loc := h.store.UserLocation()
	if loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No saved location"})
		return
	}
	c.JSON(http.StatusOK, loc)
}

// PUT /api/user/location
func (h *Handler) saveUserLocation(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	lat, latOK := body["latitude"].(float64)
	lon, lonOK := body["longitude"].(float64)
	if !latOK || !lonOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude or longitude parameters"})
		return
	}
	if !geo.ValidCoordinates(lat, lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of valid range"})
		return
	}

	loc := models.Location{Latitude: lat, Longitude: lon}
	loc.City, _ = body["city"].(string)
	loc.State, _ = body["state"].(string)
	loc.Country, _ = body["country"].(string)
	loc.Address, _ = body["address"].(string)

	if err := h.store.SetUserLocation(c.Request.Context(), loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save location"})
		return
	}
	c.JSON(http.StatusOK, loc)
}

// GET /api/user/preferences
func (h *Handler) getPreferences(c *gin.Context) {
	prefs := h.store.Preferences()
	if prefs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No saved preferences"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// PUT /api/user/preferences
func (h *Handler) savePreferences(c *gin.Context) {
	var prefs models.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences payload"})
		return
	}
	if prefs.Units != "" && prefs.Units != "metric" && prefs.Units != "imperial" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Units must be either "metric" or "imperial"`})
		return
	}
	for _, t := range prefs.AlertTypes {
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert type. Must be one of: " + joinDisasterTypes()})
			return
		}
	}

	if err := h.store.SetPreferences(c.Request.Context(), prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// POST /api/debug/test-alert injects a synthetic extreme alert into the
// store so subscription and UI paths can be exercised without waiting
// for a real event.
func (h *Handler) createTestAlert(c *gin.Context) {
	now := time.Now().UTC()
	alert := models.DisasterAlert{
		ID:          fmt.Sprintf("test_%d", now.UnixNano()),
		Type:        models.DisasterTypeEarthquake,
		Severity:    models.SeverityExtreme,
		Title:       "Test Earthquake - M7.5",
		Description: "This is a test alert for debugging",
		Location:    models.Location{Latitude: 35.6762, Longitude: 139.6503},
		AffectedArea: models.GeographicBounds{
			North: 36.6762, South: 34.6762,
			East: 140.6503, West: 138.6503,
		},
		StartTime: now,
		Instructions: []string{
			"Drop, cover, and hold on immediately",
			"Be prepared for aftershocks",
		},
		Source:   "TEST",
		IsActive: true,
		Urgency:  models.UrgencyImmediate,
	}

	h.store.Upsert(alert)

	c.JSON(http.StatusOK, gin.H{
		"message": "test alert injected",
		"id":      alert.ID,
	})
}

// queryCoordinates parses and validates lat/lon query parameters,
// writing the error response itself on failure.
func queryCoordinates(c *gin.Context) (lat, lon float64, ok bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude or longitude parameters"})
		return 0, 0, false
	}
	if !geo.ValidCoordinates(lat, lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of valid range"})
		return 0, 0, false
	}
	return lat, lon, true
}

func locationKey(lat, lon float64) string {
	return fmt.Sprintf("%v, %v", lat, lon)
}

func validFeed(feed string) bool {
	switch feed {
	case "significant_day", "all_day", "significant_week", "all_week", "significant_month":
		return true
	}
	return false
}

func joinResourceTypes() string {
	types := models.ResourceTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinDisasterTypes() string {
	types := models.DisasterTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

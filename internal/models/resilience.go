package models

type ResilienceCategory string

const (
	CategoryEnergyEfficiency      ResilienceCategory = "energy_efficiency"
	CategoryWaterConservation     ResilienceCategory = "water_conservation"
	CategorySustainableTransport  ResilienceCategory = "sustainable_transport"
	CategoryWasteReduction        ResilienceCategory = "waste_reduction"
	CategoryGreenInfrastructure   ResilienceCategory = "green_infrastructure"
	CategoryCommunityResilience   ResilienceCategory = "community_resilience"
	CategoryEmergencyPreparedness ResilienceCategory = "emergency_preparedness"
)

type CostRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // guide, video, tool, article
}

// ResilienceRecommendation is a single climate-adaptation suggestion,
// AI-parsed or served from the default list.
type ResilienceRecommendation struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    ResilienceCategory `json:"category"`
	Difficulty  string             `json:"difficulty"` // easy, moderate, hard
	Impact      string             `json:"impact"`     // low, medium, high
	Timeframe   string             `json:"timeframe"`
	Cost        CostRange          `json:"cost"`
	Steps       []string           `json:"steps"`
	Benefits    []string           `json:"benefits"`
	Resources   []ResourceLink     `json:"resources"`
}

package risk

import "github.com/havenapp/haven/internal/models"

// Static per-hazard qualitative catalog. Not derived from the input
// location; real GIS-backed factors are out of scope.

var hazardFactors = map[models.DisasterType][]string{
	models.DisasterTypeFlood: {
		"Proximity to water bodies",
		"Historical flooding patterns",
		"Elevation and topography",
		"Urban drainage systems",
	},
	models.DisasterTypeEarthquake: {
		"Seismic activity in the region",
		"Building codes and construction standards",
		"Soil composition",
		"Population density",
	},
	models.DisasterTypeHurricane: {
		"Coastal proximity",
		"Historical storm patterns",
		"Wind exposure",
		"Storm surge potential",
	},
	models.DisasterTypeWildfire: {
		"Vegetation type and density",
		"Weather patterns",
		"Human activity",
		"Topography",
	},
}

var hazardMitigations = map[models.DisasterType][]string{
	models.DisasterTypeFlood: {
		"Elevate critical infrastructure",
		"Install flood barriers",
		"Improve drainage systems",
		"Purchase flood insurance",
	},
	models.DisasterTypeEarthquake: {
		"Retrofitting older buildings",
		"Emergency preparedness training",
		"Securing heavy furniture",
		"Having emergency supplies",
	},
	models.DisasterTypeHurricane: {
		"Reinforcing roof and windows",
		"Creating emergency evacuation plans",
		"Securing outdoor property",
		"Stocking hurricane supplies",
	},
	models.DisasterTypeWildfire: {
		"Creating defensible space",
		"Using fire-resistant materials",
		"Developing evacuation routes",
		"Maintaining emergency water supply",
	},
}

func defaultRecommendations() []string {
	return []string{
		"Create an emergency kit with 72 hours of supplies",
		"Develop a family communication plan",
		"Learn about local evacuation routes",
		"Consider appropriate insurance coverage",
		"Stay informed about local weather and alerts",
	}
}

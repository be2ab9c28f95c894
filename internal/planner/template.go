package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/havenapp/haven/internal/models"
)

// TemplatePlan is the fixed three-phase fallback returned when the AI
// call fails or its output yields no parsable phases.
func TemplatePlan(disasterType models.DisasterType, loc models.Location) models.EmergencyPlan {
	return models.EmergencyPlan{
		ID:           "plan-" + uuid.NewString(),
		DisasterType: disasterType,
		Phases: []models.EmergencyPhase{
			{
				Phase: models.PhaseBefore,
				Title: "Preparation Phase",
				Actions: []models.EmergencyAction{
					{
						ID:                "1",
						Description:       "Prepare emergency kit with supplies for 72 hours",
						Priority:          models.PriorityHigh,
						Category:          "supplies",
						EstimatedTime:     "2 hours",
						RequiredResources: []string{"Food", "Water", "First aid kit", "Flashlight", "Radio"},
					},
				},
				Timeline: "1-2 weeks before potential event",
				Priority: 1,
			},
			{
				Phase: models.PhaseDuring,
				Title: "Response Phase",
				Actions: []models.EmergencyAction{
					{
						ID:                "2",
						Description:       "Follow evacuation orders immediately",
						Priority:          models.PriorityCritical,
						Category:          "safety",
						EstimatedTime:     "Immediate",
						RequiredResources: []string{"Transportation", "Emergency kit"},
					},
				},
				Timeline: "During the event",
				Priority: 2,
			},
			{
				Phase: models.PhaseAfter,
				Title: "Recovery Phase",
				Actions: []models.EmergencyAction{
					{
						ID:                "3",
						Description:       "Contact family and friends to confirm safety",
						Priority:          models.PriorityHigh,
						Category:          "communication",
						EstimatedTime:     "30 minutes",
						RequiredResources: []string{"Phone", "Contact list"},
					},
				},
				Timeline: "After the event",
				Priority: 3,
			},
		},
		Location:    loc,
		LastUpdated: time.Now().UTC(),
	}
}

// DefaultRecommendations is the fixed fallback list returned when the
// AI call fails or its output yields no usable sections.
func DefaultRecommendations() []models.ResilienceRecommendation {
	return []models.ResilienceRecommendation{
		{
			ID:          "1",
			Title:       "Install Solar Panels",
			Description: "Reduce energy costs and carbon footprint while ensuring backup power during outages",
			Category:    models.CategoryEnergyEfficiency,
			Difficulty:  "moderate",
			Impact:      "high",
			Timeframe:   "3-6 months",
			Cost:        models.CostRange{Min: 10000, Max: 25000, Currency: "USD"},
			Steps: []string{
				"Get energy audit",
				"Research local incentives",
				"Get quotes from installers",
				"Apply for permits",
				"Schedule installation",
			},
			Benefits: []string{
				"Reduced electricity bills",
				"Emergency backup power",
				"Increased home value",
				"Reduced carbon footprint",
			},
			Resources: []models.ResourceLink{
				{Title: "Solar Installation Guide", URL: "#", Type: "guide"},
			},
		},
		{
			ID:          "2",
			Title:       "Reinforce Roof and Windows",
			Description: "Strengthen building envelope against high winds and debris",
			Category:    models.CategoryEmergencyPreparedness,
			Difficulty:  "moderate",
			Impact:      "high",
			Timeframe:   "1-3 months",
			Cost:        models.CostRange{Min: 5000, Max: 15000, Currency: "USD"},
			Steps: []string{
				"Inspect current roof condition",
				"Research impact-resistant options",
				"Get contractor quotes",
				"Schedule installation",
				"Maintain regularly",
			},
			Benefits: []string{
				"Protection from wind damage",
				"Reduced insurance premiums",
				"Increased property value",
				"Peace of mind during storms",
			},
			Resources: []models.ResourceLink{
				{Title: "Wind Resistance Standards", URL: "#", Type: "guide"},
			},
		},
		{
			ID:          "3",
			Title:       "Create Emergency Water Supply",
			Description: "Install rainwater harvesting or greywater systems for emergency water access",
			Category:    models.CategoryWaterConservation,
			Difficulty:  "easy",
			Impact:      "medium",
			Timeframe:   "1-2 months",
			Cost:        models.CostRange{Min: 1000, Max: 3000, Currency: "USD"},
			Steps: []string{
				"Assess water needs",
				"Research local regulations",
				"Choose appropriate system",
				"Install with professional help",
				"Test and maintain system",
			},
			Benefits: []string{
				"Emergency water during outages",
				"Reduced utility bills",
				"Environmental conservation",
				"Drought preparedness",
			},
			Resources: []models.ResourceLink{
				{Title: "Water Conservation Guide", URL: "#", Type: "guide"},
			},
		},
	}
}

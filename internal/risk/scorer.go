// Package risk produces the deterministic latitude/longitude-banded
// risk assessment. Scores are heuristic placeholders for a real GIS
// model; the banding is the documented contract, not an approximation
// of one.
package risk

import (
	"regexp"
	"strings"
	"time"

	"github.com/havenapp/haven/internal/models"
)

// Hazard weights for the overall score.
const (
	weightFlood      = 0.3
	weightEarthquake = 0.3
	weightHurricane  = 0.2
	weightWildfire   = 0.2
)

const maxAIRecommendations = 4

var bulletPrefix = regexp.MustCompile(`^[-•]\s*`)

// Assess computes the banded risk assessment for a location.
// aiAnalysis, when non-empty, is free text from the risk-analysis
// completion; recommendation lines are extracted from it, falling back
// to the fixed default list. Callers must validate coordinates first.
func Assess(loc models.Location, aiAnalysis string) models.RiskAssessment {
	absLat := abs(loc.Latitude)
	absLon := abs(loc.Longitude)

	flood := 0.5
	if absLat < 30 {
		flood = 0.8
	} else if absLat > 60 {
		flood = 0.2
	}

	earthquake := 0.3
	if absLat > 30 {
		earthquake = 0.7
	}

	hurricane := 0.2
	if absLat < 30 && absLon < 100 {
		hurricane = 0.6
	}

	wildfire := 0.2
	if absLat > 30 {
		wildfire = 0.5
	}

	overall := (flood*weightFlood + earthquake*weightEarthquake +
		hurricane*weightHurricane + wildfire*weightWildfire) * 100

	risks := []models.DisasterRisk{
		hazardRisk(models.DisasterTypeFlood, flood),
		hazardRisk(models.DisasterTypeEarthquake, earthquake),
		hazardRisk(models.DisasterTypeHurricane, hurricane),
		hazardRisk(models.DisasterTypeWildfire, wildfire),
	}

	return models.RiskAssessment{
		Location:        loc,
		OverallRisk:     overall,
		Risks:           risks,
		Recommendations: extractRecommendations(aiAnalysis),
		LastUpdated:     time.Now().UTC(),
	}
}

func hazardRisk(t models.DisasterType, factor float64) models.DisasterRisk {
	score := factor * 100
	return models.DisasterRisk{
		Type:                 t,
		Probability:          score,
		Impact:               score,
		RiskScore:            score,
		Factors:              hazardFactors[t],
		MitigationStrategies: hazardMitigations[t],
	}
}

// extractRecommendations filters the AI analysis for actionable lines.
// A line qualifies if it mentions "recommend", "prepare" or "plan"; the
// first four qualifying lines are kept with bullet markers stripped.
func extractRecommendations(aiAnalysis string) []string {
	var recs []string
	if aiAnalysis != "" {
		for _, line := range strings.Split(aiAnalysis, "\n") {
			if !strings.Contains(line, "recommend") &&
				!strings.Contains(line, "prepare") &&
				!strings.Contains(line, "plan") {
				continue
			}
			recs = append(recs, bulletPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
			if len(recs) == maxAIRecommendations {
				break
			}
		}
	}
	if len(recs) == 0 {
		return defaultRecommendations()
	}
	return recs
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

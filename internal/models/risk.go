package models

import "time"

// DisasterRisk is the per-hazard component of a risk assessment.
// Probability, impact and riskScore carry the same banded value; there
// is no separate impact model.
type DisasterRisk struct {
	Type                 DisasterType `json:"type"`
	Probability          float64      `json:"probability"`
	Impact               float64      `json:"impact"`
	RiskScore            float64      `json:"riskScore"`
	Factors              []string     `json:"factors"`
	MitigationStrategies []string     `json:"mitigationStrategies"`
}

// RiskAssessment is the full per-location result. Built fresh on every
// request; never persisted.
type RiskAssessment struct {
	Location        Location       `json:"location"`
	OverallRisk     float64        `json:"overallRisk"`
	Risks           []DisasterRisk `json:"risks"`
	Recommendations []string       `json:"recommendations"`
	LastUpdated     time.Time      `json:"lastUpdated"`
}

// RiskLevel buckets a 0-100 score into a display label.
func RiskLevel(score float64) string {
	switch {
	case score >= 75:
		return "Extreme"
	case score >= 50:
		return "High"
	case score >= 25:
		return "Moderate"
	default:
		return "Low"
	}
}

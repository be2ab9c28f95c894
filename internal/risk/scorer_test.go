package risk

import (
	"math"
	"strings"
	"testing"

	"github.com/havenapp/haven/internal/models"
)

func TestAssess_LosAngeles(t *testing.T) {
	loc := models.Location{Latitude: 34.05, Longitude: -118.25}
	a := Assess(loc, "")

	want := map[models.DisasterType]float64{
		models.DisasterTypeFlood:      50, // 30 <= |lat| <= 60
		models.DisasterTypeEarthquake: 70, // |lat| > 30
		models.DisasterTypeHurricane:  20, // |lon| > 100
		models.DisasterTypeWildfire:   50, // |lat| > 30
	}

	for _, r := range a.Risks {
		w, ok := want[r.Type]
		if !ok {
			t.Fatalf("unexpected hazard %s", r.Type)
		}
		if math.Abs(r.RiskScore-w) > 1e-9 {
			t.Errorf("%s riskScore = %v, want %v", r.Type, r.RiskScore, w)
		}
		if r.Probability != r.RiskScore || r.Impact != r.RiskScore {
			t.Errorf("%s probability/impact should equal riskScore", r.Type)
		}
	}

	// 0.3*0.5 + 0.3*0.7 + 0.2*0.2 + 0.2*0.5 = 0.50
	if math.Abs(a.OverallRisk-50) > 1e-9 {
		t.Errorf("overallRisk = %v, want 50", a.OverallRisk)
	}
}

func TestAssess_Deterministic(t *testing.T) {
	loc := models.Location{Latitude: 10, Longitude: -70}
	a := Assess(loc, "")
	b := Assess(loc, "")

	if a.OverallRisk != b.OverallRisk {
		t.Errorf("overallRisk differs across calls: %v vs %v", a.OverallRisk, b.OverallRisk)
	}
	for i := range a.Risks {
		if a.Risks[i].RiskScore != b.Risks[i].RiskScore {
			t.Errorf("%s riskScore differs across calls", a.Risks[i].Type)
		}
	}
}

func TestAssess_OverallRiskWeightedSumAndBounds(t *testing.T) {
	locs := []models.Location{
		{Latitude: 0, Longitude: 0},
		{Latitude: 34.05, Longitude: -118.25},
		{Latitude: -75, Longitude: 170},
		{Latitude: 29.9, Longitude: -99.9},
		{Latitude: 61, Longitude: 10},
	}
	for _, loc := range locs {
		a := Assess(loc, "")
		if a.OverallRisk < 0 || a.OverallRisk > 100 {
			t.Errorf("overallRisk out of bounds at %+v: %v", loc, a.OverallRisk)
		}

		byType := map[models.DisasterType]float64{}
		for _, r := range a.Risks {
			byType[r.Type] = r.RiskScore
		}
		sum := byType[models.DisasterTypeFlood]*0.3 +
			byType[models.DisasterTypeEarthquake]*0.3 +
			byType[models.DisasterTypeHurricane]*0.2 +
			byType[models.DisasterTypeWildfire]*0.2
		if math.Abs(a.OverallRisk-sum) > 1e-9 {
			t.Errorf("overallRisk %v != weighted sum %v at %+v", a.OverallRisk, sum, loc)
		}
	}
}

func TestAssess_HazardCatalogPresent(t *testing.T) {
	a := Assess(models.Location{Latitude: 45, Longitude: 7}, "")
	for _, r := range a.Risks {
		if len(r.Factors) == 0 {
			t.Errorf("%s missing factors", r.Type)
		}
		if len(r.MitigationStrategies) == 0 {
			t.Errorf("%s missing mitigation strategies", r.Type)
		}
	}
}

func TestExtractRecommendations_FromAnalysis(t *testing.T) {
	analysis := strings.Join([]string{
		"Overall risk level: High",
		"- We recommend elevating electrical systems",
		"• prepare a go-bag for each family member",
		"Some unrelated commentary line",
		"plan evacuation routes in advance",
		"- recommend reviewing insurance annually",
		"- recommend a fifth thing that should be cut",
	}, "\n")

	recs := extractRecommendations(analysis)
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d: %v", len(recs), recs)
	}
	if recs[0] != "We recommend elevating electrical systems" {
		t.Errorf("bullet marker not stripped: %q", recs[0])
	}
	if recs[1] != "prepare a go-bag for each family member" {
		t.Errorf("unexpected second recommendation: %q", recs[1])
	}
}

func TestExtractRecommendations_FallbackOnEmpty(t *testing.T) {
	for _, analysis := range []string{"", "nothing actionable here\nat all"} {
		recs := extractRecommendations(analysis)
		if len(recs) != 5 {
			t.Errorf("expected 5 default recommendations for %q, got %d", analysis, len(recs))
		}
	}
}

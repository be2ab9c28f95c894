package planner

import (
	"strings"
	"testing"

	"github.com/havenapp/haven/internal/models"
)

const samplePlanText = `Here is your emergency plan.

Preparation Phase (before the disaster):
- Stock at least three days of water and non-perishable food
- Assemble a battery-powered radio and spare batteries
- x

Response Phase (during the disaster):
• Move away from windows and take cover under sturdy furniture
• Shut off gas lines if you smell leaking gas

Recovery steps after the shaking stops:
- Check household members for injuries before moving
- Document property damage with photographs`

func TestParsePlan_ExtractsPhasesAndActions(t *testing.T) {
	loc := models.Location{Latitude: 34.05, Longitude: -118.25}
	plan := ParsePlan(samplePlanText, models.DisasterTypeEarthquake, loc)

	if plan.DisasterType != models.DisasterTypeEarthquake {
		t.Errorf("disasterType = %s", plan.DisasterType)
	}
	if len(plan.Phases) < 2 {
		t.Fatalf("expected at least 2 parsed phases, got %d", len(plan.Phases))
	}

	first := plan.Phases[0]
	if first.Phase != models.PhaseBefore {
		t.Errorf("first phase = %s, want before", first.Phase)
	}
	for _, a := range first.Actions {
		if a.Priority != models.PriorityHigh {
			t.Errorf("before-phase action priority = %s, want high", a.Priority)
		}
		if a.Category != "supplies" {
			t.Errorf("before-phase action category = %s, want supplies", a.Category)
		}
		if a.EstimatedTime != "30 minutes" {
			t.Errorf("before-phase estimatedTime = %s", a.EstimatedTime)
		}
		if strings.HasPrefix(a.Description, "-") || strings.HasPrefix(a.Description, "•") {
			t.Errorf("bullet marker not stripped: %q", a.Description)
		}
		if len(a.Description) <= 10 {
			t.Errorf("short action survived filtering: %q", a.Description)
		}
	}

	second := plan.Phases[1]
	if second.Phase != models.PhaseDuring {
		t.Errorf("second phase = %s, want during", second.Phase)
	}
	for _, a := range second.Actions {
		if a.Priority != models.PriorityCritical {
			t.Errorf("during-phase action priority = %s, want critical", a.Priority)
		}
		if a.Category != "safety" {
			t.Errorf("during-phase action category = %s, want safety", a.Category)
		}
		if a.EstimatedTime != "Immediate" {
			t.Errorf("during-phase estimatedTime = %s", a.EstimatedTime)
		}
	}
}

func TestParsePlan_PhaseTitles(t *testing.T) {
	plan := ParsePlan(samplePlanText, models.DisasterTypeEarthquake, models.Location{})

	if plan.Phases[0].Title != "Preparation Phase" {
		t.Errorf("first title = %q", plan.Phases[0].Title)
	}
	if plan.Phases[1].Title != "Response Phase" {
		t.Errorf("second title = %q", plan.Phases[1].Title)
	}
}

func TestParsePlan_EmptyInputFallsBackToTemplate(t *testing.T) {
	loc := models.Location{Latitude: 1, Longitude: 2}

	for _, text := range []string{"", "short", "no bullets anywhere in this text, just prose going on and on"} {
		plan := ParsePlan(text, models.DisasterTypeFlood, loc)

		if len(plan.Phases) != 3 {
			t.Fatalf("input %q: expected 3 template phases, got %d", text, len(plan.Phases))
		}
		wantOrder := []models.PlanPhase{models.PhaseBefore, models.PhaseDuring, models.PhaseAfter}
		for i, p := range plan.Phases {
			if p.Phase != wantOrder[i] {
				t.Errorf("template phase %d = %s, want %s", i, p.Phase, wantOrder[i])
			}
			if len(p.Actions) == 0 {
				t.Errorf("template phase %s has no actions", p.Phase)
			}
		}
	}
}

func TestParsePlan_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		strings.Repeat("phase", 500),
		"• \n- \n•\n-",
		"Phase Phase Phase\n- but this line is a valid long action item",
		"\x00\xff weird bytes Phase - and - markers •",
	}
	for _, in := range inputs {
		plan := ParsePlan(in, models.DisasterTypeTornado, models.Location{})
		if len(plan.Phases) == 0 {
			t.Errorf("input %q: expected parsed content or template, got zero phases", in)
		}
	}
}

func TestParseRecommendations_NumberedSections(t *testing.T) {
	text := `1. Install rain barrels around the property
Capture roof runoff for garden irrigation and emergencies.
Difficulty: easy
Cost: $200-$500

2. Upgrade to impact-resistant windows
Protects the building envelope during storms.
Difficulty: moderate
Timeframe: 2-4 months`

	recs := ParseRecommendations(text)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	if recs[0].Title != "Install rain barrels around the property" {
		t.Errorf("title = %q", recs[0].Title)
	}
	if recs[0].Description != "Install rain barrels around the property" {
		// First non-metadata line is the title line itself.
		t.Errorf("description = %q", recs[0].Description)
	}
	if recs[0].ID != "1" || recs[1].ID != "2" {
		t.Errorf("sequential IDs expected, got %q %q", recs[0].ID, recs[1].ID)
	}
	// Metadata lines are excluded from description but never parsed
	// into the typed fields.
	if recs[0].Difficulty != "moderate" || recs[0].Cost.Min != 1000 {
		t.Errorf("fixed defaults expected regardless of input metadata")
	}
}

func TestParseRecommendations_TitleMarker(t *testing.T) {
	text := `Title: Community cooling centers
Open shared air-conditioned spaces during heatwaves.`

	recs := ParseRecommendations(text)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Title != "Community cooling centers" {
		t.Errorf("title = %q", recs[0].Title)
	}
}

func TestParseRecommendations_FallbackOnEmpty(t *testing.T) {
	for _, text := range []string{"", "tiny", "one line only that is reasonably long but single"} {
		recs := ParseRecommendations(text)
		if len(recs) != 3 {
			t.Fatalf("input %q: expected 3 default recommendations, got %d", text, len(recs))
		}
		if recs[0].Title != "Install Solar Panels" ||
			recs[1].Title != "Reinforce Roof and Windows" ||
			recs[2].Title != "Create Emergency Water Supply" {
			t.Errorf("default list content mismatch: %q %q %q", recs[0].Title, recs[1].Title, recs[2].Title)
		}
	}
}

// Package planner turns AI completion text into structured emergency
// plans and resilience recommendations. Parsing is best-effort: any
// input that yields no usable structure resolves to the fixed fallback
// content, never an error.
package planner

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/havenapp/haven/internal/models"
)

const (
	minSectionLength = 20
	minActionLength  = 10
)

// phaseBoundary marks the start of a candidate phase section. The
// longer alternatives absorb a trailing "Phase" so a heading like
// "Preparation Phase" starts exactly one section.
var phaseBoundary = regexp.MustCompile(`(?i)preparation(\s+phase)?|response(\s+phase)?|phase`)

var actionBullet = regexp.MustCompile(`^[-•]\s*`)

// ParsePlan extracts a phased emergency plan from completion text.
// Sections are split at phase keywords; bullet lines become actions.
// If no section yields at least one action, the fixed three-phase
// template is returned instead.
func ParsePlan(text string, disasterType models.DisasterType, loc models.Location) models.EmergencyPlan {
	var phases []models.EmergencyPhase

	for _, section := range splitAtBoundaries(text) {
		if len(strings.TrimSpace(section)) < minSectionLength {
			continue
		}

		idx := len(phases) // position among surviving sections
		phase := phaseForIndex(idx)
		actions := parseActions(section, phase, idx+1)
		if len(actions) == 0 {
			continue
		}

		phases = append(phases, models.EmergencyPhase{
			Phase:    phase,
			Title:    phaseTitle(section),
			Actions:  actions,
			Timeline: phaseTimeline(phase),
			Priority: idx + 1,
		})
	}

	if len(phases) == 0 {
		return TemplatePlan(disasterType, loc)
	}

	return models.EmergencyPlan{
		ID:           "plan-" + uuid.NewString(),
		DisasterType: disasterType,
		Phases:       phases,
		Location:     loc,
		LastUpdated:  time.Now().UTC(),
	}
}

// splitAtBoundaries slices text at each phase keyword, keeping the
// keyword with the section that follows it. The leading text before
// the first keyword is its own section.
func splitAtBoundaries(text string) []string {
	marks := phaseBoundary.FindAllStringIndex(text, -1)
	if len(marks) == 0 {
		return []string{text}
	}

	var sections []string
	prev := 0
	for _, m := range marks {
		if m[0] > prev {
			sections = append(sections, text[prev:m[0]])
		}
		prev = m[0]
	}
	sections = append(sections, text[prev:])
	return sections
}

func parseActions(section string, phase models.PlanPhase, phaseNum int) []models.EmergencyAction {
	priority := models.PriorityHigh
	estimated := "30 minutes"
	if phase == models.PhaseDuring {
		priority = models.PriorityCritical
		estimated = "Immediate"
	}

	var actions []models.EmergencyAction
	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•") {
			continue
		}
		description := strings.TrimSpace(actionBullet.ReplaceAllString(line, ""))
		if len(description) <= minActionLength {
			continue
		}

		actions = append(actions, models.EmergencyAction{
			ID:                fmt.Sprintf("%d-%d", phaseNum, len(actions)+1),
			Description:       description,
			IsCompleted:       false,
			Priority:          priority,
			Category:          phaseCategory(phase),
			EstimatedTime:     estimated,
			RequiredResources: []string{},
		})
	}
	return actions
}

func phaseForIndex(i int) models.PlanPhase {
	switch i {
	case 0:
		return models.PhaseBefore
	case 1:
		return models.PhaseDuring
	default:
		return models.PhaseAfter
	}
}

func phaseTitle(section string) string {
	switch {
	case strings.Contains(section, "Preparation"):
		return "Preparation Phase"
	case strings.Contains(section, "Response"):
		return "Response Phase"
	default:
		return "Recovery Phase"
	}
}

func phaseCategory(phase models.PlanPhase) string {
	switch phase {
	case models.PhaseBefore:
		return "supplies"
	case models.PhaseDuring:
		return "safety"
	default:
		return "communication"
	}
}

func phaseTimeline(phase models.PlanPhase) string {
	switch phase {
	case models.PhaseBefore:
		return "1-2 weeks before potential event"
	case models.PhaseDuring:
		return "During the event"
	default:
		return "After the event"
	}
}

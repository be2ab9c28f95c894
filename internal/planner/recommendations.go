package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/havenapp/haven/internal/models"
)

// sectionMarker splits recommendation text on numbered list items or a
// literal "Title:" label.
var sectionMarker = regexp.MustCompile(`(?i)\d+\.\s+|Title:`)

// metadataMarkers tag lines that describe structured attributes; such
// lines are excluded from the description but deliberately not parsed
// into the typed fields.
var metadataMarkers = []string{"Difficulty:", "Cost:", "Timeframe:", "Benefits:"}

// ParseRecommendations extracts resilience recommendations from
// completion text. A section needs at least two non-empty lines; the
// first line is the title and the first non-metadata line the
// description. Zero usable sections resolves to the default list.
func ParseRecommendations(text string) []models.ResilienceRecommendation {
	var recs []models.ResilienceRecommendation

	for _, section := range sectionMarker.Split(text, -1) {
		if len(strings.TrimSpace(section)) <= minActionLength {
			continue
		}

		var lines []string
		for _, raw := range strings.Split(section, "\n") {
			if line := strings.TrimSpace(raw); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) < 2 {
			continue
		}

		title := actionBullet.ReplaceAllString(lines[0], "")
		description := title
		for _, line := range lines {
			if !hasMetadataMarker(line) {
				description = line
				break
			}
		}

		recs = append(recs, models.ResilienceRecommendation{
			ID:          strconv.Itoa(len(recs) + 1),
			Title:       title,
			Description: description,
			Category:    models.CategoryEnergyEfficiency,
			Difficulty:  "moderate",
			Impact:      "high",
			Timeframe:   "3-6 months",
			Cost:        models.CostRange{Min: 1000, Max: 5000, Currency: "USD"},
			Steps:       []string{"Research options", "Get quotes", "Schedule installation"},
			Benefits:    []string{"Improved resilience", "Cost savings", "Environmental benefits"},
			Resources:   []models.ResourceLink{},
		})
	}

	if len(recs) == 0 {
		return DefaultRecommendations()
	}
	return recs
}

func hasMetadataMarker(line string) bool {
	for _, m := range metadataMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

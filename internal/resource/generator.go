// Package resource synthesizes location-anchored emergency facility
// listings. Output is randomized on every call; only the shape contract
// (count, radius containment, distance ordering) is stable. The RNG is
// injected so tests can pin a seed.
package resource

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/havenapp/haven/internal/geo"
	"github.com/havenapp/haven/internal/models"
)

const (
	minResources = 3
	maxResources = 8

	// Generated points stay inside 80% of the requested radius so
	// results never sit right at the boundary.
	radiusFraction = 0.8
)

type Generator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeeded returns a generator with its own source, for production use.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces 3-8 resources scattered around loc. filterType,
// when non-empty, forces every resource to that type. Results are
// sorted nearest-first by the planar distance from loc.
func (g *Generator) Generate(loc models.Location, radiusKm float64, filterType models.ResourceType) []models.EmergencyResource {
	count := g.rng.Intn(maxResources-minResources+1) + minResources
	resources := make([]models.EmergencyResource, 0, count)

	types := models.ResourceTypes()
	for i := 0; i < count; i++ {
		rt := filterType
		if rt == "" {
			rt = types[g.rng.Intn(len(types))]
		}

		bearing := g.rng.Float64() * 2 * math.Pi
		distance := g.rng.Float64() * radiusKm * radiusFraction
		pos := geo.Offset(loc, bearing, distance)
		pos.Address = g.address()

		resources = append(resources, g.build(i+1, rt, pos))
	}

	sort.Slice(resources, func(i, j int) bool {
		return geo.Distance(loc, resources[i].Location) < geo.Distance(loc, resources[j].Location)
	})
	return resources
}

func (g *Generator) build(id int, rt models.ResourceType, pos models.Location) models.EmergencyResource {
	name := g.pick(resourceNames[rt])
	if rt == models.ResourceFireStation {
		name = fmt.Sprintf("%s%d", name, id%10+1)
	}

	var capacity *int
	if rt == models.ResourceShelter || rt == models.ResourceEvacuationCenter {
		c := g.rng.Intn(200) + 50
		capacity = &c
	}

	availCapacity := 100
	occupancy := g.rng.Intn(80)
	if capacity != nil {
		availCapacity = *capacity
		occupancy = g.rng.Intn(int(float64(*capacity) * 0.8))
	}

	email := strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@emergency.gov"

	return models.EmergencyResource{
		ID:   fmt.Sprintf("%d", id),
		Name: name,
		Type: rt,
		Location: pos,
		Contact: models.ContactInfo{
			Phone:           g.phoneNumber(),
			Email:           email,
			EmergencyNumber: "911",
		},
		Capacity: capacity,
		Availability: models.ResourceAvailability{
			IsOpen:           g.rng.Float64() > 0.1,
			Capacity:         availCapacity,
			CurrentOccupancy: occupancy,
			LastUpdated:      time.Now().Add(-time.Duration(g.rng.Float64() * float64(time.Hour))),
		},
		Services:       resourceServices[rt],
		OperatingHours: alwaysOpen(),
		Accessibility: models.AccessibilityInfo{
			WheelchairAccessible: g.rng.Float64() > 0.2,
			HasRamp:              g.rng.Float64() > 0.3,
			HasElevator:          g.rng.Float64() > 0.4,
			SignLanguageSupport:  g.rng.Float64() > 0.6,
			BrailleSupport:       g.rng.Float64() > 0.7,
		},
	}
}

func (g *Generator) address() string {
	streets := []string{"Main St", "Oak Ave", "Pine Rd", "Elm Blvd", "Maple Dr", "Cedar Ln", "Birch Way"}
	areas := []string{"City Center", "Downtown", "Uptown", "Midtown", "Northside", "Southside"}
	return fmt.Sprintf("%d %s, %s, State", g.rng.Intn(9999)+1, g.pick(streets), g.pick(areas))
}

func (g *Generator) phoneNumber() string {
	return fmt.Sprintf("+1-%d-%d-%d", g.rng.Intn(900)+100, g.rng.Intn(900)+100, g.rng.Intn(9000)+1000)
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func alwaysOpen() models.OperatingHours {
	return models.OperatingHours{
		Monday: "24/7", Tuesday: "24/7", Wednesday: "24/7", Thursday: "24/7",
		Friday: "24/7", Saturday: "24/7", Sunday: "24/7",
		IsAlwaysOpen: true,
	}
}

var resourceNames = map[models.ResourceType][]string{
	models.ResourceShelter:          {"City Emergency Shelter", "Community Safe House", "Red Cross Shelter", "Municipal Evacuation Center"},
	models.ResourceHospital:         {"General Hospital", "Medical Center", "Regional Health Clinic", "Emergency Care Facility"},
	models.ResourceFireStation:      {"Fire Station #", "Fire Department", "Emergency Response Station"},
	models.ResourcePoliceStation:    {"Police Precinct", "Law Enforcement Center", "Public Safety Station"},
	models.ResourceEvacuationCenter: {"Evacuation Center", "Emergency Assembly Point", "Safe Haven Center"},
	models.ResourceSupplyDepot:      {"Emergency Supply Depot", "Relief Distribution Center", "Aid Station"},
	models.ResourceCommunicationHub: {"Emergency Communication Center", "Information Hub", "Alert Coordination Center"},
}

var resourceServices = map[models.ResourceType][]string{
	models.ResourceShelter:          {"Emergency shelter", "Food", "Medical aid", "Communications"},
	models.ResourceHospital:         {"Emergency medical care", "Trauma treatment", "Surgery", "Pharmacy"},
	models.ResourceFireStation:      {"Fire suppression", "Search and rescue", "Hazard mitigation", "First aid"},
	models.ResourcePoliceStation:    {"Law enforcement", "Emergency coordination", "Public safety", "Traffic control"},
	models.ResourceEvacuationCenter: {"Temporary housing", "Food services", "Medical screening", "Family reunification"},
	models.ResourceSupplyDepot:      {"Food distribution", "Water supplies", "Medical supplies", "Emergency kits"},
	models.ResourceCommunicationHub: {"Emergency alerts", "Information dissemination", "Family communication", "Resource coordination"},
}

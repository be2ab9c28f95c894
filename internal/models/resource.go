package models

import "time"

type ResourceType string

const (
	ResourceShelter          ResourceType = "shelter"
	ResourceHospital         ResourceType = "hospital"
	ResourceFireStation      ResourceType = "fire_station"
	ResourcePoliceStation    ResourceType = "police_station"
	ResourceEvacuationCenter ResourceType = "evacuation_center"
	ResourceSupplyDepot      ResourceType = "supply_depot"
	ResourceCommunicationHub ResourceType = "communication_hub"
)

// ResourceTypes lists every recognized resource type.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceShelter,
		ResourceHospital,
		ResourceFireStation,
		ResourcePoliceStation,
		ResourceEvacuationCenter,
		ResourceSupplyDepot,
		ResourceCommunicationHub,
	}
}

func (t ResourceType) Valid() bool {
	for _, rt := range ResourceTypes() {
		if t == rt {
			return true
		}
	}
	return false
}

type ContactInfo struct {
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Website         string `json:"website,omitempty"`
	EmergencyNumber string `json:"emergencyNumber,omitempty"`
}

type ResourceAvailability struct {
	IsOpen           bool      `json:"isOpen"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"currentOccupancy"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

type OperatingHours struct {
	Monday       string `json:"monday"`
	Tuesday      string `json:"tuesday"`
	Wednesday    string `json:"wednesday"`
	Thursday     string `json:"thursday"`
	Friday       string `json:"friday"`
	Saturday     string `json:"saturday"`
	Sunday       string `json:"sunday"`
	IsAlwaysOpen bool   `json:"isAlwaysOpen"`
}

type AccessibilityInfo struct {
	WheelchairAccessible bool `json:"wheelchairAccessible"`
	HasRamp              bool `json:"hasRamp"`
	HasElevator          bool `json:"hasElevator"`
	SignLanguageSupport  bool `json:"signLanguageSupport"`
	BrailleSupport       bool `json:"brailleSupport"`
}

// EmergencyResource is a synthesized facility listing. Capacity is nil
// for types without a meaningful ceiling.
type EmergencyResource struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Type          ResourceType         `json:"type"`
	Location      Location             `json:"location"`
	Contact       ContactInfo          `json:"contact"`
	Capacity      *int                 `json:"capacity,omitempty"`
	Availability  ResourceAvailability `json:"availability"`
	Services      []string             `json:"services"`
	OperatingHours OperatingHours      `json:"operatingHours"`
	Accessibility AccessibilityInfo    `json:"accessibility"`
}

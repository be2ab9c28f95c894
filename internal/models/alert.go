package models

import "time"

type DisasterType string

const (
	DisasterTypeEarthquake    DisasterType = "earthquake"
	DisasterTypeFlood         DisasterType = "flood"
	DisasterTypeHurricane     DisasterType = "hurricane"
	DisasterTypeTornado       DisasterType = "tornado"
	DisasterTypeWildfire      DisasterType = "wildfire"
	DisasterTypeHeatwave      DisasterType = "heatwave"
	DisasterTypeBlizzard      DisasterType = "blizzard"
	DisasterTypeTsunami       DisasterType = "tsunami"
	DisasterTypeVolcanic      DisasterType = "volcanic"
	DisasterTypeDrought       DisasterType = "drought"
	DisasterTypeSevereWeather DisasterType = "severe_weather"
)

// DisasterTypes lists every recognized disaster type.
func DisasterTypes() []DisasterType {
	return []DisasterType{
		DisasterTypeEarthquake,
		DisasterTypeFlood,
		DisasterTypeHurricane,
		DisasterTypeTornado,
		DisasterTypeWildfire,
		DisasterTypeHeatwave,
		DisasterTypeBlizzard,
		DisasterTypeTsunami,
		DisasterTypeVolcanic,
		DisasterTypeDrought,
		DisasterTypeSevereWeather,
	}
}

func (t DisasterType) Valid() bool {
	for _, dt := range DisasterTypes() {
		if t == dt {
			return true
		}
	}
	return false
}

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityModerate AlertSeverity = "moderate"
	SeverityHigh     AlertSeverity = "high"
	SeverityExtreme  AlertSeverity = "extreme"
)

type AlertUrgency string

const (
	UrgencyImmediate AlertUrgency = "immediate"
	UrgencyExpected  AlertUrgency = "expected"
	UrgencyFuture    AlertUrgency = "future"
)

// DisasterAlert is a single active or historical hazard notification.
// Alerts are identified by ID; a re-ingested alert with a known ID
// replaces the stored one.
type DisasterAlert struct {
	ID           string           `json:"id"`
	Type         DisasterType     `json:"type"`
	Severity     AlertSeverity    `json:"severity"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Location     Location         `json:"location"`
	AffectedArea GeographicBounds `json:"affectedArea"`
	StartTime    time.Time        `json:"startTime"`
	EndTime      *time.Time       `json:"endTime,omitempty"`
	Instructions []string         `json:"instructions"`
	Source       string           `json:"source"`
	IsActive     bool             `json:"isActive"`
	Urgency      AlertUrgency     `json:"urgency"`
}

// Critical reports whether the alert should drive urgent UI treatment.
func (a DisasterAlert) Critical() bool {
	return a.Severity == SeverityHigh || a.Severity == SeverityExtreme
}

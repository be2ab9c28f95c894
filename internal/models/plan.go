package models

import "time"

type PlanPhase string

const (
	PhaseBefore PlanPhase = "before"
	PhaseDuring PlanPhase = "during"
	PhaseAfter  PlanPhase = "after"
)

type ActionPriority string

const (
	PriorityLow      ActionPriority = "low"
	PriorityMedium   ActionPriority = "medium"
	PriorityHigh     ActionPriority = "high"
	PriorityCritical ActionPriority = "critical"
)

// EmergencyAction is a single checklist item within a plan phase.
// IsCompleted is toggled by the consumer as items are checked off.
type EmergencyAction struct {
	ID                string         `json:"id"`
	Description       string         `json:"description"`
	IsCompleted       bool           `json:"isCompleted"`
	Priority          ActionPriority `json:"priority"`
	Category          string         `json:"category"`
	EstimatedTime     string         `json:"estimatedTime"`
	RequiredResources []string       `json:"requiredResources"`
}

type EmergencyPhase struct {
	Phase    PlanPhase         `json:"phase"`
	Title    string            `json:"title"`
	Actions  []EmergencyAction `json:"actions"`
	Timeline string            `json:"timeline"`
	Priority int               `json:"priority"`
}

// EmergencyPlan is a phased response checklist for one disaster type
// at one location. Not persisted server-side.
type EmergencyPlan struct {
	ID           string           `json:"id"`
	DisasterType DisasterType     `json:"disasterType"`
	Phases       []EmergencyPhase `json:"phases"`
	Location     Location         `json:"location"`
	LastUpdated  time.Time        `json:"lastUpdated"`
}

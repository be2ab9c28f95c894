package models

type NotificationSettings struct {
	Email     bool            `json:"email"`
	SMS       bool            `json:"sms"`
	Push      bool            `json:"push"`
	Emergency bool            `json:"emergency"`
	Severity  []AlertSeverity `json:"severity"`
}

// UserPreferences holds the settings that survive a session reset.
type UserPreferences struct {
	Language      string               `json:"language"`
	Units         string               `json:"units"` // metric or imperial
	Notifications NotificationSettings `json:"notifications"`
	AlertTypes    []DisasterType       `json:"alertTypes"`
	Theme         string               `json:"theme"`
}

package models

import "time"

// WeatherData is a current-conditions snapshot. UVIndex requires a
// separate upstream call and is reported as zero.
type WeatherData struct {
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Pressure      float64   `json:"pressure"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection float64   `json:"windDirection"`
	Visibility    float64   `json:"visibility"` // kilometers
	UVIndex       float64   `json:"uvIndex"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	Timestamp     time.Time `json:"timestamp"`
}

type WeatherForecast struct {
	Date          string  `json:"date"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"windSpeed"`
}

// WindDirectionLabel converts degrees to a 16-point compass label.
func WindDirectionLabel(degrees float64) string {
	directions := []string{
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	}
	idx := int(degrees/22.5+0.5) % 16
	return directions[idx]
}

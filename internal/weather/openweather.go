// Package weather wraps the OpenWeatherMap current-conditions and
// five-day forecast endpoints.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/havenapp/haven/internal/models"
)

const (
	defaultBaseURL  = "https://api.openweathermap.org/data/2.5"
	forecastEntries = 5
	metersPerKm     = 1000.0
)

type conditionsResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility float64 `json:"visibility"`
	Weather    []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			TempMax float64 `json:"temp_max"`
			TempMin float64 `json:"temp_min"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Rain struct {
			ThreeHours float64 `json:"3h"`
		} `json:"rain"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// Client fetches metric-unit weather data for a coordinate pair.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Current returns the current conditions. Upstream reports visibility
// in meters; it is converted to kilometers here. UV index needs a
// separate upstream product and is always zero.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (*models.WeatherData, error) {
	var data conditionsResponse
	if err := c.get(ctx, "/weather", latitude, longitude, &data); err != nil {
		return nil, fmt.Errorf("error fetching current weather: %w", err)
	}
	if len(data.Weather) == 0 {
		return nil, fmt.Errorf("weather response missing conditions")
	}

	return &models.WeatherData{
		Temperature:   data.Main.Temp,
		Humidity:      data.Main.Humidity,
		Pressure:      data.Main.Pressure,
		WindSpeed:     data.Wind.Speed,
		WindDirection: data.Wind.Deg,
		Visibility:    data.Visibility / metersPerKm,
		UVIndex:       0,
		Description:   data.Weather[0].Description,
		Icon:          data.Weather[0].Icon,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Forecast returns the next five forecast periods.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherForecast, error) {
	var data forecastResponse
	if err := c.get(ctx, "/forecast", latitude, longitude, &data); err != nil {
		return nil, fmt.Errorf("error fetching forecast: %w", err)
	}

	entries := data.List
	if len(entries) > forecastEntries {
		entries = entries[:forecastEntries]
	}

	forecast := make([]models.WeatherForecast, 0, len(entries))
	for _, item := range entries {
		f := models.WeatherForecast{
			Date:          item.DtTxt,
			High:          item.Main.TempMax,
			Low:           item.Main.TempMin,
			Precipitation: item.Rain.ThreeHours,
			WindSpeed:     item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			f.Description = item.Weather[0].Description
			f.Icon = item.Weather[0].Icon
		}
		forecast = append(forecast, f)
	}
	return forecast, nil
}

func (c *Client) get(ctx context.Context, path string, latitude, longitude float64, out any) error {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching from openweathermap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openweathermap returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding weather response: %w", err)
	}
	return nil
}

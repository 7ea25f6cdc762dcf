package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Forecast is the daily weather summary shown next to a planned day.
type Forecast struct {
	Date          string  `json:"date"`
	TempMin       float64 `json:"temp_min"`
	TempMax       float64 `json:"temp_max"`
	Precipitation float64 `json:"precipitation"`
}

// WeatherService fetches daily forecasts from the Open-Meteo API.
type WeatherService struct {
	apiURL string
	client *http.Client
}

// NewWeatherService creates a new WeatherService instance. apiURL may be
// empty to use the public Open-Meteo endpoint.
func NewWeatherService(apiURL string) *WeatherService {
	if apiURL == "" {
		apiURL = "https://api.open-meteo.com/v1/forecast"
	}
	return &WeatherService{
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type openMeteoResponse struct {
	Daily struct {
		Time            []string  `json:"time"`
		TempMax         []float64 `json:"temperature_2m_max"`
		TempMin         []float64 `json:"temperature_2m_min"`
		PrecipitationMM []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// GetForecast returns the forecast for one calendar day at the given coordinates.
func (s *WeatherService) GetForecast(ctx context.Context, lat, lon float64, date time.Time) (*Forecast, error) {
	day := date.Format("2006-01-02")

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	params.Set("timezone", "UTC")
	params.Set("start_date", day)
	params.Set("end_date", day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}
	if len(body.Daily.Time) == 0 {
		return nil, fmt.Errorf("no forecast available for %s", day)
	}

	f := &Forecast{Date: body.Daily.Time[0]}
	if len(body.Daily.TempMin) > 0 {
		f.TempMin = body.Daily.TempMin[0]
	}
	if len(body.Daily.TempMax) > 0 {
		f.TempMax = body.Daily.TempMax[0]
	}
	if len(body.Daily.PrecipitationMM) > 0 {
		f.Precipitation = body.Daily.PrecipitationMM[0]
	}
	return f, nil
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-05-16", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-05-16", r.URL.Query().Get("end_date"))
		assert.Equal(t, "45.4642", r.URL.Query().Get("latitude"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"daily": {
				"time": ["2025-05-16"],
				"temperature_2m_max": [24.5],
				"temperature_2m_min": [13.1],
				"precipitation_sum": [0.4]
			}
		}`))
	}))
	defer srv.Close()

	svc := NewWeatherService(srv.URL)
	forecast, err := svc.GetForecast(context.Background(), 45.4642, 9.19, time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2025-05-16", forecast.Date)
	assert.Equal(t, 24.5, forecast.TempMax)
	assert.Equal(t, 13.1, forecast.TempMin)
	assert.Equal(t, 0.4, forecast.Precipitation)
}

func TestGetForecastUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewWeatherService(srv.URL)
	_, err := svc.GetForecast(context.Background(), 45.4642, 9.19, time.Now())
	assert.Error(t, err)
}

func TestGetForecastEmptyDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily": {"time": [], "temperature_2m_max": [], "temperature_2m_min": [], "precipitation_sum": []}}`))
	}))
	defer srv.Close()

	svc := NewWeatherService(srv.URL)
	_, err := svc.GetForecast(context.Background(), 0, 0, time.Now())
	assert.Error(t, err)
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tavola-app/backend/internal/service"
)

type WeatherHandler struct {
	weatherService *service.WeatherService
}

func NewWeatherHandler(weatherService *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

func (h *WeatherHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/weather", h.GetForecast)
}

// GetForecast proxies a daily forecast for the given coordinates and date.
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon"})
		return
	}

	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		if date, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	forecast, err := h.weatherService.GetForecast(c.Request.Context(), lat, lon, date)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch forecast"})
		return
	}

	c.JSON(http.StatusOK, forecast)
}

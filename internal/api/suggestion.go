package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"github.com/tavola-app/backend/internal/service"
)

type SuggestionHandler struct {
	suggestionService *service.SuggestionService
}

func NewSuggestionHandler(suggestionService *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/suggestions", h.GetSuggestions)
}

// GetSuggestions returns ranked dish suggestions for one meal slot.
// Query parameters: date (YYYY-MM-DD, defaults to today) and meal_type.
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)

	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	mealType := models.MealType(c.Query("meal_type"))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_type must be pranzo or cena"})
		return
	}

	suggestions, err := h.suggestionService.GetSuggestions(c.Request.Context(), familyID, date, mealType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

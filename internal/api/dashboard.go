package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardHandler serves the family stats view.
type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.GetStats)
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalDishes       int64  `json:"total_dishes"`
	MealsThisWeek     int64  `json:"meals_this_week"`
	DistinctDishesUsed int64 `json:"distinct_dishes_used"`
	MostUsedDish      string `json:"most_used_dish,omitempty"`
	MostUsedDishCount int64  `json:"most_used_dish_count,omitempty"`
}

// GetStats returns planning statistics for the caller's family.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)

	var stats DashboardStats
	if err := h.db.Model(&models.Dish{}).Where("family_id = ?", familyID).Count(&stats.TotalDishes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	weekEnd := weekStart.AddDate(0, 0, 6)

	if err := h.db.Model(&models.MealAssignment{}).
		Where("family_id = ? AND date >= ? AND date <= ?", familyID, weekStart, weekEnd).
		Count(&stats.MealsThisWeek).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	if err := h.db.Model(&models.MealAssignment{}).
		Where("family_id = ?", familyID).
		Distinct("dish_id").
		Count(&stats.DistinctDishesUsed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var top struct {
		DishID uuid.UUID
		Count  int64
	}
	err := h.db.Model(&models.MealAssignment{}).
		Select("dish_id, COUNT(*) as count").
		Where("family_id = ?", familyID).
		Group("dish_id").
		Order("count DESC").
		Limit(1).
		Scan(&top).Error
	if err == nil && top.Count > 0 {
		var dish models.Dish
		if err := h.db.First(&dish, "id = ?", top.DishID).Error; err == nil {
			stats.MostUsedDish = dish.Name
			stats.MostUsedDishCount = top.Count
		}
	}

	c.JSON(http.StatusOK, stats)
}

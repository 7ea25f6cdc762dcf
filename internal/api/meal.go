package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"github.com/tavola-app/backend/internal/service"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type MealHandler struct {
	mealService *service.MealService
}

func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		meals.GET("/:id", h.GetMeal)
		meals.POST("", h.PlanMeal)
		meals.DELETE("/:id", h.DeleteMeal)
	}
}

func (h *MealHandler) PlanMeal(c *gin.Context) {
	var req PlanMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dishID, err := uuid.Parse(req.DishID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	familyID := c.MustGet("family_id").(uuid.UUID)
	meal := &models.MealAssignment{
		FamilyID: familyID,
		DishID:   dishID,
		Date:     date,
		MealType: req.MealType,
	}

	meal, err = h.mealService.PlanMeal(c.Request.Context(), meal)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMealType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		case errors.Is(err, service.ErrDishNotInFamily):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan meal"})
		}
		return
	}

	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), familyID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// ListMeals lists meals in the inclusive range given by from/to query
// parameters (YYYY-MM-DD); both are optional.
func (h *MealHandler) ListMeals(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)

	var from, to time.Time
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
	}

	meals, err := h.mealService.ListMeals(c.Request.Context(), familyID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.mealService.DeleteMeal(c.Request.Context(), familyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}

	c.Status(http.StatusNoContent)
}

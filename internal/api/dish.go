package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"github.com/tavola-app/backend/internal/service"
	"gorm.io/gorm"
)

type DishHandler struct {
	dishService  *service.DishService
	imageService *service.ImageService
}

// NewDishHandler creates a new DishHandler. imageService may be nil when no
// object storage is configured; photo upload then returns 503.
func NewDishHandler(dishService *service.DishService, imageService *service.ImageService) *DishHandler {
	return &DishHandler{
		dishService:  dishService,
		imageService: imageService,
	}
}

func (h *DishHandler) RegisterRoutes(router *gin.RouterGroup) {
	dishes := router.Group("/dishes")
	{
		dishes.GET("", h.ListDishes)
		dishes.GET("/search", h.SearchDishes)
		dishes.GET("/:id", h.GetDish)
		dishes.POST("", h.CreateDish)
		dishes.PUT("/:id", h.UpdateDish)
		dishes.DELETE("/:id", h.DeleteDish)
		dishes.POST("/:id/photo", h.UploadPhoto)
	}
}

func (h *DishHandler) ListDishes(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)

	dishes, err := h.dishService.ListDishes(c.Request.Context(), familyID, models.Category(c.Query("category")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dishes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dishes": dishes})
}

func (h *DishHandler) SearchDishes(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)

	dishes, err := h.dishService.SearchDishes(c.Request.Context(), familyID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search dishes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dishes": dishes})
}

func (h *DishHandler) GetDish(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	dish, err := h.dishService.GetDish(c.Request.Context(), familyID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *DishHandler) CreateDish(c *gin.Context) {
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	familyID := c.MustGet("family_id").(uuid.UUID)
	dish := &models.Dish{
		FamilyID:    familyID,
		Name:        req.Name,
		Category:    req.Category,
		Ingredients: req.Ingredients,
	}

	dish, err := h.dishService.CreateDish(c.Request.Context(), dish)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dish"})
		return
	}

	c.JSON(http.StatusCreated, dish)
}

func (h *DishHandler) UpdateDish(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, err := h.dishService.UpdateDish(c.Request.Context(), familyID, id, &models.Dish{
		Name:        req.Name,
		Category:    req.Category,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dish"})
		}
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *DishHandler) DeleteDish(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	if err := h.dishService.DeleteDish(c.Request.Context(), familyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dish"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *DishHandler) UploadPhoto(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	familyID := c.MustGet("family_id").(uuid.UUID)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	dish, err := h.dishService.GetDish(c.Request.Context(), familyID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, 10<<20))
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing photo data"})
		return
	}

	url, err := h.imageService.UploadDishPhoto(c.Request.Context(), dish.ID, data, c.ContentType())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	updated, err := h.dishService.UpdateDish(c.Request.Context(), familyID, id, &models.Dish{ImageURL: url})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo URL"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/service"
	"gorm.io/gorm"
)

type ShoppingHandler struct {
	shoppingService *service.ShoppingService
}

func NewShoppingHandler(shoppingService *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: shoppingService}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/shopping-lists")
	{
		lists.GET("", h.ListLists)
		lists.GET("/:id", h.GetList)
		lists.POST("", h.GenerateList)
		lists.PUT("/:id/items/:itemId", h.CheckItem)
	}
}

func (h *ShoppingHandler) GenerateList(c *gin.Context) {
	var req GenerateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := time.Parse(dateLayout, req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(dateLayout, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to date must not precede from date"})
		return
	}

	familyID := c.MustGet("family_id").(uuid.UUID)
	list, err := h.shoppingService.GenerateList(c.Request.Context(), familyID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate shopping list"})
		return
	}

	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingHandler) GetList(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return
	}

	list, err := h.shoppingService.GetList(c.Request.Context(), familyID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ShoppingHandler) ListLists(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)

	lists, err := h.shoppingService.ListLists(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping lists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

func (h *ShoppingHandler) CheckItem(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req CheckItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.shoppingService.SetItemChecked(c.Request.Context(), familyID, listID, itemID, req.Checked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

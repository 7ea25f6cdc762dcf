package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/service"
)

type FamilyHandler struct {
	familyService *service.FamilyService
}

func NewFamilyHandler(familyService *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// RegisterRoutes registers family routes on an authenticated group.
// Create and accept-invite do not require an existing membership.
func (h *FamilyHandler) RegisterRoutes(authed, familyScoped *gin.RouterGroup) {
	authed.POST("/families", h.CreateFamily)
	authed.POST("/families/accept-invite", h.AcceptInvite)

	families := familyScoped.Group("/family")
	{
		families.GET("", h.GetFamily)
		families.GET("/members", h.ListMembers)
		families.POST("/invites", h.InviteMember)
	}
}

func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	family, err := h.familyService.CreateFamily(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyInFamily) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already belongs to a family"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family"})
		return
	}

	c.JSON(http.StatusCreated, family)
}

func (h *FamilyHandler) GetFamily(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	family, err := h.familyService.GetFamily(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	c.JSON(http.StatusOK, family)
}

func (h *FamilyHandler) ListMembers(c *gin.Context) {
	familyID := c.MustGet("family_id").(uuid.UUID)
	members, err := h.familyService.ListMembers(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *FamilyHandler) InviteMember(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	familyID := c.MustGet("family_id").(uuid.UUID)
	userID := c.MustGet("user_id").(uuid.UUID)

	invite, err := h.familyService.InviteMember(c.Request.Context(), familyID, userID, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invite"})
		return
	}

	// The token is returned to the inviter to share out of band.
	c.JSON(http.StatusCreated, gin.H{
		"invite": invite,
		"token":  invite.Token,
	})
}

func (h *FamilyHandler) AcceptInvite(c *gin.Context) {
	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	family, err := h.familyService.AcceptInvite(c.Request.Context(), userID, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invite not found"})
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": "invite already accepted"})
		case errors.Is(err, service.ErrAlreadyInFamily):
			c.JSON(http.StatusConflict, gin.H{"error": "user already belongs to a family"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invite"})
		}
		return
	}

	c.JSON(http.StatusOK, family)
}

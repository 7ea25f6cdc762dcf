package api

import "github.com/tavola-app/backend/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AcceptInviteRequest struct {
	Token string `json:"token" binding:"required"`
}

type CreateDishRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    models.Category `json:"category" binding:"required"`
	Ingredients []string        `json:"ingredients"`
}

type UpdateDishRequest struct {
	Name        string          `json:"name"`
	Category    models.Category `json:"category"`
	Ingredients []string        `json:"ingredients"`
}

type PlanMealRequest struct {
	DishID   string          `json:"dish_id" binding:"required"`
	Date     string          `json:"date" binding:"required"` // YYYY-MM-DD
	MealType models.MealType `json:"meal_type" binding:"required"`
}

type GenerateShoppingListRequest struct {
	From string `json:"from" binding:"required"` // YYYY-MM-DD
	To   string `json:"to" binding:"required"`   // YYYY-MM-DD
}

type CheckItemRequest struct {
	Checked bool `json:"checked"`
}

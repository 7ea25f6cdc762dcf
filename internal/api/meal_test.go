package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavola-app/backend/internal/models"
)

type mealResponse struct {
	ID       string `json:"id"`
	DishID   string `json:"dish_id"`
	MealType string `json:"meal_type"`
}

func TestPlanAndListMeals(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")
	dish := env.createDish(t, token, "Carbonara", models.CategoryPrimo)

	w := env.request(t, http.MethodPost, "/api/v1/meals", token, PlanMealRequest{
		DishID:   dish.ID,
		Date:     "2025-05-16",
		MealType: models.MealPranzo,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var planned mealResponse
	decodeJSON(t, w, &planned)
	assert.Equal(t, dish.ID, planned.DishID)
	assert.Equal(t, "pranzo", planned.MealType)

	w = env.request(t, http.MethodGet, "/api/v1/meals?from=2025-05-12&to=2025-05-18", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Meals []mealResponse `json:"meals"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Meals, 1)
	assert.Equal(t, planned.ID, resp.Meals[0].ID)

	// Range that excludes the planned date.
	w = env.request(t, http.MethodGet, "/api/v1/meals?from=2025-05-17&to=2025-05-18", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Empty(t, resp.Meals)
}

func TestPlanMealValidation(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")
	dish := env.createDish(t, token, "Carbonara", models.CategoryPrimo)

	w := env.request(t, http.MethodPost, "/api/v1/meals", token, PlanMealRequest{
		DishID:   dish.ID,
		Date:     "16/05/2025",
		MealType: models.MealPranzo,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/meals", token, PlanMealRequest{
		DishID:   dish.ID,
		Date:     "2025-05-16",
		MealType: "merenda",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanMealForeignDish(t *testing.T) {
	env := setupTestEnv(t)
	ownerToken, _ := env.setupMember(t, "owner@example.com")
	otherToken, _ := env.setupMember(t, "other@example.com")
	dish := env.createDish(t, ownerToken, "Carbonara", models.CategoryPrimo)

	w := env.request(t, http.MethodPost, "/api/v1/meals", otherToken, PlanMealRequest{
		DishID:   dish.ID,
		Date:     "2025-05-16",
		MealType: models.MealPranzo,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMeal(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")
	dish := env.createDish(t, token, "Carbonara", models.CategoryPrimo)

	w := env.request(t, http.MethodPost, "/api/v1/meals", token, PlanMealRequest{
		DishID:   dish.ID,
		Date:     "2025-05-16",
		MealType: models.MealCena,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var planned mealResponse
	decodeJSON(t, w, &planned)

	w = env.request(t, http.MethodDelete, "/api/v1/meals/"+planned.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/meals/"+planned.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

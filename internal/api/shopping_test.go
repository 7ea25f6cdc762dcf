package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavola-app/backend/internal/models"
)

type shoppingListResponse struct {
	ID    string `json:"id"`
	Items []struct {
		ID         string `json:"id"`
		Ingredient string `json:"ingredient"`
		Quantity   int    `json:"quantity"`
		Checked    bool   `json:"checked"`
	} `json:"items"`
}

func TestGenerateShoppingList(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	pasta := env.createDish(t, token, "Carbonara", models.CategoryPrimo)
	chicken := env.createDish(t, token, "Pollo arrosto", models.CategorySecondo)

	for i, dishID := range []string{pasta.ID, chicken.ID} {
		w := env.request(t, http.MethodPost, "/api/v1/meals", token, PlanMealRequest{
			DishID:   dishID,
			Date:     fmt.Sprintf("2025-05-%02d", 12+i),
			MealType: models.MealCena,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := env.request(t, http.MethodPost, "/api/v1/shopping-lists", token, GenerateShoppingListRequest{
		From: "2025-05-12",
		To:   "2025-05-18",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var list shoppingListResponse
	decodeJSON(t, w, &list)
	// Both dishes share the single "salt" ingredient, aggregated with a count.
	require.Len(t, list.Items, 1)
	assert.Equal(t, "salt", list.Items[0].Ingredient)
	assert.Equal(t, 2, list.Items[0].Quantity)
	assert.False(t, list.Items[0].Checked)

	w = env.request(t, http.MethodGet, "/api/v1/shopping-lists/"+list.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPut, "/api/v1/shopping-lists/"+list.ID+"/items/"+list.Items[0].ID, token, CheckItemRequest{Checked: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.request(t, http.MethodGet, "/api/v1/shopping-lists/"+list.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].Checked)
}

func TestGenerateShoppingListValidation(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/shopping-lists", token, GenerateShoppingListRequest{
		From: "2025-05-18",
		To:   "2025-05-12",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListShoppingLists(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	w := env.request(t, http.MethodGet, "/api/v1/shopping-lists", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Lists []shoppingListResponse `json:"lists"`
	}
	decodeJSON(t, w, &resp)
	assert.Empty(t, resp.Lists)
}

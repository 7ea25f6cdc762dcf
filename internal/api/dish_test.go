package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavola-app/backend/internal/models"
)

type dishResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
	ImageURL    string   `json:"image_url"`
}

func (e *TestEnv) createDish(t *testing.T, token, name string, category models.Category) dishResponse {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/dishes", token, CreateDishRequest{
		Name:        name,
		Category:    category,
		Ingredients: []string{"salt"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var dish dishResponse
	decodeJSON(t, w, &dish)
	return dish
}

func TestDishCRUD(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	created := env.createDish(t, token, "Carbonara", models.CategoryPrimo)
	assert.Equal(t, "Carbonara", created.Name)
	assert.Equal(t, "primo", created.Category)

	w := env.request(t, http.MethodGet, "/api/v1/dishes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPut, "/api/v1/dishes/"+created.ID, token, UpdateDishRequest{
		Name: "Carbonara classica",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dishResponse
	decodeJSON(t, w, &updated)
	assert.Equal(t, "Carbonara classica", updated.Name)
	assert.Equal(t, "primo", updated.Category)

	w = env.request(t, http.MethodDelete, "/api/v1/dishes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/dishes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateDishInvalidCategory(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/dishes", token, CreateDishRequest{
		Name:     "Mystery",
		Category: "dessert",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDishesByCategory(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	env.createDish(t, token, "Carbonara", models.CategoryPrimo)
	env.createDish(t, token, "Pollo arrosto", models.CategorySecondo)
	env.createDish(t, token, "Insalata", models.CategoryContorno)

	w := env.request(t, http.MethodGet, "/api/v1/dishes?category=secondo", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Dishes []dishResponse `json:"dishes"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Dishes, 1)
	assert.Equal(t, "Pollo arrosto", resp.Dishes[0].Name)

	w = env.request(t, http.MethodGet, "/api/v1/dishes?category=antipasto", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDishesAreFamilyScoped(t *testing.T) {
	env := setupTestEnv(t)
	ownerToken, _ := env.setupMember(t, "owner@example.com")
	otherToken, _ := env.setupMember(t, "other@example.com")

	dish := env.createDish(t, ownerToken, "Carbonara", models.CategoryPrimo)

	w := env.request(t, http.MethodGet, "/api/v1/dishes/"+dish.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/dishes", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Dishes []dishResponse `json:"dishes"`
	}
	decodeJSON(t, w, &resp)
	assert.Empty(t, resp.Dishes)
}

func TestSearchDishes(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	env.createDish(t, token, "Risotto ai funghi", models.CategoryPrimo)
	env.createDish(t, token, "Insalata", models.CategoryContorno)

	w := env.request(t, http.MethodGet, "/api/v1/dishes/search?q=risotto", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Dishes []dishResponse `json:"dishes"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Dishes, 1)
	assert.Equal(t, "Risotto ai funghi", resp.Dishes[0].Name)
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")
	dish := env.createDish(t, token, "Carbonara", models.CategoryPrimo)

	w := env.request(t, http.MethodPost, "/api/v1/dishes/"+dish.ID+"/photo", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

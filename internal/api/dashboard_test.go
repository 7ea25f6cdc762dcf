package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavola-app/backend/internal/models"
)

func TestDashboardStats(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	pasta := env.createDish(t, token, "Carbonara", models.CategoryPrimo)
	env.createDish(t, token, "Insalata", models.CategoryContorno)

	today := time.Now().UTC().Format("2006-01-02")
	w := env.request(t, http.MethodPost, "/api/v1/meals", token, PlanMealRequest{
		DishID:   pasta.ID,
		Date:     today,
		MealType: models.MealPranzo,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.request(t, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats DashboardStats
	decodeJSON(t, w, &stats)
	assert.Equal(t, int64(2), stats.TotalDishes)
	assert.Equal(t, int64(1), stats.MealsThisWeek)
	assert.Equal(t, int64(1), stats.DistinctDishesUsed)
	assert.Equal(t, "Carbonara", stats.MostUsedDish)
	assert.Equal(t, int64(1), stats.MostUsedDishCount)
}

func TestDashboardStatsEmptyFamily(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.setupMember(t, "owner@example.com")

	w := env.request(t, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats DashboardStats
	decodeJSON(t, w, &stats)
	assert.Equal(t, int64(0), stats.TotalDishes)
	assert.Empty(t, stats.MostUsedDish)
}

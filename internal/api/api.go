package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/tavola-app/backend/config"
	"github.com/tavola-app/backend/internal/middleware"
	"github.com/tavola-app/backend/internal/service"
	"gorm.io/gorm"
)

// Options carries the optional external clients. Any of them may be nil;
// the corresponding feature degrades gracefully.
type Options struct {
	Redis    *redis.Client
	S3       *config.S3Config
	CacheTTL time.Duration
}

// SetupAPI wires services and handlers onto the router.
func SetupAPI(router *gin.Engine, db *gorm.DB, jwtSecret string, opts Options) {
	var cache *service.SuggestionCache
	if opts.Redis != nil {
		cache = service.NewSuggestionCache(opts.Redis, opts.CacheTTL)
	}

	// Initialize services
	authService := service.NewAuthService(db, jwtSecret)
	familyService := service.NewFamilyService(db)
	dishService := service.NewDishService(db, cache)
	mealService := service.NewMealService(db, cache)
	suggestionService := service.NewSuggestionService(db, cache)
	shoppingService := service.NewShoppingService(db)
	weatherService := service.NewWeatherService("")

	var imageService *service.ImageService
	if opts.S3 != nil {
		imageService = service.NewImageService(opts.S3)
	}

	// Initialize handlers
	authHandler := NewAuthHandler(authService)
	familyHandler := NewFamilyHandler(familyService)
	dishHandler := NewDishHandler(dishService, imageService)
	mealHandler := NewMealHandler(mealService)
	suggestionHandler := NewSuggestionHandler(suggestionService)
	shoppingHandler := NewShoppingHandler(shoppingService)
	weatherHandler := NewWeatherHandler(weatherService)
	dashboardHandler := NewDashboardHandler(db)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	if opts.Redis != nil {
		limiter := middleware.NewRateLimiter(opts.Redis, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     120,
			KeyPrefix: "ratelimit",
		})
		authed.Use(limiter.RateLimitMiddleware())
	}

	// Family-scoped routes additionally require membership
	familyScoped := authed.Group("")
	familyScoped.Use(middleware.FamilyMiddleware(authService))

	familyHandler.RegisterRoutes(authed, familyScoped)
	dishHandler.RegisterRoutes(familyScoped)
	mealHandler.RegisterRoutes(familyScoped)
	suggestionHandler.RegisterRoutes(familyScoped)
	shoppingHandler.RegisterRoutes(familyScoped)
	dashboardHandler.RegisterRoutes(familyScoped)
	weatherHandler.RegisterRoutes(authed)
}

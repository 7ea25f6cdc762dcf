package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tavola-app/backend/config"
	"github.com/tavola-app/backend/internal/database"
	"github.com/tavola-app/backend/internal/models"
	"github.com/tavola-app/backend/internal/service"
)

type dishData struct {
	Name        string
	Category    models.Category
	Ingredients []string
}

var sampleDishes = []dishData{
	{"Spaghetti alla carbonara", models.CategoryPrimo, []string{"spaghetti", "guanciale", "eggs", "pecorino", "black pepper"}},
	{"Risotto ai funghi", models.CategoryPrimo, []string{"carnaroli rice", "porcini mushrooms", "onion", "white wine", "parmesan"}},
	{"Lasagne al forno", models.CategoryPrimo, []string{"lasagne sheets", "ground beef", "tomato sauce", "bechamel", "parmesan"}},
	{"Minestrone", models.CategoryPrimo, []string{"carrots", "celery", "zucchini", "beans", "pasta", "tomatoes"}},
	{"Pasta al pesto", models.CategoryPrimo, []string{"trofie", "basil", "pine nuts", "garlic", "parmesan", "olive oil"}},
	{"Pollo arrosto", models.CategorySecondo, []string{"chicken", "rosemary", "garlic", "olive oil", "lemon"}},
	{"Cotoletta alla milanese", models.CategorySecondo, []string{"veal cutlet", "breadcrumbs", "eggs", "butter"}},
	{"Branzino al forno", models.CategorySecondo, []string{"sea bass", "cherry tomatoes", "olives", "white wine"}},
	{"Polpette al sugo", models.CategorySecondo, []string{"ground beef", "breadcrumbs", "eggs", "tomato sauce", "parmesan"}},
	{"Frittata di zucchine", models.CategorySecondo, []string{"eggs", "zucchini", "onion", "parmesan"}},
	{"Insalata mista", models.CategoryContorno, []string{"lettuce", "tomatoes", "carrots", "olive oil", "vinegar"}},
	{"Patate al forno", models.CategoryContorno, []string{"potatoes", "rosemary", "olive oil", "garlic"}},
	{"Verdure grigliate", models.CategoryContorno, []string{"zucchini", "eggplant", "bell peppers", "olive oil"}},
	{"Spinaci saltati", models.CategoryContorno, []string{"spinach", "garlic", "olive oil"}},
	{"Caponata", models.CategoryContorno, []string{"eggplant", "celery", "olives", "capers", "tomatoes", "vinegar"}},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)
	familyService := service.NewFamilyService(db)
	dishService := service.NewDishService(db, nil)
	mealService := service.NewMealService(db, nil)

	if _, err := authService.Register(ctx, "Demo User", "demo@tavola.app", "Password123!"); err != nil {
		if err == service.ErrUserExists {
			log.Println("Demo user already exists, skipping seed")
			return
		}
		log.Fatalf("Failed to create demo user: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", "demo@tavola.app").First(&user).Error; err != nil {
		log.Fatalf("Failed to load demo user: %v", err)
	}

	family, err := familyService.CreateFamily(ctx, user.ID, "Famiglia Demo")
	if err != nil {
		log.Fatalf("Failed to create demo family: %v", err)
	}

	dishIDs := make(map[models.Category][]uuid.UUID)
	for _, d := range sampleDishes {
		dish, err := dishService.CreateDish(ctx, &models.Dish{
			FamilyID:    family.ID,
			Name:        d.Name,
			Category:    d.Category,
			Ingredients: models.JSONBStringArray(d.Ingredients),
		})
		if err != nil {
			log.Fatalf("Failed to create dish %q: %v", d.Name, err)
		}
		dishIDs[d.Category] = append(dishIDs[d.Category], dish.ID)
	}
	log.Printf("Created %d dishes", len(sampleDishes))

	// Plan the past week of meals so the suggestion history has something
	// to work with.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	planned := 0
	for i := 1; i <= 7; i++ {
		date := today.AddDate(0, 0, -i)
		for _, mealType := range []models.MealType{models.MealPranzo, models.MealCena} {
			category := models.EligibleCategories[mealType][planned%len(models.EligibleCategories[mealType])]
			ids := dishIDs[category]
			if len(ids) == 0 {
				continue
			}
			if _, err := mealService.PlanMeal(ctx, &models.MealAssignment{
				FamilyID: family.ID,
				DishID:   ids[planned%len(ids)],
				Date:     date,
				MealType: mealType,
			}); err != nil {
				log.Fatalf("Failed to plan meal: %v", err)
			}
			planned++
		}
	}
	log.Printf("Planned %d meals", planned)

	log.Println("Seed complete: demo@tavola.app / Password123!")
}

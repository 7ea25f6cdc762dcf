package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidCategory = errors.New("invalid dish category")

// DishService handles the family dish catalog.
type DishService struct {
	db    *gorm.DB
	cache *SuggestionCache
}

// NewDishService creates a new DishService instance. cache may be nil.
func NewDishService(db *gorm.DB, cache *SuggestionCache) *DishService {
	return &DishService{db: db, cache: cache}
}

// CreateDish creates a new dish in the family catalog.
func (s *DishService) CreateDish(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if !dish.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	dish.Embedding = GenerateEmbedding(dish.Name)
	if err := s.db.WithContext(ctx).Create(dish).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx, dish.FamilyID)
	return dish, nil
}

// GetDish retrieves a dish by ID, scoped to the family.
func (s *DishService) GetDish(ctx context.Context, familyID, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.WithContext(ctx).First(&dish, "id = ? AND family_id = ?", id, familyID).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// UpdateDish updates a dish's name, category and ingredients.
func (s *DishService) UpdateDish(ctx context.Context, familyID, id uuid.UUID, dish *models.Dish) (*models.Dish, error) {
	if dish.Category != "" && !dish.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if dish.Name != "" {
		dish.Embedding = GenerateEmbedding(dish.Name)
	}
	result := s.db.WithContext(ctx).Model(&models.Dish{}).
		Where("id = ? AND family_id = ?", id, familyID).
		Updates(dish)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	s.invalidate(ctx, familyID)
	return s.GetDish(ctx, familyID, id)
}

// DeleteDish removes a dish from the family catalog.
func (s *DishService) DeleteDish(ctx context.Context, familyID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND family_id = ?", id, familyID).Delete(&models.Dish{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.invalidate(ctx, familyID)
	return nil
}

// ListDishes lists the family's dishes, optionally filtered by category.
func (s *DishService) ListDishes(ctx context.Context, familyID uuid.UUID, category models.Category) ([]*models.Dish, error) {
	query := s.db.WithContext(ctx).Where("family_id = ?", familyID)
	if category != "" {
		if !category.Valid() {
			return nil, ErrInvalidCategory
		}
		query = query.Where("category = ?", category)
	}

	var dishes []models.Dish
	if err := query.Find(&dishes).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Dish, len(dishes))
	for i := range dishes {
		result[i] = &dishes[i]
	}
	return result, nil
}

// SearchDishes searches the family catalog by name or ingredient. On
// Postgres results are additionally ordered by embedding similarity.
func (s *DishService) SearchDishes(ctx context.Context, familyID uuid.UUID, query string) ([]*models.Dish, error) {
	dbQuery := s.db.WithContext(ctx).Where("family_id = ?", familyID)

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.
				Where("LOWER(name) LIKE ? OR LOWER(ingredients::text) LIKE ?", like, like).
				Clauses(clause.OrderBy{
					Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
				})
		} else {
			dbQuery = dbQuery.Where("LOWER(name) LIKE ? OR LOWER(ingredients) LIKE ?", like, like)
		}
	}

	var dishes []models.Dish
	if err := dbQuery.Find(&dishes).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Dish, len(dishes))
	for i := range dishes {
		result[i] = &dishes[i]
	}
	return result, nil
}

func (s *DishService) invalidate(ctx context.Context, familyID uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateFamily(ctx, familyID)
	}
}

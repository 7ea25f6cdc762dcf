package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrDishNotInFamily = errors.New("dish does not belong to the family")
)

// MealService handles the family meal calendar.
type MealService struct {
	db    *gorm.DB
	cache *SuggestionCache
}

// NewMealService creates a new MealService instance. cache may be nil.
func NewMealService(db *gorm.DB, cache *SuggestionCache) *MealService {
	return &MealService{db: db, cache: cache}
}

// PlanMeal schedules a dish for a calendar day and meal slot. The dish must
// belong to the same family; the date is normalized to midnight UTC.
func (s *MealService) PlanMeal(ctx context.Context, meal *models.MealAssignment) (*models.MealAssignment, error) {
	if !meal.MealType.Valid() {
		return nil, ErrInvalidMealType
	}

	var dish models.Dish
	if err := s.db.WithContext(ctx).First(&dish, "id = ? AND family_id = ?", meal.DishID, meal.FamilyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotInFamily
		}
		return nil, err
	}

	meal.Date = dateOnly(meal.Date)
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx, meal.FamilyID)
	return meal, nil
}

// GetMeal retrieves one meal assignment, scoped to the family.
func (s *MealService) GetMeal(ctx context.Context, familyID, id uuid.UUID) (*models.MealAssignment, error) {
	var meal models.MealAssignment
	if err := s.db.WithContext(ctx).First(&meal, "id = ? AND family_id = ?", id, familyID).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// ListMeals lists the family's meal assignments within the inclusive date
// range [from, to]. Zero values leave the corresponding bound open.
func (s *MealService) ListMeals(ctx context.Context, familyID uuid.UUID, from, to time.Time) ([]*models.MealAssignment, error) {
	query := s.db.WithContext(ctx).Where("family_id = ?", familyID)
	if !from.IsZero() {
		query = query.Where("date >= ?", dateOnly(from))
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", dateOnly(to))
	}

	var meals []models.MealAssignment
	if err := query.Order("date, meal_type").Find(&meals).Error; err != nil {
		return nil, err
	}
	result := make([]*models.MealAssignment, len(meals))
	for i := range meals {
		result[i] = &meals[i]
	}
	return result, nil
}

// DeleteMeal removes a meal assignment from the calendar.
func (s *MealService) DeleteMeal(ctx context.Context, familyID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND family_id = ?", id, familyID).Delete(&models.MealAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.invalidate(ctx, familyID)
	return nil
}

func (s *MealService) invalidate(ctx context.Context, familyID uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateFamily(ctx, familyID)
	}
}

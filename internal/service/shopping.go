package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"gorm.io/gorm"
)

// ShoppingService builds shopping lists from the planned meals of a date range.
type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

// GenerateList aggregates the ingredients of every meal planned in the
// inclusive range [from, to] into a persisted shopping list. Ingredients are
// merged case-insensitively; the quantity counts how many planned meals need
// the ingredient.
func (s *ShoppingService) GenerateList(ctx context.Context, familyID uuid.UUID, from, to time.Time) (*models.ShoppingList, error) {
	from = dateOnly(from)
	to = dateOnly(to)

	var meals []models.MealAssignment
	if err := s.db.WithContext(ctx).
		Where("family_id = ? AND date >= ? AND date <= ?", familyID, from, to).
		Find(&meals).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	labels := make(map[string]string) // lowercase -> first spelling seen
	for _, meal := range meals {
		var dish models.Dish
		if err := s.db.WithContext(ctx).First(&dish, "id = ?", meal.DishID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}
		for _, ing := range dish.Ingredients {
			ing = strings.TrimSpace(ing)
			if ing == "" {
				continue
			}
			key := strings.ToLower(ing)
			if _, seen := labels[key]; !seen {
				labels[key] = ing
			}
			counts[key]++
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := models.ShoppingList{
		FamilyID: familyID,
		FromDate: from,
		ToDate:   to,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		for _, k := range keys {
			item := models.ShoppingListItem{
				ListID:     list.ID,
				Ingredient: labels[k],
				Quantity:   counts[k],
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			list.Items = append(list.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetList retrieves a shopping list with its items, scoped to the family.
func (s *ShoppingService) GetList(ctx context.Context, familyID, id uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := s.db.WithContext(ctx).Preload("Items").
		First(&list, "id = ? AND family_id = ?", id, familyID).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListLists lists the family's shopping lists, newest first.
func (s *ShoppingService) ListLists(ctx context.Context, familyID uuid.UUID) ([]*models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	result := make([]*models.ShoppingList, len(lists))
	for i := range lists {
		result[i] = &lists[i]
	}
	return result, nil
}

// SetItemChecked marks an item as bought (or unbought).
func (s *ShoppingService) SetItemChecked(ctx context.Context, familyID, listID, itemID uuid.UUID, checked bool) error {
	var list models.ShoppingList
	if err := s.db.WithContext(ctx).First(&list, "id = ? AND family_id = ?", listID, familyID).Error; err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&models.ShoppingListItem{}).
		Where("id = ? AND list_id = ?", itemID, listID).
		Update("checked", checked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

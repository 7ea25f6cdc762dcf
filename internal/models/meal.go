package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType is the closed set of meal slots.
type MealType string

const (
	MealPranzo MealType = "pranzo"
	MealCena   MealType = "cena"
)

// Valid reports whether m is a known meal slot.
func (m MealType) Valid() bool {
	return m == MealPranzo || m == MealCena
}

// EligibleCategories maps each meal slot to the dish categories it may
// contain, in output order. This table is the single source of truth for
// suggestion eligibility.
var EligibleCategories = map[MealType][]Category{
	MealPranzo: {CategoryPrimo, CategorySecondo, CategoryContorno},
	MealCena:   {CategorySecondo, CategoryContorno},
}

// MealAssignment binds a dish to a calendar day and meal slot. Date carries
// no time-of-day; it is normalized to midnight UTC on write.
type MealAssignment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	FamilyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"family_id"`
	DishID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"dish_id"`
	Date      time.Time      `gorm:"not null;index" json:"date"`
	MealType  MealType       `gorm:"size:10;not null" json:"meal_type"`
}

func (m *MealAssignment) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

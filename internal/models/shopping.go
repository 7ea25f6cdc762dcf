package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingList is generated from the meals planned in a date range.
type ShoppingList struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
	FamilyID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"family_id"`
	FromDate  time.Time          `gorm:"not null" json:"from_date"`
	ToDate    time.Time          `gorm:"not null" json:"to_date"`
	Items     []ShoppingListItem `gorm:"foreignKey:ListID" json:"items"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type ShoppingListItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ListID     uuid.UUID `gorm:"type:uuid;not null;index" json:"list_id"`
	Ingredient string    `gorm:"size:255;not null" json:"ingredient"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	Checked    bool      `gorm:"not null;default:false" json:"checked"`
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Category is the closed set of dish courses.
type Category string

const (
	CategoryPrimo    Category = "primo"
	CategorySecondo  Category = "secondo"
	CategoryContorno Category = "contorno"
)

// Categories lists every valid category in canonical order.
var Categories = []Category{CategoryPrimo, CategorySecondo, CategoryContorno}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPrimo, CategorySecondo, CategoryContorno:
		return true
	}
	return false
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Dish struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	FamilyID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"family_id"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Category    Category         `gorm:"size:20;not null" json:"category"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	ImageURL    string           `gorm:"size:255" json:"image_url"`
	Embedding   pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

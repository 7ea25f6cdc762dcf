package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Family is the tenant scope: dishes, meals and suggestions are all
// partitioned by family.
type Family struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null" json:"owner_id"`
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FamilyInvite lets an existing member invite another user by email.
// The token is single-use; AcceptedAt is nil until the invite is redeemed.
type FamilyInvite struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FamilyID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"family_id"`
	Email      string     `gorm:"size:255;not null" json:"email"`
	Token      string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	InvitedBy  uuid.UUID  `gorm:"type:uuid;not null" json:"invited_by"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

func (i *FamilyInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

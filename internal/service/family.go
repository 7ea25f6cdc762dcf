package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyInFamily   = errors.New("user already belongs to a family")
	ErrNotInFamily       = errors.New("user does not belong to a family")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrInviteAlreadyUsed = errors.New("invite already accepted")
)

// FamilyService manages households and their membership.
type FamilyService struct {
	db *gorm.DB
}

func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

// CreateFamily creates a family owned by the user and makes them a member.
func (s *FamilyService) CreateFamily(ctx context.Context, ownerID uuid.UUID, name string) (*models.Family, error) {
	var owner models.User
	if err := s.db.WithContext(ctx).First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	if owner.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}

	family := models.Family{Name: name, OwnerID: ownerID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		return tx.Model(&owner).Update("family_id", family.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &family, nil
}

func (s *FamilyService) GetFamily(ctx context.Context, familyID uuid.UUID) (*models.Family, error) {
	var family models.Family
	if err := s.db.WithContext(ctx).First(&family, "id = ?", familyID).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// ListMembers returns every user belonging to the family.
func (s *FamilyService) ListMembers(ctx context.Context, familyID uuid.UUID) ([]*models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("family_id = ?", familyID).Find(&users).Error; err != nil {
		return nil, err
	}
	result := make([]*models.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}

// InviteMember creates a single-use invite for the given email address.
func (s *FamilyService) InviteMember(ctx context.Context, familyID, invitedBy uuid.UUID, email string) (*models.FamilyInvite, error) {
	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	invite := models.FamilyInvite{
		FamilyID:  familyID,
		Email:     email,
		Token:     token,
		InvitedBy: invitedBy,
	}
	if err := s.db.WithContext(ctx).Create(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// AcceptInvite redeems an invite token, joining the user to the family.
func (s *FamilyService) AcceptInvite(ctx context.Context, userID uuid.UUID, token string) (*models.Family, error) {
	var invite models.FamilyInvite
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if invite.AcceptedAt != nil {
		return nil, ErrInviteAlreadyUsed
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if user.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}

	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("family_id", invite.FamilyID).Error; err != nil {
			return err
		}
		return tx.Model(&invite).Update("accepted_at", &now).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetFamily(ctx, invite.FamilyID)
}

func generateInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavola-app/backend/internal/models"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreateFamilySetsMembership(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFamilyService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	family, err := svc.CreateFamily(ctx, owner.ID, "Rossi")
	require.NoError(t, err)
	assert.Equal(t, "Rossi", family.Name)
	assert.Equal(t, owner.ID, family.OwnerID)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", owner.ID).Error)
	require.NotNil(t, reloaded.FamilyID)
	assert.Equal(t, family.ID, *reloaded.FamilyID)

	_, err = svc.CreateFamily(ctx, owner.ID, "Bianchi")
	assert.ErrorIs(t, err, ErrAlreadyInFamily)
}

func TestInviteLifecycle(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFamilyService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	family, err := svc.CreateFamily(ctx, owner.ID, "Rossi")
	require.NoError(t, err)

	invite, err := svc.InviteMember(ctx, family.ID, owner.ID, "guest@example.com")
	require.NoError(t, err)
	assert.Len(t, invite.Token, 64)
	assert.Nil(t, invite.AcceptedAt)

	guest := createTestUser(t, db, "guest@example.com")
	joined, err := svc.AcceptInvite(ctx, guest.ID, invite.Token)
	require.NoError(t, err)
	assert.Equal(t, family.ID, joined.ID)

	members, err := svc.ListMembers(ctx, family.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// Second redemption fails.
	other := createTestUser(t, db, "other@example.com")
	_, err = svc.AcceptInvite(ctx, other.ID, invite.Token)
	assert.ErrorIs(t, err, ErrInviteAlreadyUsed)
}

func TestAcceptInviteErrors(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFamilyService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	family, err := svc.CreateFamily(ctx, owner.ID, "Rossi")
	require.NoError(t, err)

	guest := createTestUser(t, db, "guest@example.com")
	_, err = svc.AcceptInvite(ctx, guest.ID, "missing-token")
	assert.ErrorIs(t, err, ErrInviteNotFound)

	invite, err := svc.InviteMember(ctx, family.ID, owner.ID, "owner2@example.com")
	require.NoError(t, err)

	// Someone already in a family cannot accept.
	_, err = svc.AcceptInvite(ctx, owner.ID, invite.Token)
	assert.ErrorIs(t, err, ErrAlreadyInFamily)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

func TestDeleteUserBlockedWhileAssetsAssigned(t *testing.T) {
	userRepo := &fakeUserRepo{users: []*entities.User{{ID: "U1", Name: "Alice", Email: "alice@example.com"}}}
	assetRepo := newFakeAssetRepo()
	assetRepo.existsByUser = true

	lookups := newTestLookupCache(&fakeLocationRepo{}, &fakeModelRepo{}, &fakeStatusRepo{}, userRepo)
	svc := NewUserService(userRepo, assetRepo, lookups, zap.NewNop())

	err := svc.DeleteUser(context.Background(), "U1")
	assert.ErrorIs(t, err, apperrors.ErrUserHasAssets)
	assert.Len(t, userRepo.users, 1, "user must survive the blocked delete")

	assetRepo.existsByUser = false
	require.NoError(t, svc.DeleteUser(context.Background(), "U1"))
	assert.Empty(t, userRepo.users)
}

func TestCreateUserHashesPasswordAndDefaultsRole(t *testing.T) {
	userRepo := &fakeUserRepo{}
	lookups := newTestLookupCache(&fakeLocationRepo{}, &fakeModelRepo{}, &fakeStatusRepo{}, userRepo)
	svc := NewUserService(userRepo, newFakeAssetRepo(), lookups, zap.NewNop())

	got, err := svc.CreateUser(context.Background(), dto.CreateUserDTO{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-enough",
	})
	require.NoError(t, err)

	assert.Equal(t, "user", got.Role)
	require.Len(t, userRepo.users, 1)
	stored := userRepo.users[0]
	assert.NotEqual(t, "s3cret-enough", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-enough")))
}

func TestDeleteLocationBlockedWhileInUse(t *testing.T) {
	locRepo := &fakeLocationRepo{locations: []entities.Location{{ID: "L1", Name: "Head Office"}}}
	assetRepo := newFakeAssetRepo()
	assetRepo.existsByLocation = true

	lookups := newTestLookupCache(locRepo, &fakeModelRepo{}, &fakeStatusRepo{}, &fakeUserRepo{})
	svc := NewLocationService(locRepo, assetRepo, lookups, zap.NewNop())

	err := svc.DeleteLocation(context.Background(), "L1")
	assert.ErrorIs(t, err, apperrors.ErrLocationInUse)
	assert.Len(t, locRepo.locations, 1)

	assetRepo.existsByLocation = false
	require.NoError(t, svc.DeleteLocation(context.Background(), "L1"))
	assert.Empty(t, locRepo.locations)
}

func TestCreateLocationInvalidatesLookupCache(t *testing.T) {
	locRepo := &fakeLocationRepo{}
	lookups := newTestLookupCache(locRepo, &fakeModelRepo{}, &fakeStatusRepo{}, &fakeUserRepo{})
	svc := NewLocationService(locRepo, newFakeAssetRepo(), lookups, zap.NewNop())

	ctx := context.Background()
	assert.Empty(t, lookups.Locations(ctx))

	_, err := svc.CreateLocation(ctx, dto.CreateLocationDTO{Name: "Warehouse"})
	require.NoError(t, err)

	// The snapshot was invalidated, so the new location is visible at once.
	assert.Len(t, lookups.Locations(ctx), 1)
}

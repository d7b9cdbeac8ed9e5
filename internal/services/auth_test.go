package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/service"
)

func newTestAuthService(t *testing.T, users ...*entities.User) AuthServiceInterface {
	t.Helper()
	userRepo := &fakeUserRepo{users: users}
	lookups := newTestLookupCache(&fakeLocationRepo{}, &fakeModelRepo{}, &fakeStatusRepo{}, userRepo)
	userService := NewUserService(userRepo, newFakeAssetRepo(), lookups, zap.NewNop())
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userRepo, userService, jwtSvc, zap.NewNop())
}

func testUser(t *testing.T, password string) *entities.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entities.User{
		ID:           "U1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         "user",
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "correct-horse"))

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "correct-horse"))

	_, errWrongPassword := svc.Login(context.Background(), dto.LoginDTO{Email: "alice@example.com", Password: "nope"})
	_, errUnknownEmail := svc.Login(context.Background(), dto.LoginDTO{Email: "bob@example.com", Password: "nope"})

	assert.ErrorIs(t, errWrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, apperrors.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	u := testUser(t, "correct-horse")
	u.IsActive = false
	svc := newTestAuthService(t, u)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "alice@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "correct-horse"))

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenDTO{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)

	fresh, err := svc.RefreshToken(context.Background(), dto.RefreshTokenDTO{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

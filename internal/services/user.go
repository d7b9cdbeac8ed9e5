package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, isActive *bool) ([]dto.UserDTO, error)
	FindUser(ctx context.Context, id string) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserService struct {
	userRepo  repositories.UserRepositoryInterface
	assetRepo repositories.AssetRepositoryInterface
	lookups   *LookupCache
	logger    *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	lookups *LookupCache,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, assetRepo: assetRepo, lookups: lookups, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, isActive *bool) ([]dto.UserDTO, error) {
	users, err := s.userRepo.GetUsers(ctx, isActive)
	if err != nil {
		return nil, err
	}
	locations := s.lookups.Locations(ctx)
	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, s.toDTO(u, locations))
	}
	return out, nil
}

func (s *UserService) FindUser(ctx context.Context, id string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := s.toDTO(user, s.lookups.Locations(ctx))
	return &d, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if payload.Role == "" {
		payload.Role = constants.RoleUser
	}
	user, err := s.userRepo.CreateUser(ctx, payload, string(hash))
	if err != nil {
		return nil, err
	}
	s.lookups.Invalidate(constants.CollectionUsers)
	s.logger.Info("user created", zap.String("id", user.ID), zap.String("email", user.Email))
	d := s.toDTO(user, s.lookups.Locations(ctx))
	return &d, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.UpdateUser(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.lookups.Invalidate(constants.CollectionUsers)
	d := s.toDTO(user, s.lookups.Locations(ctx))
	return &d, nil
}

// DeleteUser refuses to remove a user who still has assets assigned; the
// assets have to be reassigned or released first.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	inUse, err := s.assetRepo.ExistsByAssignedUser(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrUserHasAssets
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.lookups.Invalidate(constants.CollectionUsers)
	return nil
}

func (s *UserService) toDTO(u *entities.User, locations map[string]entities.Location) dto.UserDTO {
	out := dto.UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.LocationID != nil {
		if l, ok := locations[u.LocationID.String()]; ok {
			out.Location = &dto.ShortLocationDTO{ID: l.ID, Name: l.Name}
		}
	}
	return out
}

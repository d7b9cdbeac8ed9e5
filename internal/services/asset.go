package services

import (
	"context"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type AssetServiceInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]dto.PopulatedAssetDTO, uint64, error)
	FindAsset(ctx context.Context, id string) (*dto.PopulatedAssetDTO, error)
	GetMyAssets(ctx context.Context) ([]dto.PopulatedAssetDTO, error)
	GetUserAssets(ctx context.Context, userID string) ([]dto.PopulatedAssetDTO, error)
	GetLocationAssets(ctx context.Context, locationID string) ([]dto.PopulatedAssetDTO, error)
	CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*entities.Asset, error)
	UpdateAsset(ctx context.Context, id string, payload dto.UpdateAssetDTO) (*entities.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
}

type AssetService struct {
	assetRepo    repositories.AssetRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	locationRepo repositories.LocationRepositoryInterface
	populator    *AssetPopulator
	stats        statsInvalidator
	logger       *zap.Logger
}

func NewAssetService(
	assetRepo repositories.AssetRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	locationRepo repositories.LocationRepositoryInterface,
	populator *AssetPopulator,
	stats statsInvalidator,
	logger *zap.Logger,
) AssetServiceInterface {
	return &AssetService{
		assetRepo:    assetRepo,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		populator:    populator,
		stats:        stats,
		logger:       logger,
	}
}

func (s *AssetService) GetAssets(ctx context.Context, filter types.Filter) ([]dto.PopulatedAssetDTO, uint64, error) {
	assets, total, err := s.assetRepo.GetAssets(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return s.populator.PopulateAssets(ctx, assets), total, nil
}

func (s *AssetService) FindAsset(ctx context.Context, id string) (*dto.PopulatedAssetDTO, error) {
	asset, err := s.assetRepo.FindAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	populated := s.populator.PopulateAsset(ctx, asset)
	return &populated, nil
}

// GetMyAssets returns the assets currently assigned to the calling user.
func (s *AssetService) GetMyAssets(ctx context.Context) ([]dto.PopulatedAssetDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.GetByAssignedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populator.PopulateAssets(ctx, assets), nil
}

// GetUserAssets returns the assets assigned to the given user. Only admins
// may look at other users' holdings.
func (s *AssetService) GetUserAssets(ctx context.Context, userID string) ([]dto.PopulatedAssetDTO, error) {
	callerID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if callerID != userID && !utils.IsAdminCtx(ctx) {
		return nil, apperrors.ErrForbidden
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.GetByAssignedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populator.PopulateAssets(ctx, assets), nil
}

// GetLocationAssets returns the assets placed at the given location.
func (s *AssetService) GetLocationAssets(ctx context.Context, locationID string) ([]dto.PopulatedAssetDTO, error) {
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.GetByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return s.populator.PopulateAssets(ctx, assets), nil
}

func (s *AssetService) CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*entities.Asset, error) {
	asset, err := s.assetRepo.CreateAsset(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("asset created", zap.String("id", asset.ID), zap.String("tag_no", asset.TagNo))
	s.invalidateStats(ctx)
	return asset, nil
}

func (s *AssetService) UpdateAsset(ctx context.Context, id string, payload dto.UpdateAssetDTO) (*entities.Asset, error) {
	asset, err := s.assetRepo.UpdateAsset(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return asset, nil
}

func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	if err := s.assetRepo.DeleteAsset(ctx, id); err != nil {
		return err
	}
	s.logger.Info("asset deleted", zap.String("id", id))
	s.invalidateStats(ctx)
	return nil
}

// invalidateStats drops the cached dashboard aggregates after a write. A
// failed invalidation is logged and never fails the mutation.
func (s *AssetService) invalidateStats(ctx context.Context) {
	if err := s.stats.InvalidateStats(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard stats", zap.Error(err))
	}
}

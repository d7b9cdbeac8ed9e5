package services

import (
	"context"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/repositories"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type ReportServiceInterface interface {
	GetAssetReport(ctx context.Context, filter types.Filter) ([]dto.PopulatedAssetDTO, uint64, error)
}

type reportService struct {
	assetRepo repositories.AssetRepositoryInterface
	populator *AssetPopulator
	logger    *zap.Logger
}

func NewReportService(
	assetRepo repositories.AssetRepositoryInterface,
	populator *AssetPopulator,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{assetRepo: assetRepo, populator: populator, logger: logger}
}

// GetAssetReport returns the populated asset inventory for export. Admin only.
func (s *reportService) GetAssetReport(ctx context.Context, filter types.Filter) ([]dto.PopulatedAssetDTO, uint64, error) {
	if !utils.IsAdminCtx(ctx) {
		return nil, 0, apperrors.ErrForbidden
	}
	assets, total, err := s.assetRepo.GetAssets(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return s.populator.PopulateAssets(ctx, assets), total, nil
}

package services

import (
	"context"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
)

type AssetStatusServiceInterface interface {
	GetAssetStatuses(ctx context.Context) ([]dto.AssetStatusDTO, error)
	FindAssetStatus(ctx context.Context, id string) (*dto.AssetStatusDTO, error)
	CreateAssetStatus(ctx context.Context, payload dto.CreateAssetStatusDTO) (*dto.AssetStatusDTO, error)
}

type AssetStatusService struct {
	statusRepo repositories.AssetStatusRepositoryInterface
	lookups    *LookupCache
}

func NewAssetStatusService(statusRepo repositories.AssetStatusRepositoryInterface, lookups *LookupCache) AssetStatusServiceInterface {
	return &AssetStatusService{statusRepo: statusRepo, lookups: lookups}
}

func (s *AssetStatusService) GetAssetStatuses(ctx context.Context) ([]dto.AssetStatusDTO, error) {
	statuses, err := s.statusRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetStatusDTO, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, assetStatusDTO(st))
	}
	return out, nil
}

func (s *AssetStatusService) FindAssetStatus(ctx context.Context, id string) (*dto.AssetStatusDTO, error) {
	status, err := s.statusRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := assetStatusDTO(*status)
	return &d, nil
}

func (s *AssetStatusService) CreateAssetStatus(ctx context.Context, payload dto.CreateAssetStatusDTO) (*dto.AssetStatusDTO, error) {
	status, err := s.statusRepo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.lookups.Invalidate(constants.CollectionAssetStatuses)
	d := assetStatusDTO(*status)
	return &d, nil
}

func assetStatusDTO(s entities.AssetStatus) dto.AssetStatusDTO {
	return dto.AssetStatusDTO{ID: s.ID, StatusName: s.StatusName}
}

package services

import (
	"context"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
)

type AssetModelServiceInterface interface {
	GetAssetModels(ctx context.Context) ([]dto.AssetModelDTO, error)
	FindAssetModel(ctx context.Context, id string) (*dto.AssetModelDTO, error)
	CreateAssetModel(ctx context.Context, payload dto.CreateAssetModelDTO) (*dto.AssetModelDTO, error)
}

type AssetModelService struct {
	modelRepo repositories.AssetModelRepositoryInterface
	lookups   *LookupCache
}

func NewAssetModelService(modelRepo repositories.AssetModelRepositoryInterface, lookups *LookupCache) AssetModelServiceInterface {
	return &AssetModelService{modelRepo: modelRepo, lookups: lookups}
}

func (s *AssetModelService) GetAssetModels(ctx context.Context) ([]dto.AssetModelDTO, error) {
	models, err := s.modelRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetModelDTO, 0, len(models))
	for _, m := range models {
		out = append(out, assetModelDTO(m))
	}
	return out, nil
}

func (s *AssetModelService) FindAssetModel(ctx context.Context, id string) (*dto.AssetModelDTO, error) {
	model, err := s.modelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := assetModelDTO(*model)
	return &d, nil
}

func (s *AssetModelService) CreateAssetModel(ctx context.Context, payload dto.CreateAssetModelDTO) (*dto.AssetModelDTO, error) {
	model, err := s.modelRepo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.lookups.Invalidate(constants.CollectionAssetModels)
	d := assetModelDTO(*model)
	return &d, nil
}

func assetModelDTO(m entities.AssetModel) dto.AssetModelDTO {
	return dto.AssetModelDTO{ID: m.ID, AssetMake: m.AssetMake, AssetModel: m.AssetModel, AssetType: m.AssetType}
}

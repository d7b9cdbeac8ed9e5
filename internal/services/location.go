package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
)

type LocationServiceInterface interface {
	GetLocations(ctx context.Context) ([]dto.LocationDTO, error)
	FindLocation(ctx context.Context, id string) (*dto.LocationDTO, error)
	CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error)
	UpdateLocation(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error)
	DeleteLocation(ctx context.Context, id string) error
}

type LocationService struct {
	locationRepo repositories.LocationRepositoryInterface
	assetRepo    repositories.AssetRepositoryInterface
	lookups      *LookupCache
	logger       *zap.Logger
}

func NewLocationService(
	locationRepo repositories.LocationRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	lookups *LookupCache,
	logger *zap.Logger,
) LocationServiceInterface {
	return &LocationService{locationRepo: locationRepo, assetRepo: assetRepo, lookups: lookups, logger: logger}
}

func (s *LocationService) GetLocations(ctx context.Context) ([]dto.LocationDTO, error) {
	locations, err := s.locationRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationDTO, 0, len(locations))
	for _, l := range locations {
		out = append(out, locationDTO(l))
	}
	return out, nil
}

func (s *LocationService) FindLocation(ctx context.Context, id string) (*dto.LocationDTO, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := locationDTO(*location)
	return &d, nil
}

func (s *LocationService) CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error) {
	location, err := s.locationRepo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.lookups.Invalidate(constants.CollectionLocations)
	d := locationDTO(*location)
	return &d, nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error) {
	location, err := s.locationRepo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.lookups.Invalidate(constants.CollectionLocations)
	d := locationDTO(*location)
	return &d, nil
}

// DeleteLocation refuses to remove a location that assets still point at.
func (s *LocationService) DeleteLocation(ctx context.Context, id string) error {
	inUse, err := s.assetRepo.ExistsByLocation(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrLocationInUse
	}
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.lookups.Invalidate(constants.CollectionLocations)
	return nil
}

func locationDTO(l entities.Location) dto.LocationDTO {
	return dto.LocationDTO{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt.Format(time.RFC3339)}
}

package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/types"
)

// AssetPopulator resolves the reference fields of assets and transfers into
// the records they point to. Asset lists go through the lookup cache; transfer
// population fetches referenced assets, users and locations in deduplicated
// batch reads because transfers can point at arbitrary historical records.
// A reference whose target no longer exists resolves to nil, never to an error.
type AssetPopulator struct {
	lookups      *LookupCache
	assetRepo    repositories.AssetRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	locationRepo repositories.LocationRepositoryInterface
	logger       *zap.Logger
}

func NewAssetPopulator(
	lookups *LookupCache,
	assetRepo repositories.AssetRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	locationRepo repositories.LocationRepositoryInterface,
	logger *zap.Logger,
) *AssetPopulator {
	return &AssetPopulator{
		lookups:      lookups,
		assetRepo:    assetRepo,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// PopulateAssets enriches assets from the cached lookup snapshots.
func (p *AssetPopulator) PopulateAssets(ctx context.Context, assets []*entities.Asset) []dto.PopulatedAssetDTO {
	models := p.lookups.AssetModels(ctx)
	statuses := p.lookups.AssetStatuses(ctx)
	users := p.lookups.Users(ctx)
	locations := p.lookups.Locations(ctx)

	out := make([]dto.PopulatedAssetDTO, 0, len(assets))
	for _, a := range assets {
		out = append(out, populateAsset(a, models, statuses, users, locations))
	}
	return out
}

// PopulateAsset enriches a single asset from the cached lookup snapshots.
func (p *AssetPopulator) PopulateAsset(ctx context.Context, asset *entities.Asset) dto.PopulatedAssetDTO {
	return populateAsset(asset,
		p.lookups.AssetModels(ctx),
		p.lookups.AssetStatuses(ctx),
		p.lookups.Users(ctx),
		p.lookups.Locations(ctx),
	)
}

// PopulateTransfers enriches transfers with their referenced asset, user and
// location records. Referenced assets are batch-fetched from the store and
// then enriched through the cached path.
func (p *AssetPopulator) PopulateTransfers(ctx context.Context, transfers []*entities.Transfer) ([]dto.PopulatedTransferDTO, error) {
	assetIDs := make([]string, 0, len(transfers))
	userIDs := make([]string, 0, len(transfers)*4)
	locationIDs := make([]string, 0, len(transfers)*2)

	seen := make(map[string]struct{})
	collect := func(dst *[]string, ref *types.Ref) {
		if ref == nil || ref.IsZero() {
			return
		}
		if _, ok := seen[ref.String()]; ok {
			return
		}
		seen[ref.String()] = struct{}{}
		*dst = append(*dst, ref.String())
	}

	for _, t := range transfers {
		collect(&assetIDs, &t.AssetID)
		collect(&userIDs, &t.RequesterID)
		collect(&userIDs, t.ApproverID)
		collect(&userIDs, t.FromUserID)
		collect(&userIDs, t.ToUserID)
		collect(&locationIDs, t.FromLocationID)
		collect(&locationIDs, t.ToLocationID)
	}

	assets, err := p.assetRepo.FindByIDs(ctx, assetIDs)
	if err != nil {
		return nil, err
	}
	users, err := p.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	locations, err := p.locationRepo.FindByIDs(ctx, locationIDs)
	if err != nil {
		return nil, err
	}

	models := p.lookups.AssetModels(ctx)
	statuses := p.lookups.AssetStatuses(ctx)
	cachedUsers := p.lookups.Users(ctx)
	cachedLocations := p.lookups.Locations(ctx)

	out := make([]dto.PopulatedTransferDTO, 0, len(transfers))
	for _, t := range transfers {
		item := dto.PopulatedTransferDTO{
			ID:              t.ID,
			Status:          t.Status,
			Reason:          t.Reason,
			Notes:           t.Notes,
			RejectionReason: t.RejectionReason,
			RequestedAt:     t.RequestedAt.Format(time.RFC3339),
			Requester:       shortUserFromMap(users, &t.RequesterID),
			Approver:        shortUserFromMap(users, t.ApproverID),
			FromUser:        shortUserFromMap(users, t.FromUserID),
			ToUser:          shortUserFromMap(users, t.ToUserID),
			FromLocation:    shortLocationFromMap(locations, t.FromLocationID),
			ToLocation:      shortLocationFromMap(locations, t.ToLocationID),
		}
		if t.ApprovedAt != nil {
			item.ApprovedAt = t.ApprovedAt.Format(time.RFC3339)
		}
		if t.CompletedAt != nil {
			item.CompletedAt = t.CompletedAt.Format(time.RFC3339)
		}
		if asset, ok := assets[t.AssetID.String()]; ok {
			populated := populateAsset(asset, models, statuses, cachedUsers, cachedLocations)
			item.Asset = &populated
		}
		out = append(out, item)
	}
	return out, nil
}

func populateAsset(
	a *entities.Asset,
	models map[string]entities.AssetModel,
	statuses map[string]entities.AssetStatus,
	users map[string]*entities.User,
	locations map[string]entities.Location,
) dto.PopulatedAssetDTO {
	out := dto.PopulatedAssetDTO{
		ID:          a.ID,
		SerialNo:    a.SerialNo,
		TagNo:       a.TagNo,
		Description: a.Description,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
	if a.PurchaseDate != nil {
		out.PurchaseDate = null.TimeFrom(*a.PurchaseDate)
	}
	if a.WarrantyExpiry != nil {
		out.WarrantyExpiry = null.TimeFrom(*a.WarrantyExpiry)
	}
	if a.AssetModelID != nil {
		if m, ok := models[a.AssetModelID.String()]; ok {
			out.AssetType = m.AssetType
			out.Brand = m.AssetMake
			out.Model = m.AssetModel
		}
	}
	if a.AssetStatusID != nil {
		if s, ok := statuses[a.AssetStatusID.String()]; ok {
			out.Status = s.StatusName
		}
	}
	if a.AssignedUserID != nil {
		if u, ok := users[a.AssignedUserID.String()]; ok {
			out.AssignedUser = &dto.ShortUserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	if a.LocationID != nil {
		if l, ok := locations[a.LocationID.String()]; ok {
			out.Location = &dto.ShortLocationDTO{ID: l.ID, Name: l.Name}
		}
	}
	return out
}

func shortUserFromMap(users map[string]*entities.User, ref *types.Ref) *dto.ShortUserDTO {
	if ref == nil || ref.IsZero() {
		return nil
	}
	u, ok := users[ref.String()]
	if !ok {
		return nil
	}
	return &dto.ShortUserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func shortLocationFromMap(locations map[string]entities.Location, ref *types.Ref) *dto.ShortLocationDTO {
	if ref == nil || ref.IsZero() {
		return nil
	}
	l, ok := locations[ref.String()]
	if !ok {
		return nil
	}
	return &dto.ShortLocationDTO{ID: l.ID, Name: l.Name}
}

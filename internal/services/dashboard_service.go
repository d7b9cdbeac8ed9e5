package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
)

// activeStatusName is the asset status that counts as "active" on the
// dashboard. Everything else, including assets without a status, is inactive.
const activeStatusName = "In-service"

const (
	defaultWarrantyWindowDays = 30
	defaultActivityLimit      = 10
	recentAssetWindow         = 30 * 24 * time.Hour
	monthlyReportWindow       = 365 * 24 * time.Hour
)

// statsInvalidator is the slice of the dashboard service that mutating
// services use to drop the cached aggregates after a write.
type statsInvalidator interface {
	InvalidateStats(ctx context.Context) error
}

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
	AssetsByStatus(ctx context.Context) ([]dto.GroupCountDTO, error)
	AssetsByType(ctx context.Context) ([]dto.GroupCountDTO, error)
	AssetsByLocation(ctx context.Context) ([]dto.LocationAssetCountDTO, error)
	MonthlyTransfers(ctx context.Context) ([]dto.MonthlyTransferCountDTO, error)
	WarrantyExpiring(ctx context.Context, days int) (*dto.WarrantyExpiringDTO, error)
	UserAssetAllocation(ctx context.Context) ([]dto.UserAssetCountDTO, error)
	RecentActivities(ctx context.Context, limit int) ([]dto.ActivityDTO, error)
	InvalidateStats(ctx context.Context) error
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	statusRepo    repositories.AssetStatusRepositoryInterface
	transferRepo  repositories.TransferRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	locationRepo  repositories.LocationRepositoryInterface
	assetRepo     repositories.AssetRepositoryInterface
	cache         repositories.CacheRepositoryInterface
	populator     *AssetPopulator
	logger        *zap.Logger
	now           func() time.Time
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	statusRepo repositories.AssetStatusRepositoryInterface,
	transferRepo repositories.TransferRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	locationRepo repositories.LocationRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	populator *AssetPopulator,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		statusRepo:    statusRepo,
		transferRepo:  transferRepo,
		userRepo:      userRepo,
		locationRepo:  locationRepo,
		assetRepo:     assetRepo,
		cache:         cache,
		populator:     populator,
		logger:        logger,
		now:           time.Now,
	}
}

// GetStats serves dashboard aggregates, cached in Redis for a minute. A cache
// outage only costs the caching, never the response.
func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if cached, err := s.cache.Get(ctx, constants.DashboardCacheKey); err == nil && cached != "" {
		var stats dto.DashboardStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, constants.DashboardCacheKey, raw, constants.DashboardCacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *DashboardService) AssetsByStatus(ctx context.Context) ([]dto.GroupCountDTO, error) {
	return s.dashboardRepo.AssetsByStatus(ctx)
}

func (s *DashboardService) AssetsByType(ctx context.Context) ([]dto.GroupCountDTO, error) {
	return s.dashboardRepo.AssetsByType(ctx)
}

func (s *DashboardService) AssetsByLocation(ctx context.Context) ([]dto.LocationAssetCountDTO, error) {
	return s.dashboardRepo.AssetsByLocation(ctx)
}

func (s *DashboardService) MonthlyTransfers(ctx context.Context) ([]dto.MonthlyTransferCountDTO, error) {
	since := s.now().UTC().Add(-monthlyReportWindow)
	return s.transferRepo.MonthlyCounts(ctx, since)
}

func (s *DashboardService) WarrantyExpiring(ctx context.Context, days int) (*dto.WarrantyExpiringDTO, error) {
	if days <= 0 {
		days = defaultWarrantyWindowDays
	}
	from := s.now().UTC()
	until := from.AddDate(0, 0, days)

	assets, err := s.assetRepo.GetWarrantyExpiring(ctx, from, until)
	if err != nil {
		return nil, err
	}
	populated := s.populator.PopulateAssets(ctx, assets)
	return &dto.WarrantyExpiringDTO{
		Assets:        populated,
		Count:         len(populated),
		DaysThreshold: days,
	}, nil
}

func (s *DashboardService) UserAssetAllocation(ctx context.Context) ([]dto.UserAssetCountDTO, error) {
	return s.dashboardRepo.UserAssetAllocation(ctx)
}

// RecentActivities merges the latest transfer requests with assets created in
// the last 30 days into a single reverse-chronological feed.
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]dto.ActivityDTO, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	now := s.now().UTC()

	transfers, err := s.transferRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	populated, err := s.populator.PopulateTransfers(ctx, transfers)
	if err != nil {
		return nil, err
	}

	type activity struct {
		at  time.Time
		dto dto.ActivityDTO
	}
	items := make([]activity, 0, len(transfers)+5)

	for i, t := range transfers {
		tag := "unknown"
		if populated[i].Asset != nil && populated[i].Asset.TagNo != "" {
			tag = populated[i].Asset.TagNo
		}
		user := "Unknown"
		if populated[i].Requester != nil {
			user = populated[i].Requester.Name
		}
		items = append(items, activity{
			at: t.RequestedAt,
			dto: dto.ActivityDTO{
				ID:          t.ID,
				Type:        "asset_transferred",
				Description: fmt.Sprintf("Asset %s transferred", tag),
				Timestamp:   relativeTime(now, t.RequestedAt),
				User:        user,
			},
		})
	}

	assets, err := s.assetRepo.RecentlyCreated(ctx, now.Add(-recentAssetWindow), 5)
	if err != nil {
		return nil, err
	}
	populatedAssets := s.populator.PopulateAssets(ctx, assets)
	for i, a := range assets {
		assetType := populatedAssets[i].AssetType
		if assetType == "" {
			assetType = "asset"
		}
		items = append(items, activity{
			at: a.CreatedAt,
			dto: dto.ActivityDTO{
				ID:          a.ID,
				Type:        "asset_added",
				Description: fmt.Sprintf("New %s added to inventory", assetType),
				Timestamp:   relativeTime(now, a.CreatedAt),
				User:        "Admin",
			},
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].at.After(items[j].at) })
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]dto.ActivityDTO, 0, len(items))
	for _, it := range items {
		out = append(out, it.dto)
	}
	return out, nil
}

func relativeTime(now, at time.Time) string {
	d := now.Sub(at)
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours())/24)
	case d >= time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	default:
		return "just now"
	}
}

func (s *DashboardService) InvalidateStats(ctx context.Context) error {
	return s.cache.Del(ctx, constants.DashboardCacheKey)
}

func (s *DashboardService) computeStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	stats := &dto.DashboardStatsDTO{}

	var err error
	if stats.TotalAssets, err = s.dashboardRepo.CountAssets(ctx); err != nil {
		return nil, err
	}

	status, err := s.statusRepo.FindByName(ctx, activeStatusName)
	switch {
	case err == nil:
		if stats.ActiveAssets, err = s.dashboardRepo.CountAssetsByStatusID(ctx, status.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// no such status seeded, every asset counts as inactive
	default:
		return nil, err
	}
	stats.InactiveAssets = stats.TotalAssets - stats.ActiveAssets

	if stats.PendingTransfers, err = s.transferRepo.CountByStatus(ctx, constants.TransferStatusPending); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalLocations, err = s.locationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.AssetsByStatus, err = s.dashboardRepo.AssetsByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.AssetsByType, err = s.dashboardRepo.AssetsByType(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

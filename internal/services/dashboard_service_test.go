package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/constants"
	"asset-system/pkg/types"
)

type fakeCacheRepo struct {
	data map[string]string
	down bool

	sets int
	gets int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: make(map[string]string)}
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.sets++
	if f.down {
		return errors.New("cache unavailable")
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	f.gets++
	if f.down {
		return "", errors.New("cache unavailable")
	}
	v, ok := f.data[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

type fakeDashboardRepo struct {
	total          uint64
	byStatusID     map[string]uint64
	statusRows     []dto.GroupCountDTO
	typeRows       []dto.GroupCountDTO
	locationRows   []dto.LocationAssetCountDTO
	allocationRows []dto.UserAssetCountDTO
	computeRuns    int
}

func (f *fakeDashboardRepo) CountAssets(ctx context.Context) (uint64, error) {
	f.computeRuns++
	return f.total, nil
}

func (f *fakeDashboardRepo) CountAssetsByStatusID(ctx context.Context, statusID string) (uint64, error) {
	return f.byStatusID[statusID], nil
}

func (f *fakeDashboardRepo) AssetsByStatus(ctx context.Context) ([]dto.GroupCountDTO, error) {
	return f.statusRows, nil
}

func (f *fakeDashboardRepo) AssetsByType(ctx context.Context) ([]dto.GroupCountDTO, error) {
	return f.typeRows, nil
}

func (f *fakeDashboardRepo) AssetsByLocation(ctx context.Context) ([]dto.LocationAssetCountDTO, error) {
	return f.locationRows, nil
}

func (f *fakeDashboardRepo) UserAssetAllocation(ctx context.Context) ([]dto.UserAssetCountDTO, error) {
	return f.allocationRows, nil
}

func newTestDashboardService(dashRepo *fakeDashboardRepo, cache *fakeCacheRepo) DashboardServiceInterface {
	statusRepo := &fakeStatusRepo{statuses: []entities.AssetStatus{{ID: "S1", StatusName: "In-service"}}}
	userRepo := &fakeUserRepo{users: []*entities.User{{ID: "U1"}, {ID: "U2"}}}
	locRepo := &fakeLocationRepo{locations: []entities.Location{{ID: "L1"}}}
	transferRepo := newFakeTransferRepo(
		pendingTransfer("T1"),
		pendingTransfer("T2", func(tr *entities.Transfer) { tr.Status = constants.TransferStatusCompleted }),
	)
	assetRepo := newFakeAssetRepo()
	populator := newTestPopulator(assetRepo, userRepo, locRepo, &fakeModelRepo{}, &fakeStatusRepo{})
	return NewDashboardService(dashRepo, statusRepo, transferRepo, userRepo, locRepo, assetRepo, cache, populator, zap.NewNop())
}

func TestDashboardStatsComputed(t *testing.T) {
	dashRepo := &fakeDashboardRepo{
		total:      10,
		byStatusID: map[string]uint64{"S1": 7},
		statusRows: []dto.GroupCountDTO{{Label: "In-service", Count: 7}, {Label: "UNKNOWN", Count: 3}},
		typeRows:   []dto.GroupCountDTO{{Label: "Laptop", Count: 10}},
	}
	svc := newTestDashboardService(dashRepo, newFakeCacheRepo())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(10), stats.TotalAssets)
	assert.Equal(t, uint64(7), stats.ActiveAssets)
	assert.Equal(t, uint64(3), stats.InactiveAssets)
	assert.Equal(t, uint64(1), stats.PendingTransfers)
	assert.Equal(t, uint64(2), stats.TotalUsers)
	assert.Equal(t, uint64(1), stats.TotalLocations)
	assert.Len(t, stats.AssetsByStatus, 2)
	assert.Len(t, stats.AssetsByType, 1)
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	dashRepo := &fakeDashboardRepo{total: 10, byStatusID: map[string]uint64{"S1": 7}}
	cache := newFakeCacheRepo()
	svc := newTestDashboardService(dashRepo, cache)

	_, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	_, err = svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, dashRepo.computeRuns, "second call must come from the cache")
	assert.Equal(t, 1, cache.sets)
}

func TestDashboardStatsSurvivesCacheOutage(t *testing.T) {
	dashRepo := &fakeDashboardRepo{total: 4, byStatusID: map[string]uint64{"S1": 4}}
	cache := newFakeCacheRepo()
	cache.down = true
	svc := newTestDashboardService(dashRepo, cache)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4), stats.TotalAssets)
}

func newAnalyticsService(transferRepo *fakeTransferRepo, assetRepo *fakeAssetRepo, userRepo *fakeUserRepo, at time.Time) *DashboardService {
	locRepo := &fakeLocationRepo{}
	populator := newTestPopulator(assetRepo, userRepo, locRepo, &fakeModelRepo{}, &fakeStatusRepo{})
	svc := NewDashboardService(
		&fakeDashboardRepo{}, &fakeStatusRepo{}, transferRepo, userRepo, locRepo,
		assetRepo, newFakeCacheRepo(), populator, zap.NewNop(),
	).(*DashboardService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestWarrantyExpiringWindow(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	soon := base.AddDate(0, 0, 10)
	later := base.AddDate(0, 0, 45)
	assetRepo := newFakeAssetRepo(
		&entities.Asset{ID: "A1", SerialNo: "SN-1", TagNo: "A000001", WarrantyExpiry: &soon},
		&entities.Asset{ID: "A2", SerialNo: "SN-2", TagNo: "A000002", WarrantyExpiry: &later},
		&entities.Asset{ID: "A3", SerialNo: "SN-3", TagNo: "A000003"},
	)
	svc := newAnalyticsService(newFakeTransferRepo(), assetRepo, &fakeUserRepo{}, base)

	report, err := svc.WarrantyExpiring(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, report.DaysThreshold, "zero days falls back to the default window")
	require.Equal(t, 1, report.Count)
	assert.Equal(t, "A1", report.Assets[0].ID)

	report, err = svc.WarrantyExpiring(context.Background(), 60)
	require.NoError(t, err)
	assert.Equal(t, 60, report.DaysThreshold)
	assert.Equal(t, 2, report.Count)
}

func TestRecentActivitiesMergesTransfersAndNewAssets(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	userRepo := &fakeUserRepo{users: []*entities.User{{ID: "U1", Name: "Alice"}}}
	assetRepo := newFakeAssetRepo(
		&entities.Asset{ID: "A1", SerialNo: "SN-1", TagNo: "TAG-1", BaseEntity: types.BaseEntity{CreatedAt: base.AddDate(0, -6, 0)}},
		&entities.Asset{ID: "A2", SerialNo: "SN-2", TagNo: "TAG-2", BaseEntity: types.BaseEntity{CreatedAt: base.Add(-1 * time.Hour)}},
	)
	transferRepo := newFakeTransferRepo(
		pendingTransfer("T1", func(tr *entities.Transfer) { tr.RequestedAt = base.Add(-2 * time.Hour) }),
	)
	svc := newAnalyticsService(transferRepo, assetRepo, userRepo, base)

	activities, err := svc.RecentActivities(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	assert.Equal(t, "asset_added", activities[0].Type)
	assert.Equal(t, "New asset added to inventory", activities[0].Description)
	assert.Equal(t, "1 hours ago", activities[0].Timestamp)
	assert.Equal(t, "Admin", activities[0].User)

	assert.Equal(t, "asset_transferred", activities[1].Type)
	assert.Equal(t, "Asset TAG-1 transferred", activities[1].Description)
	assert.Equal(t, "2 hours ago", activities[1].Timestamp)
	assert.Equal(t, "Alice", activities[1].User)
}

func TestRecentActivitiesHonorsLimit(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	assetRepo := newFakeAssetRepo(
		&entities.Asset{ID: "A1", SerialNo: "SN-1", TagNo: "TAG-1", BaseEntity: types.BaseEntity{CreatedAt: base.Add(-1 * time.Hour)}},
		&entities.Asset{ID: "A2", SerialNo: "SN-2", TagNo: "TAG-2", BaseEntity: types.BaseEntity{CreatedAt: base.Add(-2 * time.Hour)}},
	)
	svc := newAnalyticsService(newFakeTransferRepo(), assetRepo, &fakeUserRepo{}, base)

	activities, err := svc.RecentActivities(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "A1", activities[0].ID)
}

func TestMonthlyTransfersCoversLastYear(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	transferRepo := newFakeTransferRepo(
		pendingTransfer("T1", func(tr *entities.Transfer) { tr.RequestedAt = base.AddDate(0, -1, 0) }),
		pendingTransfer("T2", func(tr *entities.Transfer) { tr.RequestedAt = base.AddDate(0, -1, 0).Add(3 * time.Hour) }),
		pendingTransfer("T3", func(tr *entities.Transfer) { tr.RequestedAt = base.AddDate(-2, 0, 0) }),
	)
	svc := newAnalyticsService(transferRepo, newFakeAssetRepo(), &fakeUserRepo{}, base)

	rows, err := svc.MonthlyTransfers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1, "transfers older than a year stay out of the report")
	assert.Equal(t, 2026, rows[0].Year)
	assert.Equal(t, 7, rows[0].Month)
	assert.Equal(t, uint64(2), rows[0].TransferCount)
}

func TestDashboardInvalidateStats(t *testing.T) {
	dashRepo := &fakeDashboardRepo{total: 1, byStatusID: map[string]uint64{}}
	cache := newFakeCacheRepo()
	svc := newTestDashboardService(dashRepo, cache)

	_, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateStats(context.Background()))

	_, err = svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, dashRepo.computeRuns)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/pkg/constants"
)

func newTestLookupCache(locRepo *fakeLocationRepo, modelRepo *fakeModelRepo, statusRepo *fakeStatusRepo, userRepo *fakeUserRepo) *LookupCache {
	return NewLookupCache(locRepo, modelRepo, statusRepo, userRepo, zap.NewNop(), 5*time.Minute)
}

func TestLookupCacheServesSnapshotWithinTTL(t *testing.T) {
	locRepo := &fakeLocationRepo{locations: []entities.Location{{ID: "L1", Name: "Head Office"}}}
	cache := newTestLookupCache(locRepo, &fakeModelRepo{}, &fakeStatusRepo{}, &fakeUserRepo{})

	ctx := context.Background()
	first := cache.Locations(ctx)
	second := cache.Locations(ctx)

	require.Len(t, first, 1)
	assert.Equal(t, "Head Office", first["L1"].Name)
	assert.Equal(t, first["L1"], second["L1"])
	assert.Equal(t, 1, locRepo.allCalls, "second read within TTL must not hit the store")
}

func TestLookupCacheReloadsAfterExpiry(t *testing.T) {
	locRepo := &fakeLocationRepo{locations: []entities.Location{{ID: "L1", Name: "Head Office"}}}
	cache := newTestLookupCache(locRepo, &fakeModelRepo{}, &fakeStatusRepo{}, &fakeUserRepo{})

	current := time.Now()
	cache.now = func() time.Time { return current }

	ctx := context.Background()
	cache.Locations(ctx)
	current = current.Add(6 * time.Minute)
	cache.Locations(ctx)

	assert.Equal(t, 2, locRepo.allCalls)
}

func TestLookupCacheLoadFailureYieldsEmptySnapshot(t *testing.T) {
	locRepo := &fakeLocationRepo{allErr: errors.New("store unavailable")}
	cache := newTestLookupCache(locRepo, &fakeModelRepo{}, &fakeStatusRepo{}, &fakeUserRepo{})

	got := cache.Locations(context.Background())

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLookupCacheInvalidateForcesReload(t *testing.T) {
	locRepo := &fakeLocationRepo{locations: []entities.Location{{ID: "L1", Name: "Head Office"}}}
	cache := newTestLookupCache(locRepo, &fakeModelRepo{}, &fakeStatusRepo{}, &fakeUserRepo{})

	ctx := context.Background()
	cache.Locations(ctx)
	cache.Invalidate(constants.CollectionLocations)
	cache.Locations(ctx)

	assert.Equal(t, 2, locRepo.allCalls)
}

func TestLookupCacheCollectionsAreIndependent(t *testing.T) {
	locRepo := &fakeLocationRepo{locations: []entities.Location{{ID: "L1"}}}
	modelRepo := &fakeModelRepo{models: []entities.AssetModel{{ID: "M1"}}}
	cache := newTestLookupCache(locRepo, modelRepo, &fakeStatusRepo{}, &fakeUserRepo{})

	ctx := context.Background()
	cache.Locations(ctx)
	cache.AssetModels(ctx)
	cache.Invalidate(constants.CollectionLocations)
	cache.Locations(ctx)
	cache.AssetModels(ctx)

	assert.Equal(t, 2, locRepo.allCalls)
	assert.Equal(t, 1, modelRepo.allCalls, "invalidating locations must not evict models")
}

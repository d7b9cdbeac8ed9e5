package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
)

// LookupCache keeps time-bounded in-memory snapshots of the small lookup
// collections (locations, asset models, asset statuses, users) so list and
// detail population does not hit the store on every request.
//
// Refresh is not mutually exclusive: two concurrent callers that
// both see an expired snapshot will both reload, and the last writer wins.
// Reloads are idempotent, so the race is benign; only the map swap itself is
// guarded by the mutex. A failed reload degrades to an empty snapshot instead
// of failing the request; population then simply yields no enrichment until
// the next refresh.
type LookupCache struct {
	locationRepo repositories.LocationRepositoryInterface
	modelRepo    repositories.AssetModelRepositoryInterface
	statusRepo   repositories.AssetStatusRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	logger       *zap.Logger

	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	locations snapshot[entities.Location]
	models    snapshot[entities.AssetModel]
	statuses  snapshot[entities.AssetStatus]
	users     snapshot[*entities.User]
}

type snapshot[T any] struct {
	byID      map[string]T
	fetchedAt time.Time
}

func NewLookupCache(
	locationRepo repositories.LocationRepositoryInterface,
	modelRepo repositories.AssetModelRepositoryInterface,
	statusRepo repositories.AssetStatusRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
	ttl time.Duration,
) *LookupCache {
	if ttl <= 0 {
		ttl = constants.LookupCacheTTL
	}
	return &LookupCache{
		locationRepo: locationRepo,
		modelRepo:    modelRepo,
		statusRepo:   statusRepo,
		userRepo:     userRepo,
		logger:       logger,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (c *LookupCache) Locations(ctx context.Context) map[string]entities.Location {
	return lookupGet(ctx, c, &c.locations, constants.CollectionLocations, func(ctx context.Context) (map[string]entities.Location, error) {
		list, err := c.locationRepo.All(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]entities.Location, len(list))
		for _, l := range list {
			byID[l.ID] = l
		}
		return byID, nil
	})
}

func (c *LookupCache) AssetModels(ctx context.Context) map[string]entities.AssetModel {
	return lookupGet(ctx, c, &c.models, constants.CollectionAssetModels, func(ctx context.Context) (map[string]entities.AssetModel, error) {
		list, err := c.modelRepo.All(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]entities.AssetModel, len(list))
		for _, m := range list {
			byID[m.ID] = m
		}
		return byID, nil
	})
}

func (c *LookupCache) AssetStatuses(ctx context.Context) map[string]entities.AssetStatus {
	return lookupGet(ctx, c, &c.statuses, constants.CollectionAssetStatuses, func(ctx context.Context) (map[string]entities.AssetStatus, error) {
		list, err := c.statusRepo.All(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]entities.AssetStatus, len(list))
		for _, s := range list {
			byID[s.ID] = s
		}
		return byID, nil
	})
}

func (c *LookupCache) Users(ctx context.Context) map[string]*entities.User {
	return lookupGet(ctx, c, &c.users, constants.CollectionUsers, func(ctx context.Context) (map[string]*entities.User, error) {
		list, err := c.userRepo.GetUsers(ctx, nil)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*entities.User, len(list))
		for _, u := range list {
			byID[u.ID] = u
		}
		return byID, nil
	})
}

// Invalidate drops the snapshot of one collection so the next read reloads.
func (c *LookupCache) Invalidate(collection string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch collection {
	case constants.CollectionLocations:
		c.locations = snapshot[entities.Location]{}
	case constants.CollectionAssetModels:
		c.models = snapshot[entities.AssetModel]{}
	case constants.CollectionAssetStatuses:
		c.statuses = snapshot[entities.AssetStatus]{}
	case constants.CollectionUsers:
		c.users = snapshot[*entities.User]{}
	}
}

func lookupGet[T any](
	ctx context.Context,
	c *LookupCache,
	snap *snapshot[T],
	collection string,
	load func(context.Context) (map[string]T, error),
) map[string]T {
	c.mu.Lock()
	if snap.byID != nil && c.now().Sub(snap.fetchedAt) < c.ttl {
		cached := snap.byID
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	byID, err := load(ctx)
	if err != nil {
		c.logger.Warn("lookup cache reload failed, serving empty snapshot",
			zap.String("collection", collection),
			zap.Error(err),
		)
		byID = make(map[string]T)
	}

	c.mu.Lock()
	snap.byID = byID
	snap.fetchedAt = c.now()
	c.mu.Unlock()

	return byID
}

package constants

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	// Lookup collections served by the in-memory reference cache.
	CollectionLocations     = "locations"
	CollectionAssetModels   = "asset_models"
	CollectionAssetStatuses = "asset_statuses"
	CollectionUsers         = "users"

	LookupCacheTTL = 300 * time.Second
)

const (
	DashboardCacheKey = "analytics:dashboard"
	DashboardCacheTTL = time.Minute
)

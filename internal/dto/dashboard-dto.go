package dto

type DashboardStatsDTO struct {
	TotalAssets      uint64 `json:"total_assets"`
	ActiveAssets     uint64 `json:"active_assets"`
	InactiveAssets   uint64 `json:"inactive_assets"`
	PendingTransfers uint64 `json:"pending_transfers"`
	TotalUsers       uint64 `json:"total_users"`
	TotalLocations   uint64 `json:"total_locations"`

	AssetsByStatus []GroupCountDTO `json:"assets_by_status"`
	AssetsByType   []GroupCountDTO `json:"assets_by_type"`
}

type GroupCountDTO struct {
	Label string `json:"label"`
	Count uint64 `json:"count"`
}

type LocationAssetCountDTO struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	AssetCount   uint64 `json:"asset_count"`
}

type MonthlyTransferCountDTO struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	TransferCount uint64 `json:"transfer_count"`
}

type UserAssetCountDTO struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AssetCount uint64 `json:"asset_count"`
}

type WarrantyExpiringDTO struct {
	Assets        []PopulatedAssetDTO `json:"assets_with_expiring_warranty"`
	Count         int                 `json:"count"`
	DaysThreshold int                 `json:"days_threshold"`
}

// ActivityDTO is one row of the recent-activities feed. Timestamp is a
// human-readable relative time ("2 hours ago").
type ActivityDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	User        string `json:"user"`
}

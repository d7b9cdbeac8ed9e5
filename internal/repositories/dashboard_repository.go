package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/dto"
)

type DashboardRepositoryInterface interface {
	CountAssets(ctx context.Context) (uint64, error)
	CountAssetsByStatusID(ctx context.Context, statusID string) (uint64, error)
	AssetsByStatus(ctx context.Context) ([]dto.GroupCountDTO, error)
	AssetsByType(ctx context.Context) ([]dto.GroupCountDTO, error)
	AssetsByLocation(ctx context.Context) ([]dto.LocationAssetCountDTO, error)
	UserAssetAllocation(ctx context.Context) ([]dto.UserAssetCountDTO, error)
}

type dashboardRepository struct{ storage *pgxpool.Pool }

func NewDashboardRepository(storage *pgxpool.Pool) DashboardRepositoryInterface {
	return &dashboardRepository{storage: storage}
}

func (r *dashboardRepository) CountAssets(ctx context.Context) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM assets").Scan(&total)
	return total, err
}

func (r *dashboardRepository) CountAssetsByStatusID(ctx context.Context, statusID string) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM assets WHERE asset_status_id = $1", statusID).Scan(&total)
	return total, err
}

func (r *dashboardRepository) groupCounts(ctx context.Context, query string) ([]dto.GroupCountDTO, error) {
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dto.GroupCountDTO, 0)
	for rows.Next() {
		var g dto.GroupCountDTO
		if err := rows.Scan(&g.Label, &g.Count); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// AssetsByStatus groups assets by status display name. Assets with dangling
// or missing status references fall into the UNKNOWN bucket.
func (r *dashboardRepository) AssetsByStatus(ctx context.Context) ([]dto.GroupCountDTO, error) {
	return r.groupCounts(ctx, `
		SELECT COALESCE(s.status_name, 'UNKNOWN'), COUNT(*)
		FROM assets a
		LEFT JOIN asset_statuses s ON s.id = a.asset_status_id
		GROUP BY 1
		ORDER BY 2 DESC`)
}

func (r *dashboardRepository) AssetsByType(ctx context.Context) ([]dto.GroupCountDTO, error) {
	return r.groupCounts(ctx, `
		SELECT COALESCE(m.asset_type, 'UNKNOWN'), COUNT(*)
		FROM assets a
		LEFT JOIN asset_models m ON m.id = a.asset_model_id
		GROUP BY 1
		ORDER BY 2 DESC`)
}

// AssetsByLocation counts assigned assets per location. Unplaced assets are
// excluded; a dangling location reference reports as Unknown.
func (r *dashboardRepository) AssetsByLocation(ctx context.Context) ([]dto.LocationAssetCountDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT a.location_id, COALESCE(l.name, 'Unknown'), COUNT(*)
		FROM assets a
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE a.location_id IS NOT NULL
		GROUP BY a.location_id, l.name
		ORDER BY 3 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dto.LocationAssetCountDTO, 0)
	for rows.Next() {
		var row dto.LocationAssetCountDTO
		if err := rows.Scan(&row.LocationID, &row.LocationName, &row.AssetCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// UserAssetAllocation counts assigned assets per user. Inactive or dangling
// assignees still carry their counts, reported as Unknown.
func (r *dashboardRepository) UserAssetAllocation(ctx context.Context) ([]dto.UserAssetCountDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT a.assigned_user_id, COALESCE(u.name, 'Unknown'), COALESCE(u.email, ''), COUNT(*)
		FROM assets a
		LEFT JOIN users u ON u.id = a.assigned_user_id AND u.is_active
		WHERE a.assigned_user_id IS NOT NULL
		GROUP BY a.assigned_user_id, u.name, u.email
		ORDER BY 4 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dto.UserAssetCountDTO, 0)
	for rows.Next() {
		var row dto.UserAssetCountDTO
		if err := rows.Scan(&row.UserID, &row.Name, &row.Email, &row.AssetCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

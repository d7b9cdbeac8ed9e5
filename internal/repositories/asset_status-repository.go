package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

const (
	assetStatusTable  = "asset_statuses"
	assetStatusFields = "id, status_name"
)

type AssetStatusRepositoryInterface interface {
	All(ctx context.Context) ([]entities.AssetStatus, error)
	FindByID(ctx context.Context, id string) (*entities.AssetStatus, error)
	FindByName(ctx context.Context, name string) (*entities.AssetStatus, error)
	Create(ctx context.Context, payload dto.CreateAssetStatusDTO) (*entities.AssetStatus, error)
}

type assetStatusRepository struct{ storage *pgxpool.Pool }

func NewAssetStatusRepository(storage *pgxpool.Pool) AssetStatusRepositoryInterface {
	return &assetStatusRepository{storage: storage}
}

func (r *assetStatusRepository) All(ctx context.Context) ([]entities.AssetStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY status_name", assetStatusFields, assetStatusTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]entities.AssetStatus, 0)
	for rows.Next() {
		var s entities.AssetStatus
		if err := rows.Scan(&s.ID, &s.StatusName); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *assetStatusRepository) FindByID(ctx context.Context, id string) (*entities.AssetStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", assetStatusFields, assetStatusTable)
	var s entities.AssetStatus
	err := r.storage.QueryRow(ctx, query, id).Scan(&s.ID, &s.StatusName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *assetStatusRepository) FindByName(ctx context.Context, name string) (*entities.AssetStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE status_name = $1 LIMIT 1", assetStatusFields, assetStatusTable)
	var s entities.AssetStatus
	err := r.storage.QueryRow(ctx, query, name).Scan(&s.ID, &s.StatusName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *assetStatusRepository) Create(ctx context.Context, payload dto.CreateAssetStatusDTO) (*entities.AssetStatus, error) {
	query := fmt.Sprintf("INSERT INTO %s (id, status_name) VALUES ($1, $2) RETURNING %s",
		assetStatusTable, assetStatusFields)
	var s entities.AssetStatus
	err := r.storage.QueryRow(ctx, query, uuid.NewString(), payload.StatusName).Scan(&s.ID, &s.StatusName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return &s, nil
}

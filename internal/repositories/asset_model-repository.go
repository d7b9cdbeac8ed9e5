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
	assetModelTable  = "asset_models"
	assetModelFields = "id, asset_make, asset_model, asset_type"
)

type AssetModelRepositoryInterface interface {
	All(ctx context.Context) ([]entities.AssetModel, error)
	FindByID(ctx context.Context, id string) (*entities.AssetModel, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]entities.AssetModel, error)
	Create(ctx context.Context, payload dto.CreateAssetModelDTO) (*entities.AssetModel, error)
}

type assetModelRepository struct{ storage *pgxpool.Pool }

func NewAssetModelRepository(storage *pgxpool.Pool) AssetModelRepositoryInterface {
	return &assetModelRepository{storage: storage}
}

func (r *assetModelRepository) All(ctx context.Context) ([]entities.AssetModel, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY asset_make, asset_model", assetModelFields, assetModelTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	models := make([]entities.AssetModel, 0)
	for rows.Next() {
		var m entities.AssetModel
		if err := rows.Scan(&m.ID, &m.AssetMake, &m.AssetModel, &m.AssetType); err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

func (r *assetModelRepository) FindByID(ctx context.Context, id string) (*entities.AssetModel, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", assetModelFields, assetModelTable)
	var m entities.AssetModel
	err := r.storage.QueryRow(ctx, query, id).Scan(&m.ID, &m.AssetMake, &m.AssetModel, &m.AssetType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *assetModelRepository) FindByIDs(ctx context.Context, ids []string) (map[string]entities.AssetModel, error) {
	result := make(map[string]entities.AssetModel, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1)", assetModelFields, assetModelTable)
	rows, err := r.storage.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m entities.AssetModel
		if err := rows.Scan(&m.ID, &m.AssetMake, &m.AssetModel, &m.AssetType); err != nil {
			return nil, err
		}
		result[m.ID] = m
	}
	return result, rows.Err()
}

func (r *assetModelRepository) Create(ctx context.Context, payload dto.CreateAssetModelDTO) (*entities.AssetModel, error) {
	query := fmt.Sprintf("INSERT INTO %s (id, asset_make, asset_model, asset_type) VALUES ($1, $2, $3, $4) RETURNING %s",
		assetModelTable, assetModelFields)
	var m entities.AssetModel
	err := r.storage.QueryRow(ctx, query, uuid.NewString(), payload.AssetMake, payload.AssetModel, payload.AssetType).
		Scan(&m.ID, &m.AssetMake, &m.AssetModel, &m.AssetType)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return &m, nil
}

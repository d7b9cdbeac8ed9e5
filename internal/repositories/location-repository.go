package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

const (
	locationTable  = "locations"
	locationFields = "id, name, created_at"
)

type LocationRepositoryInterface interface {
	All(ctx context.Context) ([]entities.Location, error)
	FindByID(ctx context.Context, id string) (*entities.Location, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]entities.Location, error)
	Create(ctx context.Context, payload dto.CreateLocationDTO) (*entities.Location, error)
	Update(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*entities.Location, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (uint64, error)
}

type locationRepository struct{ storage *pgxpool.Pool }

func NewLocationRepository(storage *pgxpool.Pool) LocationRepositoryInterface {
	return &locationRepository{storage: storage}
}

func (r *locationRepository) scanRow(row pgx.Row) (*entities.Location, error) {
	var l entities.Location
	var createdAt time.Time
	if err := row.Scan(&l.ID, &l.Name, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	l.CreatedAt = createdAt
	return &l, nil
}

func (r *locationRepository) All(ctx context.Context) ([]entities.Location, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name", locationFields, locationTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]entities.Location, 0)
	for rows.Next() {
		l, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

func (r *locationRepository) FindByID(ctx context.Context, id string) (*entities.Location, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", locationFields, locationTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

func (r *locationRepository) FindByIDs(ctx context.Context, ids []string) (map[string]entities.Location, error) {
	result := make(map[string]entities.Location, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1)", locationFields, locationTable)
	rows, err := r.storage.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		l, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result[l.ID] = *l
	}
	return result, rows.Err()
}

func (r *locationRepository) Create(ctx context.Context, payload dto.CreateLocationDTO) (*entities.Location, error) {
	query := fmt.Sprintf("INSERT INTO %s (id, name) VALUES ($1, $2) RETURNING %s", locationTable, locationFields)
	l, err := r.scanRow(r.storage.QueryRow(ctx, query, uuid.NewString(), payload.Name))
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return l, nil
}

func (r *locationRepository) Update(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*entities.Location, error) {
	if payload.Name == nil {
		return r.FindByID(ctx, id)
	}
	query := fmt.Sprintf("UPDATE %s SET name = $1 WHERE id = $2 RETURNING %s", locationTable, locationFields)
	return r.scanRow(r.storage.QueryRow(ctx, query, *payload.Name, id))
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", locationTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *locationRepository) Count(ctx context.Context) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", locationTable)).Scan(&total)
	return total, err
}

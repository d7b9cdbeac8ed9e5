package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

const (
	assetTable  = "assets"
	assetFields = "id, serial_no, tag_no, asset_model_id, asset_status_id, location_id, assigned_user_id, purchase_date, warranty_expiry, description, created_at, updated_at"
)

// allowedAssetFilters whitelists filterable columns (protects against SQL injection).
var allowedAssetFilters = map[string]string{
	"asset_model_id":   "asset_model_id",
	"asset_status_id":  "asset_status_id",
	"location_id":      "location_id",
	"assigned_user_id": "assigned_user_id",
}

var allowedAssetSorts = map[string]string{
	"serial_no":       "serial_no",
	"tag_no":          "tag_no",
	"purchase_date":   "purchase_date",
	"warranty_expiry": "warranty_expiry",
	"created_at":      "created_at",
	"updated_at":      "updated_at",
}

type dbAsset struct {
	ID             string
	SerialNo       string
	TagNo          string
	AssetModelID   sql.NullString
	AssetStatusID  sql.NullString
	LocationID     sql.NullString
	AssignedUserID sql.NullString
	PurchaseDate   sql.NullTime
	WarrantyExpiry sql.NullTime
	Description    sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (db *dbAsset) toEntity() *entities.Asset {
	a := &entities.Asset{
		ID:       db.ID,
		SerialNo: db.SerialNo,
		TagNo:    db.TagNo,
	}
	if db.AssetModelID.Valid {
		ref := types.NewRef(db.AssetModelID.String)
		a.AssetModelID = &ref
	}
	if db.AssetStatusID.Valid {
		ref := types.NewRef(db.AssetStatusID.String)
		a.AssetStatusID = &ref
	}
	if db.LocationID.Valid {
		ref := types.NewRef(db.LocationID.String)
		a.LocationID = &ref
	}
	if db.AssignedUserID.Valid {
		ref := types.NewRef(db.AssignedUserID.String)
		a.AssignedUserID = &ref
	}
	a.PurchaseDate = utils.NullTimeToPtr(db.PurchaseDate)
	a.WarrantyExpiry = utils.NullTimeToPtr(db.WarrantyExpiry)
	a.Description = utils.NullStringToString(db.Description)
	a.CreatedAt = db.CreatedAt
	a.UpdatedAt = db.UpdatedAt
	return a
}

type AssetRepositoryInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]*entities.Asset, uint64, error)
	FindAsset(ctx context.Context, id string) (*entities.Asset, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*entities.Asset, error)
	CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*entities.Asset, error)
	UpdateAsset(ctx context.Context, id string, payload dto.UpdateAssetDTO) (*entities.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
	ApplyTransferInTx(ctx context.Context, tx pgx.Tx, assetID string, toUser, toLocation *types.Ref) error
	ExistsByLocation(ctx context.Context, locationID string) (bool, error)
	ExistsByAssignedUser(ctx context.Context, userID string) (bool, error)
	GetByAssignedUser(ctx context.Context, userID string) ([]*entities.Asset, error)
	GetByLocation(ctx context.Context, locationID string) ([]*entities.Asset, error)
	GetWarrantyExpiring(ctx context.Context, from, until time.Time) ([]*entities.Asset, error)
	RecentlyCreated(ctx context.Context, since time.Time, limit int) ([]*entities.Asset, error)
}

type assetRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAssetRepository(storage *pgxpool.Pool, logger *zap.Logger) AssetRepositoryInterface {
	return &assetRepository{storage: storage, logger: logger}
}

func (r *assetRepository) scanRow(row pgx.Row) (*entities.Asset, error) {
	var db dbAsset
	err := row.Scan(
		&db.ID, &db.SerialNo, &db.TagNo,
		&db.AssetModelID, &db.AssetStatusID, &db.LocationID, &db.AssignedUserID,
		&db.PurchaseDate, &db.WarrantyExpiry, &db.Description,
		&db.CreatedAt, &db.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, fmt.Errorf("scanning assets row: %w", err)
	}
	return db.toEntity(), nil
}

func (r *assetRepository) scanRows(rows pgx.Rows) ([]*entities.Asset, error) {
	defer rows.Close()
	assets := make([]*entities.Asset, 0)
	for rows.Next() {
		asset, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *assetRepository) GetAssets(ctx context.Context, filter types.Filter) ([]*entities.Asset, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(assetFields).From(assetTable)
	countBuilder := psql.Select("COUNT(*)").From(assetTable)

	for key, val := range filter.Filter {
		col, ok := allowedAssetFilters[key]
		if !ok {
			continue
		}
		// References may arrive as full document paths; normalize first.
		if s, isStr := val.(string); isStr {
			val = types.NewRef(s).String()
		}
		builder = builder.Where(sq.Eq{col: val})
		countBuilder = countBuilder.Where(sq.Eq{col: val})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds := sq.Or{
			sq.ILike{"serial_no": pattern},
			sq.ILike{"tag_no": pattern},
			sq.ILike{"description": pattern},
			// Brand and model live on the lookup row.
			sq.Expr("asset_model_id IN (SELECT id FROM asset_models WHERE asset_make ILIKE ? OR asset_model ILIKE ?)", pattern, pattern),
		}
		builder = builder.Where(conds)
		countBuilder = countBuilder.Where(conds)
	}

	var total uint64
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building assets count query: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.Asset{}, 0, nil
	}

	builder = builder.OrderBy(orderClause(filter.Sort, allowedAssetSorts, "created_at DESC"))
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building assets list query: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	assets, err := r.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (r *assetRepository) FindAsset(ctx context.Context, id string) (*entities.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", assetFields, assetTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

// FindByIDs is the batched multi-get used by the population layer. Missing
// ids are silently absent from the result map.
func (r *assetRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entities.Asset, error) {
	result := make(map[string]*entities.Asset, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1)", assetFields, assetTable)
	rows, err := r.storage.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	assets, err := r.scanRows(rows)
	if err != nil {
		return nil, err
	}
	for _, asset := range assets {
		result[asset.ID] = asset
	}
	return result, nil
}

func (r *assetRepository) CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*entities.Asset, error) {
	query := fmt.Sprintf(`INSERT INTO %s
		(id, serial_no, tag_no, asset_model_id, asset_status_id, location_id, assigned_user_id, purchase_date, warranty_expiry, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, assetTable, assetFields)

	row := r.storage.QueryRow(ctx, query,
		uuid.NewString(),
		payload.SerialNo,
		payload.TagNo,
		refParam(payload.AssetModelID),
		refParam(payload.AssetStatusID),
		refParam(payload.LocationID),
		refParam(payload.AssignedUserID),
		payload.PurchaseDate.Ptr(),
		payload.WarrantyExpiry.Ptr(),
		nullIfEmpty(payload.Description),
	)
	asset, err := r.scanRow(row)
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return asset, nil
}

func (r *assetRepository) UpdateAsset(ctx context.Context, id string, payload dto.UpdateAssetDTO) (*entities.Asset, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	appendSet := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if payload.SerialNo != nil {
		appendSet("serial_no", *payload.SerialNo)
	}
	if payload.TagNo != nil {
		appendSet("tag_no", *payload.TagNo)
	}
	if payload.AssetModelID != nil {
		appendSet("asset_model_id", types.NewRef(*payload.AssetModelID).String())
	}
	if payload.AssetStatusID != nil {
		appendSet("asset_status_id", types.NewRef(*payload.AssetStatusID).String())
	}
	if payload.LocationID != nil {
		appendSet("location_id", types.NewRef(*payload.LocationID).String())
	}
	if payload.AssignedUserID != nil {
		appendSet("assigned_user_id", types.NewRef(*payload.AssignedUserID).String())
	}
	if payload.PurchaseDate.Valid {
		appendSet("purchase_date", payload.PurchaseDate.Time)
	}
	if payload.WarrantyExpiry.Valid {
		appendSet("warranty_expiry", payload.WarrantyExpiry.Time)
	}
	if payload.Description != nil {
		appendSet("description", *payload.Description)
	}
	if len(setClauses) == 0 {
		return r.FindAsset(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		assetTable, strings.Join(setClauses, ", "), argID, assetFields)
	args = append(args, id)

	asset, err := r.scanRow(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return asset, nil
}

func (r *assetRepository) DeleteAsset(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", assetTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// ApplyTransferInTx overwrites the asset's assignment with the transfer's
// targets. Each field is applied independently; a transfer may carry only one.
func (r *assetRepository) ApplyTransferInTx(ctx context.Context, tx pgx.Tx, assetID string, toUser, toLocation *types.Ref) error {
	var setClauses []string
	var args []interface{}
	argID := 1

	if toUser != nil {
		setClauses = append(setClauses, fmt.Sprintf("assigned_user_id = $%d", argID))
		args = append(args, toUser.String())
		argID++
	}
	if toLocation != nil {
		setClauses = append(setClauses, fmt.Sprintf("location_id = $%d", argID))
		args = append(args, toLocation.String())
		argID++
	}
	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		assetTable, strings.Join(setClauses, ", "), argID)
	args = append(args, assetID)

	_, err := tx.Exec(ctx, query, args...)
	return err
}

func (r *assetRepository) ExistsByLocation(ctx context.Context, locationID string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE location_id = $1)", assetTable),
		locationID,
	).Scan(&exists)
	return exists, err
}

func (r *assetRepository) ExistsByAssignedUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE assigned_user_id = $1)", assetTable),
		userID,
	).Scan(&exists)
	return exists, err
}

func (r *assetRepository) GetByAssignedUser(ctx context.Context, userID string) ([]*entities.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE assigned_user_id = $1 ORDER BY created_at DESC", assetFields, assetTable)
	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

func (r *assetRepository) GetByLocation(ctx context.Context, locationID string) ([]*entities.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE location_id = $1 ORDER BY created_at DESC", assetFields, assetTable)
	rows, err := r.storage.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

// GetWarrantyExpiring returns assets whose warranty runs out inside the
// [from, until] window. Assets without a warranty date never match.
func (r *assetRepository) GetWarrantyExpiring(ctx context.Context, from, until time.Time) ([]*entities.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE warranty_expiry IS NOT NULL AND warranty_expiry >= $1 AND warranty_expiry <= $2
		ORDER BY warranty_expiry`, assetFields, assetTable)
	rows, err := r.storage.Query(ctx, query, from, until)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

func (r *assetRepository) RecentlyCreated(ctx context.Context, since time.Time, limit int) ([]*entities.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE created_at >= $1 ORDER BY created_at DESC LIMIT $2", assetFields, assetTable)
	rows, err := r.storage.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

func refParam(raw *string) interface{} {
	ref := types.NewRefPtr(raw)
	if ref == nil {
		return nil
	}
	return ref.String()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

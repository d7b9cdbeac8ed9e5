package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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
	transferTable  = "transfers"
	transferFields = "id, asset_id, requester_id, approver_id, from_user_id, from_location_id, to_user_id, to_location_id, reason, notes, rejection_reason, status, requested_at, approved_at, completed_at"
)

var allowedTransferFilters = map[string]string{
	"status":   "status",
	"asset_id": "asset_id",
}

var allowedTransferSorts = map[string]string{
	"status":       "status",
	"requested_at": "requested_at",
	"approved_at":  "approved_at",
	"completed_at": "completed_at",
}

type dbTransfer struct {
	ID              string
	AssetID         string
	RequesterID     string
	ApproverID      sql.NullString
	FromUserID      sql.NullString
	FromLocationID  sql.NullString
	ToUserID        sql.NullString
	ToLocationID    sql.NullString
	Reason          string
	Notes           sql.NullString
	RejectionReason sql.NullString
	Status          string
	RequestedAt     time.Time
	ApprovedAt      sql.NullTime
	CompletedAt     sql.NullTime
}

func (db *dbTransfer) toEntity() *entities.Transfer {
	t := &entities.Transfer{
		ID:          db.ID,
		AssetID:     types.NewRef(db.AssetID),
		RequesterID: types.NewRef(db.RequesterID),
		Reason:      db.Reason,
		Status:      db.Status,
		RequestedAt: db.RequestedAt,
	}
	setRef := func(dst **types.Ref, src sql.NullString) {
		if src.Valid {
			ref := types.NewRef(src.String)
			*dst = &ref
		}
	}
	setRef(&t.ApproverID, db.ApproverID)
	setRef(&t.FromUserID, db.FromUserID)
	setRef(&t.FromLocationID, db.FromLocationID)
	setRef(&t.ToUserID, db.ToUserID)
	setRef(&t.ToLocationID, db.ToLocationID)
	t.Notes = utils.NullStringToString(db.Notes)
	t.RejectionReason = utils.NullStringToString(db.RejectionReason)
	t.ApprovedAt = utils.NullTimeToPtr(db.ApprovedAt)
	t.CompletedAt = utils.NullTimeToPtr(db.CompletedAt)
	return t
}

type TransferRepositoryInterface interface {
	GetTransfers(ctx context.Context, filter types.Filter, requesterID string) ([]*entities.Transfer, uint64, error)
	FindTransfer(ctx context.Context, id string) (*entities.Transfer, error)
	CreateTransfer(ctx context.Context, t *entities.Transfer) (*entities.Transfer, error)
	// MarkApproved and MarkRejected are status-guarded like CompleteInTx: the
	// update only lands while the transfer still holds expectedStatus, and a
	// guard miss surfaces as Conflict.
	MarkApproved(ctx context.Context, id, approverID, expectedStatus string, at time.Time) (*entities.Transfer, error)
	MarkRejected(ctx context.Context, id, approverID, expectedStatus, reason string) (*entities.Transfer, error)
	// CompleteInTx performs the status-guarded completion update. It returns
	// false without error when the guard misses, meaning the transfer left
	// expectedStatus concurrently.
	CompleteInTx(ctx context.Context, tx pgx.Tx, id, approverID, expectedStatus string, at time.Time) (bool, error)
	SetNotes(ctx context.Context, id, notes string) error
	CountByStatus(ctx context.Context, status string) (uint64, error)
	Recent(ctx context.Context, limit int) ([]*entities.Transfer, error)
	MonthlyCounts(ctx context.Context, since time.Time) ([]dto.MonthlyTransferCountDTO, error)
}

type transferRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTransferRepository(storage *pgxpool.Pool, logger *zap.Logger) TransferRepositoryInterface {
	return &transferRepository{storage: storage, logger: logger}
}

func (r *transferRepository) scanRow(row pgx.Row) (*entities.Transfer, error) {
	var db dbTransfer
	err := row.Scan(
		&db.ID, &db.AssetID, &db.RequesterID, &db.ApproverID,
		&db.FromUserID, &db.FromLocationID, &db.ToUserID, &db.ToLocationID,
		&db.Reason, &db.Notes, &db.RejectionReason, &db.Status,
		&db.RequestedAt, &db.ApprovedAt, &db.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransferNotFound
		}
		return nil, fmt.Errorf("scanning transfers row: %w", err)
	}
	return db.toEntity(), nil
}

// GetTransfers lists transfers, optionally restricted to a single requester
// (non-admin callers only ever see their own requests).
func (r *transferRepository) GetTransfers(ctx context.Context, filter types.Filter, requesterID string) ([]*entities.Transfer, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(transferFields).From(transferTable)
	countBuilder := psql.Select("COUNT(*)").From(transferTable)

	if requesterID != "" {
		builder = builder.Where(sq.Eq{"requester_id": requesterID})
		countBuilder = countBuilder.Where(sq.Eq{"requester_id": requesterID})
	}
	for key, val := range filter.Filter {
		col, ok := allowedTransferFilters[key]
		if !ok {
			continue
		}
		if s, isStr := val.(string); isStr && col != "status" {
			val = types.NewRef(s).String()
		}
		builder = builder.Where(sq.Eq{col: val})
		countBuilder = countBuilder.Where(sq.Eq{col: val})
	}

	var total uint64
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building transfers count query: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.Transfer{}, 0, nil
	}

	builder = builder.OrderBy(orderClause(filter.Sort, allowedTransferSorts, "requested_at DESC"))
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building transfers list query: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transfers := make([]*entities.Transfer, 0)
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		transfers = append(transfers, t)
	}
	return transfers, total, rows.Err()
}

func (r *transferRepository) FindTransfer(ctx context.Context, id string) (*entities.Transfer, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", transferFields, transferTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

func (r *transferRepository) CreateTransfer(ctx context.Context, t *entities.Transfer) (*entities.Transfer, error) {
	query := fmt.Sprintf(`INSERT INTO %s
		(id, asset_id, requester_id, from_user_id, from_location_id, to_user_id, to_location_id, reason, notes, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s`, transferTable, transferFields)

	row := r.storage.QueryRow(ctx, query,
		uuid.NewString(),
		t.AssetID.String(),
		t.RequesterID.String(),
		refValue(t.FromUserID),
		refValue(t.FromLocationID),
		refValue(t.ToUserID),
		refValue(t.ToLocationID),
		t.Reason,
		nullIfEmpty(t.Notes),
		t.Status,
		t.RequestedAt,
	)
	return r.scanRow(row)
}

func (r *transferRepository) MarkApproved(ctx context.Context, id, approverID, expectedStatus string, at time.Time) (*entities.Transfer, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = 'APPROVED', approver_id = $1, approved_at = $2
		WHERE id = $3 AND status = $4 RETURNING %s`, transferTable, transferFields)
	t, err := r.scanRow(r.storage.QueryRow(ctx, query, approverID, at, id, expectedStatus))
	if errors.Is(err, apperrors.ErrTransferNotFound) {
		// The caller read the transfer moments ago, so an empty update means
		// it left expectedStatus concurrently.
		return nil, apperrors.ErrConflict
	}
	return t, err
}

func (r *transferRepository) MarkRejected(ctx context.Context, id, approverID, expectedStatus, reason string) (*entities.Transfer, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = 'REJECTED', approver_id = $1, rejection_reason = $2
		WHERE id = $3 AND status = $4 RETURNING %s`, transferTable, transferFields)
	t, err := r.scanRow(r.storage.QueryRow(ctx, query, approverID, reason, id, expectedStatus))
	if errors.Is(err, apperrors.ErrTransferNotFound) {
		return nil, apperrors.ErrConflict
	}
	return t, err
}

func (r *transferRepository) CompleteInTx(ctx context.Context, tx pgx.Tx, id, approverID, expectedStatus string, at time.Time) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = 'COMPLETED', approver_id = $1, completed_at = $2
		WHERE id = $3 AND status = $4`, transferTable)
	result, err := tx.Exec(ctx, query, approverID, at, id, expectedStatus)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *transferRepository) SetNotes(ctx context.Context, id, notes string) error {
	query := fmt.Sprintf("UPDATE %s SET notes = $1 WHERE id = $2", transferTable)
	result, err := r.storage.Exec(ctx, query, nullIfEmpty(notes), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTransferNotFound
	}
	return nil
}

func (r *transferRepository) CountByStatus(ctx context.Context, status string) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE status = $1", transferTable), status).Scan(&total)
	return total, err
}

func (r *transferRepository) Recent(ctx context.Context, limit int) ([]*entities.Transfer, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY requested_at DESC LIMIT $1", transferFields, transferTable)
	rows, err := r.storage.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make([]*entities.Transfer, 0, limit)
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// MonthlyCounts buckets transfers requested since the cutoff by calendar
// month.
func (r *transferRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]dto.MonthlyTransferCountDTO, error) {
	query := fmt.Sprintf(`SELECT
			EXTRACT(YEAR FROM requested_at)::int,
			EXTRACT(MONTH FROM requested_at)::int,
			COUNT(*)
		FROM %s
		WHERE requested_at >= $1
		GROUP BY 1, 2
		ORDER BY 1, 2`, transferTable)
	rows, err := r.storage.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dto.MonthlyTransferCountDTO, 0)
	for rows.Next() {
		var m dto.MonthlyTransferCountDTO
		if err := rows.Scan(&m.Year, &m.Month, &m.TransferCount); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func refValue(ref *types.Ref) interface{} {
	if ref == nil {
		return nil
	}
	return ref.String()
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

const (
	userTable  = "users"
	userFields = "id, name, email, password_hash, role, is_active, location_id, created_at"
)

type dbUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	LocationID   sql.NullString
	CreatedAt    time.Time
}

func (db *dbUser) toEntity() *entities.User {
	u := &entities.User{
		ID:           db.ID,
		Name:         db.Name,
		Email:        db.Email,
		PasswordHash: db.PasswordHash,
		Role:         db.Role,
		IsActive:     db.IsActive,
		CreatedAt:    db.CreatedAt,
	}
	if db.LocationID.Valid {
		ref := types.NewRef(db.LocationID.String)
		u.LocationID = &ref
	}
	return u
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, isActive *bool) ([]*entities.User, error)
	FindUserByID(ctx context.Context, id string) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
	Count(ctx context.Context) (uint64, error)
}

type userRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

func (r *userRepository) scanRow(row pgx.Row) (*entities.User, error) {
	var db dbUser
	err := row.Scan(&db.ID, &db.Name, &db.Email, &db.PasswordHash, &db.Role, &db.IsActive, &db.LocationID, &db.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning users row: %w", err)
	}
	return db.toEntity(), nil
}

func (r *userRepository) GetUsers(ctx context.Context, isActive *bool) ([]*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", userFields, userTable)
	var args []interface{}
	if isActive != nil {
		query += " WHERE is_active = $1"
		args = append(args, *isActive)
	}
	query += " ORDER BY name"

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		u, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", userFields, userTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1 LIMIT 1", userFields, userTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, email))
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entities.User, error) {
	result := make(map[string]*entities.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1)", userFields, userTable)
	rows, err := r.storage.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result[u.ID] = u
	}
	return result, rows.Err()
}

func (r *userRepository) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*entities.User, error) {
	role := payload.Role
	if role == "" {
		role = "user"
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, name, email, password_hash, role, is_active, location_id)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6) RETURNING %s`, userTable, userFields)

	u, err := r.scanRow(r.storage.QueryRow(ctx, query,
		uuid.NewString(), payload.Name, payload.Email, passwordHash, role, refParam(payload.LocationID)))
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return u, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	appendSet := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argID))
		args = append(args, val)
		argID++
	}

	if payload.Name != nil {
		appendSet("name", *payload.Name)
	}
	if payload.Email != nil {
		appendSet("email", *payload.Email)
	}
	if payload.Role != nil {
		appendSet("role", *payload.Role)
	}
	if payload.IsActive != nil {
		appendSet("is_active", *payload.IsActive)
	}
	if payload.LocationID != nil {
		appendSet("location_id", types.NewRef(*payload.LocationID).String())
	}
	if len(setClauses) == 0 {
		return r.FindUserByID(ctx, id)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		userTable, strings.Join(setClauses, ", "), argID, userFields)
	args = append(args, id)

	u, err := r.scanRow(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return u, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", userTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", userTable)).Scan(&total)
	return total, err
}

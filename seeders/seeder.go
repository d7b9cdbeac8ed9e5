package seeders

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"asset-system/pkg/constants"
)

// SeedDictionaries fills the lookup tables. Existing rows are left untouched,
// so the seeder is safe to re-run.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()

	if err := seedAssetStatuses(ctx, db); err != nil {
		log.Fatalf("seeding asset statuses: %v", err)
	}
	if err := seedAssetModels(ctx, db); err != nil {
		log.Fatalf("seeding asset models: %v", err)
	}
	if err := seedLocations(ctx, db); err != nil {
		log.Fatalf("seeding locations: %v", err)
	}
	log.Println("dictionaries seeded")
}

// SeedAdmin creates the initial administrator account if no user with the
// given email exists yet.
func SeedAdmin(db *pgxpool.Pool, email, password string) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing admin password: %v", err)
	}

	query := `INSERT INTO users (id, name, email, password_hash, role, is_active)
		VALUES ($1, 'Administrator', $2, $3, $4, TRUE)
		ON CONFLICT (email) DO NOTHING`
	if _, err := db.Exec(ctx, query, uuid.NewString(), email, string(hash), constants.RoleAdmin); err != nil {
		log.Fatalf("seeding admin user: %v", err)
	}
	log.Printf("admin user ready: %s", email)
}

func seedAssetStatuses(ctx context.Context, db *pgxpool.Pool) error {
	query := `INSERT INTO asset_statuses (id, status_name) VALUES ($1, $2)
		ON CONFLICT (status_name) DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range assetStatusesData {
		if _, err := tx.Exec(ctx, query, uuid.NewString(), s.Name); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedAssetModels(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, m := range assetModelsData {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM asset_models WHERE asset_make = $1 AND asset_model = $2)`,
			m.Make, m.Model).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO asset_models (id, asset_make, asset_model, asset_type) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), m.Make, m.Model, m.Type)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedLocations(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, name := range locationsData {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM locations WHERE name = $1)`, name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := tx.Exec(ctx, `INSERT INTO locations (id, name) VALUES ($1, $2)`, uuid.NewString(), name); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/autocloud/autocloud-api/internal/models"
)

const userColumns = `id, google_id, email, name, picture, password_hash,
	drive_usage_bytes, drive_limit_bytes, gmail_usage_bytes, gmail_limit_bytes,
	photos_usage_bytes, photos_limit_bytes, mobile_backup_usage_bytes, mobile_backup_limit_bytes,
	total_usage_bytes, total_limit_bytes, created_at, updated_at`

// UserRepository provides database access for user accounts and their quota
// snapshots.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Upsert inserts or refreshes the account keyed by email, replacing the
// quota snapshot. The stored password hash is preserved on conflict.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (id, google_id, email, name, picture, password_hash,
			drive_usage_bytes, drive_limit_bytes, gmail_usage_bytes, gmail_limit_bytes,
			photos_usage_bytes, photos_limit_bytes, mobile_backup_usage_bytes, mobile_backup_limit_bytes,
			total_usage_bytes, total_limit_bytes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (email) DO UPDATE SET
			google_id = EXCLUDED.google_id,
			name = EXCLUDED.name,
			picture = EXCLUDED.picture,
			drive_usage_bytes = EXCLUDED.drive_usage_bytes,
			drive_limit_bytes = EXCLUDED.drive_limit_bytes,
			gmail_usage_bytes = EXCLUDED.gmail_usage_bytes,
			gmail_limit_bytes = EXCLUDED.gmail_limit_bytes,
			photos_usage_bytes = EXCLUDED.photos_usage_bytes,
			photos_limit_bytes = EXCLUDED.photos_limit_bytes,
			mobile_backup_usage_bytes = EXCLUDED.mobile_backup_usage_bytes,
			mobile_backup_limit_bytes = EXCLUDED.mobile_backup_limit_bytes,
			total_usage_bytes = EXCLUDED.total_usage_bytes,
			total_limit_bytes = EXCLUDED.total_limit_bytes,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.GoogleID,
		user.Email,
		user.Name,
		user.Picture,
		user.PasswordHash,
		user.DriveUsageBytes,
		user.DriveLimitBytes,
		user.GmailUsageBytes,
		user.GmailLimitBytes,
		user.PhotosUsageBytes,
		user.PhotosLimitBytes,
		user.MobileBackupUsageBytes,
		user.MobileBackupLimitBytes,
		user.TotalUsageBytes,
		user.TotalLimitBytes,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

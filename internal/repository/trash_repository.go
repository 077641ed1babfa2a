package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/autocloud/autocloud-api/internal/models"
)

// TrashRepository persists the trash ledger in Postgres. At most one active
// record exists per (owner_email, file_id); upserts refresh the timestamps
// and the credential snapshot.
type TrashRepository struct {
	db *sqlx.DB
}

// NewTrashRepository creates a new instance of TrashRepository.
func NewTrashRepository(db *sqlx.DB) *TrashRepository {
	return &TrashRepository{db: db}
}

// Upsert inserts or refreshes the ledger row for the record's owner and file.
func (r *TrashRepository) Upsert(ctx context.Context, record *models.TrashRecord) error {
	const query = `INSERT INTO trash_records (id, owner_email, file_id, name, mime_type, size_bytes, deleted_at, expiry_at, access_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (owner_email, file_id) DO UPDATE SET
			name = EXCLUDED.name,
			mime_type = EXCLUDED.mime_type,
			size_bytes = EXCLUDED.size_bytes,
			deleted_at = EXCLUDED.deleted_at,
			expiry_at = EXCLUDED.expiry_at,
			access_token = EXCLUDED.access_token`
	if _, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.OwnerEmail,
		record.FileID,
		record.Name,
		record.MimeType,
		record.SizeBytes,
		record.DeletedAt,
		record.ExpiryAt,
		record.AccessToken,
	); err != nil {
		return fmt.Errorf("upsert trash record: %w", err)
	}
	return nil
}

// FindByFileID returns the ledger row for a file, if any.
func (r *TrashRepository) FindByFileID(ctx context.Context, fileID string) (*models.TrashRecord, error) {
	const query = `SELECT id, owner_email, file_id, name, mime_type, size_bytes, deleted_at, expiry_at, access_token FROM trash_records WHERE file_id = $1 LIMIT 1`
	var record models.TrashRecord
	if err := r.db.GetContext(ctx, &record, query, fileID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find trash record by file id: %w", err)
	}
	return &record, nil
}

// DeleteByFileID removes the ledger row for a file.
func (r *TrashRepository) DeleteByFileID(ctx context.Context, fileID string) error {
	const query = `DELETE FROM trash_records WHERE file_id = $1`
	if _, err := r.db.ExecContext(ctx, query, fileID); err != nil {
		return fmt.Errorf("delete trash record: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's ledger newest-first. filterDays > 0 limits
// the listing to records deleted within that many days.
func (r *TrashRepository) ListByOwner(ctx context.Context, ownerEmail string, filterDays int) ([]models.TrashRecord, error) {
	query := `SELECT id, owner_email, file_id, name, mime_type, size_bytes, deleted_at, expiry_at, access_token FROM trash_records WHERE owner_email = $1`
	args := []interface{}{ownerEmail}
	if filterDays > 0 {
		query += " AND deleted_at >= NOW() - ($2 * INTERVAL '1 day')"
		args = append(args, filterDays)
	}
	query += " ORDER BY deleted_at DESC"

	var records []models.TrashRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list trash records: %w", err)
	}
	return records, nil
}

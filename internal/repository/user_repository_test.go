package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocloud/autocloud-api/internal/models"
)

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

var userTestColumns = []string{
	"id", "google_id", "email", "name", "picture", "password_hash",
	"drive_usage_bytes", "drive_limit_bytes", "gmail_usage_bytes", "gmail_limit_bytes",
	"photos_usage_bytes", "photos_limit_bytes", "mobile_backup_usage_bytes", "mobile_backup_limit_bytes",
	"total_usage_bytes", "total_limit_bytes", "created_at", "updated_at",
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userTestColumns).
		AddRow("user-1", "g-1", "owner@example.com", "Owner", "", nil,
			int64(1), int64(2), int64(3), int64(4),
			int64(5), int64(6), int64(7), int64(8),
			int64(9), int64(10), now, now)
	mock.ExpectQuery("SELECT id, google_id").
		WithArgs("owner@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Nil(t, user.PasswordHash)
	assert.Equal(t, int64(9), user.TotalUsageBytes)
}

func TestUserRepositoryFindByEmailNoRows(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, google_id").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-1", "g-1", "owner@example.com", "Owner", "", nil,
			int64(1), int64(2), int64(3), int64(4),
			int64(5), int64(6), int64(7), int64(8),
			int64(9), int64(10), now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{
		ID:                     "user-1",
		GoogleID:               "g-1",
		Email:                  "owner@example.com",
		Name:                   "Owner",
		DriveUsageBytes:        1,
		DriveLimitBytes:        2,
		GmailUsageBytes:        3,
		GmailLimitBytes:        4,
		PhotosUsageBytes:       5,
		PhotosLimitBytes:       6,
		MobileBackupUsageBytes: 7,
		MobileBackupLimitBytes: 8,
		TotalUsageBytes:        9,
		TotalLimitBytes:        10,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	require.NoError(t, repo.Upsert(context.Background(), user))
	require.NoError(t, mock.ExpectationsWereMet())
}

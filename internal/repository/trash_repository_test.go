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

func newTrashRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

var trashColumns = []string{"id", "owner_email", "file_id", "name", "mime_type", "size_bytes", "deleted_at", "expiry_at", "access_token"}

func TestTrashRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newTrashRepoMock(t)
	defer cleanup()
	repo := NewTrashRepository(db)

	deletedAt := time.Now()
	mock.ExpectExec("INSERT INTO trash_records").
		WithArgs("rec-1", "owner@example.com", "f1", "old.tmp", "application/octet-stream", int64(1024), deletedAt, deletedAt.Add(7*24*time.Hour), "token").
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.TrashRecord{
		ID:          "rec-1",
		OwnerEmail:  "owner@example.com",
		FileID:      "f1",
		Name:        "old.tmp",
		MimeType:    "application/octet-stream",
		SizeBytes:   1024,
		DeletedAt:   deletedAt,
		ExpiryAt:    deletedAt.Add(7 * 24 * time.Hour),
		AccessToken: "token",
	}
	require.NoError(t, repo.Upsert(context.Background(), record))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashRepositoryFindByFileID(t *testing.T) {
	db, mock, cleanup := newTrashRepoMock(t)
	defer cleanup()
	repo := NewTrashRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(trashColumns).
		AddRow("rec-1", "owner@example.com", "f1", "old.tmp", "application/octet-stream", int64(1024), now, now.Add(7*24*time.Hour), "token")
	mock.ExpectQuery("SELECT id, owner_email").
		WithArgs("f1").
		WillReturnRows(rows)

	record, err := repo.FindByFileID(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", record.OwnerEmail)
	assert.Equal(t, "token", record.AccessToken)
}

func TestTrashRepositoryFindByFileIDNoRows(t *testing.T) {
	db, mock, cleanup := newTrashRepoMock(t)
	defer cleanup()
	repo := NewTrashRepository(db)

	mock.ExpectQuery("SELECT id, owner_email").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByFileID(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTrashRepositoryDeleteByFileID(t *testing.T) {
	db, mock, cleanup := newTrashRepoMock(t)
	defer cleanup()
	repo := NewTrashRepository(db)

	mock.ExpectExec("DELETE FROM trash_records").
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByFileID(context.Background(), "f1"))
}

func TestTrashRepositoryListByOwner(t *testing.T) {
	db, mock, cleanup := newTrashRepoMock(t)
	defer cleanup()
	repo := NewTrashRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(trashColumns).
		AddRow("rec-2", "owner@example.com", "f2", "newer.tmp", "text/plain", int64(10), now, now.Add(7*24*time.Hour), "token").
		AddRow("rec-1", "owner@example.com", "f1", "older.tmp", "text/plain", int64(10), now.Add(-time.Hour), now.Add(7*24*time.Hour-time.Hour), "token")
	mock.ExpectQuery("SELECT id, owner_email").
		WithArgs("owner@example.com").
		WillReturnRows(rows)

	records, err := repo.ListByOwner(context.Background(), "owner@example.com", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "f2", records[0].FileID)
}

func TestTrashRepositoryListByOwnerWithFilterDays(t *testing.T) {
	db, mock, cleanup := newTrashRepoMock(t)
	defer cleanup()
	repo := NewTrashRepository(db)

	mock.ExpectQuery("SELECT id, owner_email").
		WithArgs("owner@example.com", 7).
		WillReturnRows(sqlmock.NewRows(trashColumns))

	records, err := repo.ListByOwner(context.Background(), "owner@example.com", 7)
	require.NoError(t, err)
	assert.Empty(t, records)
}

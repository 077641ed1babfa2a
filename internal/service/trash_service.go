package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/models"
	"github.com/autocloud/autocloud-api/pkg/export"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

type trashRepository interface {
	FindByFileID(ctx context.Context, fileID string) (*models.TrashRecord, error)
	DeleteByFileID(ctx context.Context, fileID string) error
	ListByOwner(ctx context.Context, ownerEmail string, filterDays int) ([]models.TrashRecord, error)
}

type driveRestorer interface {
	FileTrashed(ctx context.Context, accessToken, fileID string) (bool, error)
	UntrashFile(ctx context.Context, accessToken, fileID string) error
}

// TrashService serves the trash ledger: history listing, restore and export.
type TrashService struct {
	repo   trashRepository
	drive  driveRestorer
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewTrashService constructs the service.
func NewTrashService(repo trashRepository, drive driveRestorer, logger *zap.Logger) *TrashService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrashService{
		repo:   repo,
		drive:  drive,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
		now:    time.Now,
	}
}

// Restore brings a trashed file back from the Drive bin. A file the remote
// store no longer knows about counts as permanently deleted; the ledger row
// is removed either way so a repeated restore never errors.
func (s *TrashService) Restore(ctx context.Context, req dto.RestoreRequest) (*dto.RestoreResponse, error) {
	if req.FileID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fileId is required")
	}
	if req.AccessToken == "" {
		// Fall back to the credential snapshotted at delete time; that is
		// what the ledger stores it for.
		record, err := s.repo.FindByFileID(ctx, req.FileID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "accessToken is required")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "trash lookup failed")
		}
		req.AccessToken = record.AccessToken
	}

	trashed, err := s.drive.FileTrashed(ctx, req.AccessToken, req.FileID)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
			if delErr := s.repo.DeleteByFileID(ctx, req.FileID); delErr != nil {
				s.logger.Warn("trash ledger cleanup failed", zap.String("file_id", req.FileID), zap.Error(delErr))
			}
			return &dto.RestoreResponse{
				Restored: false,
				Message:  "permanently deleted",
			}, nil
		}
		return nil, err
	}

	if trashed {
		if err := s.drive.UntrashFile(ctx, req.AccessToken, req.FileID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.DeleteByFileID(ctx, req.FileID); err != nil {
		s.logger.Warn("trash ledger cleanup failed", zap.String("file_id", req.FileID), zap.Error(err))
	}

	return &dto.RestoreResponse{
		Restored: true,
		Message:  "file restored",
	}, nil
}

// History lists the owner's ledger newest-first, optionally filtered to the
// most recent filterDays.
func (s *TrashService) History(ctx context.Context, req dto.HistoryRequest) (*dto.HistoryResponse, error) {
	if req.OwnerEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ownerEmail is required")
	}

	records, err := s.repo.ListByOwner(ctx, req.OwnerEmail, req.FilterDays)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "history listing failed")
	}

	items := make([]dto.HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, dto.HistoryItem{
			ID:        r.ID,
			FileID:    r.FileID,
			Name:      r.Name,
			MimeType:  r.MimeType,
			SizeBytes: r.SizeBytes,
			DeletedAt: r.DeletedAt.UTC().Format(time.RFC3339),
			ExpiryAt:  r.ExpiryAt.UTC().Format(time.RFC3339),
			Source:    "Google Drive",
		})
	}

	return &dto.HistoryResponse{History: items}, nil
}

// Export renders the owner's ledger as CSV or PDF bytes plus a content type.
func (s *TrashService) Export(ctx context.Context, ownerEmail string, filterDays int, format string) ([]byte, string, error) {
	if ownerEmail == "" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "email is required")
	}

	records, err := s.repo.ListByOwner(ctx, ownerEmail, filterDays)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "history listing failed")
	}

	dataset := export.Dataset{
		Headers: []string{"File", "Type", "Size (MB)", "Deleted At", "Expires At"},
	}
	for _, r := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"File":       r.Name,
			"Type":       r.MimeType,
			"Size (MB)":  fmt.Sprintf("%.2f", float64(r.SizeBytes)/float64(bytesPerMB)),
			"Deleted At": r.DeletedAt.UTC().Format(time.RFC3339),
			"Expires At": r.ExpiryAt.UTC().Format(time.RFC3339),
		})
	}

	switch format {
	case "csv", "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, "Cleanup History")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

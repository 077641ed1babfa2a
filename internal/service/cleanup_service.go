package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/models"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

type driveLister interface {
	ListAllFiles(ctx context.Context, accessToken string) ([]models.FileRecord, error)
	TrashFile(ctx context.Context, accessToken, fileID string) error
}

type trashLedger interface {
	Upsert(ctx context.Context, record *models.TrashRecord) error
}

// CleanupServiceConfig tunes cache freshness and ledger retention.
type CleanupServiceConfig struct {
	CacheTTL       time.Duration
	TrashRetention time.Duration
}

// CleanupService coordinates cache refresh, rule evaluation and the
// preview/delete workflow. It owns no persistent state of its own.
type CleanupService struct {
	drive     driveLister
	cache     *CacheService
	trash     trashLedger
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       CleanupServiceConfig
}

// CleanupServiceParams groups constructor dependencies.
type CleanupServiceParams struct {
	Drive     driveLister
	Cache     *CacheService
	Trash     trashLedger
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    CleanupServiceConfig
}

// NewCleanupService constructs a CleanupService with sane defaults.
func NewCleanupService(params CleanupServiceParams) *CleanupService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 3 * time.Hour
	}
	if cfg.TrashRetention <= 0 {
		cfg.TrashRetention = 7 * 24 * time.Hour
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupService{
		drive:     params.Drive,
		cache:     params.Cache,
		trash:     params.Trash,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// DriveCacheKey returns the Redis key holding an owner's listing snapshot.
func DriveCacheKey(ownerEmail string) string {
	return "drive:files:" + ownerEmail
}

// Run executes a preview or delete pass for the owner. No remote call is
// made until the request validates.
func (s *CleanupService) Run(ctx context.Context, req dto.CleanupRequest) (*dto.CleanupResult, error) {
	if req.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "accessToken is required")
	}
	if req.OwnerEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ownerEmail is required")
	}
	if req.Rules == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rules are required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cleanup payload")
	}

	now := s.now()

	files, fromCache, err := s.resolveListing(ctx, req.OwnerEmail, req.AccessToken, req.ForceRefresh, now)
	if err != nil {
		return nil, err
	}

	matched := MatchFiles(files, req.Rules, now)

	if req.PreviewOnly {
		s.recordRun(len(files), len(matched), 0)
		return &dto.CleanupResult{
			Mode:      "preview",
			FromCache: fromCache,
			Summary: dto.CleanupSummary{
				Scanned: len(files),
				Matched: len(matched),
			},
			MatchedFiles: matched,
		}, nil
	}

	deleted := make([]models.MatchedFile, 0, len(matched))
	for _, file := range matched {
		if err := s.drive.TrashFile(ctx, req.AccessToken, file.ID); err != nil {
			s.logger.Warn("trash file failed",
				zap.String("owner", req.OwnerEmail),
				zap.String("file_id", file.ID),
				zap.Error(err),
			)
			continue
		}
		deleted = append(deleted, file)

		record := &models.TrashRecord{
			ID:          uuid.NewString(),
			OwnerEmail:  req.OwnerEmail,
			FileID:      file.ID,
			Name:        file.Name,
			MimeType:    file.MimeType,
			SizeBytes:   file.SizeBytes,
			DeletedAt:   now,
			ExpiryAt:    now.Add(s.cfg.TrashRetention),
			AccessToken: req.AccessToken,
		}
		if err := s.trash.Upsert(ctx, record); err != nil {
			// The file is already in the bin; a missing ledger row only
			// degrades restore, so the batch keeps going.
			s.logger.Warn("trash ledger write failed",
				zap.String("owner", req.OwnerEmail),
				zap.String("file_id", file.ID),
				zap.Error(err),
			)
		}
	}

	s.recordRun(len(files), len(matched), len(deleted))

	message := "No files matched cleanup rules."
	if len(deleted) > 0 {
		message = fmt.Sprintf("%d file(s) moved to bin", len(deleted))
	}

	return &dto.CleanupResult{
		Mode:      "delete",
		FromCache: fromCache,
		Summary: dto.CleanupSummary{
			Scanned:    len(files),
			Matched:    len(matched),
			MovedToBin: len(deleted),
		},
		DeletedFiles: deleted,
		Message:      message,
	}, nil
}

// resolveListing returns the owner's file listing, reusing the cached
// snapshot when it is fresh and a refresh was not forced. Cache infra
// failures degrade to a refetch rather than failing the run.
func (s *CleanupService) resolveListing(ctx context.Context, ownerEmail, accessToken string, forceRefresh bool, now time.Time) ([]models.FileRecord, bool, error) {
	key := DriveCacheKey(ownerEmail)

	if !forceRefresh {
		var entry models.CacheEntry
		hit, err := s.cache.Get(ctx, key, &entry)
		if err != nil {
			s.logger.Warn("drive cache read failed", zap.String("owner", ownerEmail), zap.Error(err))
		} else if hit && entry.Fresh(now, s.cfg.CacheTTL) {
			s.logger.Debug("using cached drive listing",
				zap.String("owner", ownerEmail),
				zap.Int("files", len(entry.Files)),
			)
			return entry.Files, true, nil
		}
	}

	files, err := s.drive.ListAllFiles(ctx, accessToken)
	if err != nil {
		return nil, false, err
	}

	entry := models.CacheEntry{OwnerEmail: ownerEmail, Files: files, UpdatedAt: now}
	if err := s.cache.Set(ctx, key, entry, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("drive cache write failed", zap.String("owner", ownerEmail), zap.Error(err))
	}

	return files, false, nil
}

func (s *CleanupService) recordRun(scanned, matched, movedToBin int) {
	if s.metrics != nil {
		s.metrics.RecordCleanupRun(scanned, matched, movedToBin)
	}
}

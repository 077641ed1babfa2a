package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/models"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

// SuggestionServiceConfig sets the heuristics' thresholds.
type SuggestionServiceConfig struct {
	LargeFileMinBytes int64
	StaleAfterDays    int
	MaxPerCategory    int
}

// SuggestionService scans a listing for duplicate candidates, oversized
// files and stale files, and proposes ready-made cleanup rules.
type SuggestionService struct {
	drive  driveLister
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
	cfg    SuggestionServiceConfig
}

// NewSuggestionService constructs the service.
func NewSuggestionService(drive driveLister, cache *CacheService, logger *zap.Logger, cfg SuggestionServiceConfig) *SuggestionService {
	if cfg.LargeFileMinBytes <= 0 {
		cfg.LargeFileMinBytes = 100 * (int64(1) << 20)
	}
	if cfg.StaleAfterDays <= 0 {
		cfg.StaleAfterDays = 365
	}
	if cfg.MaxPerCategory <= 0 {
		cfg.MaxPerCategory = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionService{
		drive:  drive,
		cache:  cache,
		logger: logger,
		now:    time.Now,
		cfg:    cfg,
	}
}

// Analyze builds recommendations from the owner's listing, reusing the
// cleanup cache when it is fresh.
func (s *SuggestionService) Analyze(ctx context.Context, req dto.SuggestionsRequest) (*dto.SuggestionsResponse, error) {
	if req.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "accessToken is required")
	}
	if req.OwnerEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ownerEmail is required")
	}

	now := s.now()
	files, fromCache, err := s.resolveListing(ctx, req, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.SuggestionsResponse{
		FromCache:   fromCache,
		Scanned:     len(files),
		Suggestions: []dto.Suggestion{},
	}

	if sug := s.duplicates(files); sug != nil {
		resp.Suggestions = append(resp.Suggestions, *sug)
	}
	if sug := s.largeFiles(files); sug != nil {
		resp.Suggestions = append(resp.Suggestions, *sug)
	}
	if sug := s.staleFiles(files, now); sug != nil {
		resp.Suggestions = append(resp.Suggestions, *sug)
	}

	return resp, nil
}

func (s *SuggestionService) resolveListing(ctx context.Context, req dto.SuggestionsRequest, now time.Time) ([]models.FileRecord, bool, error) {
	key := DriveCacheKey(req.OwnerEmail)

	if !req.ForceRefresh {
		var entry models.CacheEntry
		hit, err := s.cache.Get(ctx, key, &entry)
		if err != nil {
			s.logger.Warn("drive cache read failed", zap.String("owner", req.OwnerEmail), zap.Error(err))
		} else if hit && len(entry.Files) > 0 {
			return entry.Files, true, nil
		}
	}

	files, err := s.drive.ListAllFiles(ctx, req.AccessToken)
	if err != nil {
		return nil, false, err
	}
	entry := models.CacheEntry{OwnerEmail: req.OwnerEmail, Files: files, UpdatedAt: now}
	if err := s.cache.Set(ctx, key, entry, 0); err != nil {
		s.logger.Warn("drive cache write failed", zap.String("owner", req.OwnerEmail), zap.Error(err))
	}
	return files, false, nil
}

// duplicates groups files by (name, size); every file beyond the first in a
// group is a candidate.
func (s *SuggestionService) duplicates(files []models.FileRecord) *dto.Suggestion {
	type groupKey struct {
		name string
		size int64
	}
	seen := make(map[groupKey]bool)
	var candidates []models.MatchedFile
	var reclaimable int64

	for _, f := range files {
		if f.MimeType == models.FolderMimeType || f.SizeBytes == 0 {
			continue
		}
		key := groupKey{name: f.Name, size: f.SizeBytes}
		if seen[key] {
			candidates = append(candidates, projection(f, "duplicate"))
			reclaimable += f.SizeBytes
			continue
		}
		seen[key] = true
	}

	if len(candidates) == 0 {
		return nil
	}
	total := len(candidates)
	if total > s.cfg.MaxPerCategory {
		candidates = candidates[:s.cfg.MaxPerCategory]
	}
	return &dto.Suggestion{
		Title:            "Duplicate files detected",
		Description:      fmt.Sprintf("Found %d file(s) sharing a name and size with another file", total),
		Priority:         "high",
		ReclaimableBytes: reclaimable,
		Files:            candidates,
	}
}

func (s *SuggestionService) largeFiles(files []models.FileRecord) *dto.Suggestion {
	var candidates []models.MatchedFile
	var reclaimable int64
	for _, f := range files {
		if f.MimeType == models.FolderMimeType || f.SizeBytes < s.cfg.LargeFileMinBytes {
			continue
		}
		candidates = append(candidates, projection(f, "large file"))
		reclaimable += f.SizeBytes
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SizeBytes > candidates[j].SizeBytes
	})
	total := len(candidates)
	if total > s.cfg.MaxPerCategory {
		candidates = candidates[:s.cfg.MaxPerCategory]
	}

	thresholdMB := s.cfg.LargeFileMinBytes / (int64(1) << 20)
	return &dto.Suggestion{
		Title:            "Large files",
		Description:      fmt.Sprintf("%d file(s) above %d MB", total, thresholdMB),
		Priority:         "medium",
		ReclaimableBytes: reclaimable,
		Files:            candidates,
		// Pattern intentionally left for the user to fill in; the engine
		// skips rules with an empty pattern.
		SuggestedRule: &models.Rule{
			Condition: models.ConditionLargerThan,
			Value:     strconv.FormatInt(thresholdMB, 10),
			Enabled:   false,
		},
	}
}

func (s *SuggestionService) staleFiles(files []models.FileRecord, now time.Time) *dto.Suggestion {
	cutoff := now.AddDate(0, 0, -s.cfg.StaleAfterDays)
	var candidates []models.MatchedFile
	var reclaimable int64
	for _, f := range files {
		if f.MimeType == models.FolderMimeType || f.ModifiedTime == nil {
			continue
		}
		if f.ModifiedTime.Before(cutoff) {
			candidates = append(candidates, projection(f, "not modified recently"))
			reclaimable += f.SizeBytes
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	total := len(candidates)
	if total > s.cfg.MaxPerCategory {
		candidates = candidates[:s.cfg.MaxPerCategory]
	}
	return &dto.Suggestion{
		Title:            "Stale files",
		Description:      fmt.Sprintf("%d file(s) untouched for over %d days", total, s.cfg.StaleAfterDays),
		Priority:         "medium",
		ReclaimableBytes: reclaimable,
		Files:            candidates,
	}
}

func projection(f models.FileRecord, reason string) models.MatchedFile {
	return models.MatchedFile{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		ModifiedTime: f.ModifiedTime,
		Reason:       reason,
	}
}

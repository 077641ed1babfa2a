package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/google"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

type driveOverview interface {
	About(ctx context.Context, accessToken string) (*google.StorageQuota, error)
	ListMedia(ctx context.Context, accessToken string, pageSize int) ([]google.MediaItem, error)
}

// DashboardServiceConfig tunes the dashboard payload.
type DashboardServiceConfig struct {
	MediaPageSize int
}

// DashboardService reshapes live quota numbers and a media preview for the
// overview screen. It holds no state; every call hits the upstream provider.
type DashboardService struct {
	drive  driveOverview
	logger *zap.Logger
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs the service.
func NewDashboardService(drive driveOverview, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.MediaPageSize <= 0 {
		cfg.MediaPageSize = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{drive: drive, logger: logger, cfg: cfg}
}

// Overview returns the quota breakdown and media previews.
func (s *DashboardService) Overview(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardResponse, error) {
	if req.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "accessToken is required")
	}

	quota, err := s.drive.About(ctx, req.AccessToken)
	if err != nil {
		return nil, err
	}

	media, err := s.drive.ListMedia(ctx, req.AccessToken, s.cfg.MediaPageSize)
	if err != nil {
		// Quota numbers are still useful without previews.
		s.logger.Warn("media listing failed", zap.Error(err))
		media = nil
	}

	resp := &dto.DashboardResponse{
		Quota: dto.QuotaBreakdown{
			TotalUsageGB:  toGB(quota.Usage),
			TotalLimitGB:  toGB(quota.Limit),
			DriveUsageGB:  toGB(quota.UsageInDrive),
			GmailUsageGB:  toGB(quota.UsageInGmail),
			PhotosUsageGB: toGB(quota.UsageInPhotos),
		},
		Media: make([]dto.MediaFile, 0, len(media)),
	}
	for _, m := range media {
		resp.Media = append(resp.Media, dto.MediaFile{
			ID:          m.ID,
			Name:        m.Name,
			MimeType:    m.MimeType,
			SizeMB:      float64(m.SizeBytes) / float64(bytesPerMB),
			PreviewLink: m.WebViewLink,
		})
	}

	return resp, nil
}

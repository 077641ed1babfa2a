package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/google"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

type overviewStub struct {
	quota        *google.StorageQuota
	quotaErr     error
	media        []google.MediaItem
	mediaErr     error
	lastPageSize int
}

func (s *overviewStub) About(ctx context.Context, accessToken string) (*google.StorageQuota, error) {
	return s.quota, s.quotaErr
}

func (s *overviewStub) ListMedia(ctx context.Context, accessToken string, pageSize int) ([]google.MediaItem, error) {
	s.lastPageSize = pageSize
	return s.media, s.mediaErr
}

func TestOverviewRequiresToken(t *testing.T) {
	svc := NewDashboardService(&overviewStub{}, nil, DashboardServiceConfig{})

	_, err := svc.Overview(context.Background(), dto.DashboardRequest{})
	require.Error(t, err)
}

func TestOverviewShapesQuotaAndMedia(t *testing.T) {
	drive := &overviewStub{
		quota: &google.StorageQuota{
			Limit:         15 << 30,
			Usage:         6 << 30,
			UsageInDrive:  4 << 30,
			UsageInGmail:  1 << 30,
			UsageInPhotos: 1 << 30,
		},
		media: []google.MediaItem{
			{ID: "m1", Name: "beach.jpg", MimeType: "image/jpeg", SizeBytes: 4 << 20, WebViewLink: "https://drive.example/m1"},
		},
	}
	svc := NewDashboardService(drive, nil, DashboardServiceConfig{MediaPageSize: 5})

	resp, err := svc.Overview(context.Background(), dto.DashboardRequest{AccessToken: "t"})
	require.NoError(t, err)

	assert.InDelta(t, 6.0, resp.Quota.TotalUsageGB, 0.001)
	assert.InDelta(t, 4.0, resp.Quota.DriveUsageGB, 0.001)
	assert.Equal(t, 5, drive.lastPageSize)

	require.Len(t, resp.Media, 1)
	assert.Equal(t, "beach.jpg", resp.Media[0].Name)
	assert.InDelta(t, 4.0, resp.Media[0].SizeMB, 0.001)
	assert.Equal(t, "https://drive.example/m1", resp.Media[0].PreviewLink)
}

func TestOverviewToleratesMediaFailure(t *testing.T) {
	drive := &overviewStub{
		quota:    &google.StorageQuota{Usage: 1 << 30, Limit: 15 << 30},
		mediaErr: appErrors.ErrPermissionDenied,
	}
	svc := NewDashboardService(drive, nil, DashboardServiceConfig{})

	resp, err := svc.Overview(context.Background(), dto.DashboardRequest{AccessToken: "t"})
	require.NoError(t, err)
	assert.Empty(t, resp.Media)
	assert.InDelta(t, 1.0, resp.Quota.TotalUsageGB, 0.001)
}

func TestOverviewQuotaFailurePropagates(t *testing.T) {
	drive := &overviewStub{quotaErr: appErrors.ErrTokenExpired}
	svc := NewDashboardService(drive, nil, DashboardServiceConfig{})

	_, err := svc.Overview(context.Background(), dto.DashboardRequest{AccessToken: "t"})
	assert.ErrorIs(t, err, appErrors.ErrTokenExpired)
}

package google

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/autocloud/autocloud-api/internal/models"
	"github.com/autocloud/autocloud-api/pkg/config"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

// Client talks to the Google Drive, OAuth userinfo and Gmail APIs on behalf
// of a caller-supplied access token. It owns no credentials itself.
type Client struct {
	drive    *resty.Client
	oauth    *resty.Client
	gmail    *resty.Client
	pageSize int
	logger   *zap.Logger
	observe  func(endpoint string, err error, duration time.Duration)
}

// SetObserver registers a callback that receives one sample per outbound
// call. Used to feed the Prometheus upstream-latency histogram.
func (c *Client) SetObserver(fn func(endpoint string, err error, duration time.Duration)) {
	c.observe = fn
}

func (c *Client) record(endpoint string, start time.Time, err error) {
	if c.observe != nil {
		c.observe(endpoint, err, time.Since(start))
	}
}

// NewClient constructs a Client from configuration.
func NewClient(cfg config.GoogleConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := cfg.ListPageSize
	if pageSize <= 0 {
		pageSize = 200
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	newREST := func(base string) *resty.Client {
		return resty.New().
			SetBaseURL(base).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout)
	}
	return &Client{
		drive:    newREST(cfg.DriveBaseURL),
		oauth:    newREST(cfg.OAuthBaseURL),
		gmail:    newREST(cfg.GmailBaseURL),
		pageSize: pageSize,
		logger:   logger,
	}
}

type driveFile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	Size           string `json:"size"`
	QuotaBytesUsed string `json:"quotaBytesUsed"`
	ModifiedTime   string `json:"modifiedTime"`
	CreatedTime    string `json:"createdTime"`
	Trashed        bool   `json:"trashed"`
	WebViewLink    string `json:"webViewLink"`
}

type fileListResponse struct {
	NextPageToken string      `json:"nextPageToken"`
	Files         []driveFile `json:"files"`
}

// StorageQuota mirrors the Drive about().storageQuota payload. Values arrive
// as decimal strings.
type StorageQuota struct {
	Limit         int64
	Usage         int64
	UsageInDrive  int64
	UsageInGmail  int64
	UsageInPhotos int64
}

type aboutResponse struct {
	StorageQuota struct {
		Limit         string `json:"limit"`
		Usage         string `json:"usage"`
		UsageInDrive  string `json:"usageInDrive"`
		UsageInGmail  string `json:"usageInGmail"`
		UsageInPhotos string `json:"usageInPhotos"`
	} `json:"storageQuota"`
}

// UserInfo is the OAuth userinfo projection.
type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GmailProfile is the Gmail profile projection used for enrichment.
type GmailProfile struct {
	EmailAddress  string `json:"emailAddress"`
	MessagesTotal int64  `json:"messagesTotal"`
	ThreadsTotal  int64  `json:"threadsTotal"`
}

// MediaItem previews an image or video file.
type MediaItem struct {
	ID          string
	Name        string
	MimeType    string
	SizeBytes   int64
	WebViewLink string
}

// ListAllFiles enumerates the owner's non-trashed files, one page at a time,
// until no continuation token is returned.
func (c *Client) ListAllFiles(ctx context.Context, accessToken string) (records []models.FileRecord, err error) {
	start := time.Now()
	defer func() { c.record("files.list", start, err) }()

	const fields = "nextPageToken, files(id,name,size,mimeType,createdTime,modifiedTime,quotaBytesUsed,trashed)"

	pageToken := ""
	for {
		req := c.drive.R().
			SetContext(ctx).
			SetAuthToken(accessToken).
			SetQueryParam("fields", fields).
			SetQueryParam("pageSize", strconv.Itoa(c.pageSize)).
			SetQueryParam("q", "trashed = false")
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}

		var page fileListResponse
		resp, err := req.SetResult(&page).Get("/files")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "drive listing failed")
		}
		if resp.IsError() {
			return nil, c.statusError(resp, "drive listing failed")
		}

		for _, f := range page.Files {
			records = append(records, normalizeFile(f))
		}

		if page.NextPageToken == "" {
			return records, nil
		}
		pageToken = page.NextPageToken
	}
}

// ListMedia returns a single page of image/video previews for the dashboard.
func (c *Client) ListMedia(ctx context.Context, accessToken string, pageSize int) (items []MediaItem, err error) {
	start := time.Now()
	defer func() { c.record("files.media", start, err) }()

	if pageSize <= 0 {
		pageSize = 10
	}
	var page fileListResponse
	resp, err := c.drive.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("q", "mimeType contains 'image/' or mimeType contains 'video/'").
		SetQueryParam("fields", "files(id,name,mimeType,size,webViewLink)").
		SetQueryParam("pageSize", strconv.Itoa(pageSize)).
		SetResult(&page).
		Get("/files")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "drive media listing failed")
	}
	if resp.IsError() {
		return nil, c.statusError(resp, "drive media listing failed")
	}

	items = make([]MediaItem, 0, len(page.Files))
	for _, f := range page.Files {
		items = append(items, MediaItem{
			ID:          f.ID,
			Name:        f.Name,
			MimeType:    f.MimeType,
			SizeBytes:   parseInt64(f.Size),
			WebViewLink: f.WebViewLink,
		})
	}
	return items, nil
}

// TrashFile moves the file to the Drive bin.
func (c *Client) TrashFile(ctx context.Context, accessToken, fileID string) error {
	return c.setTrashed(ctx, accessToken, fileID, true)
}

// UntrashFile brings the file back from the Drive bin.
func (c *Client) UntrashFile(ctx context.Context, accessToken, fileID string) error {
	return c.setTrashed(ctx, accessToken, fileID, false)
}

func (c *Client) setTrashed(ctx context.Context, accessToken, fileID string, trashed bool) (err error) {
	start := time.Now()
	defer func() { c.record("files.update", start, err) }()

	resp, err := c.drive.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(map[string]bool{"trashed": trashed}).
		Patch("/files/" + fileID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "drive trash update failed")
	}
	if resp.IsError() {
		return c.statusError(resp, "drive trash update failed")
	}
	return nil
}

// FileTrashed reports whether the file currently sits in the Drive bin.
// A NotFound error means the file has been purged for good.
func (c *Client) FileTrashed(ctx context.Context, accessToken, fileID string) (trashed bool, err error) {
	start := time.Now()
	defer func() { c.record("files.get", start, err) }()

	var file driveFile
	resp, err := c.drive.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("fields", "id,trashed").
		SetResult(&file).
		Get("/files/" + fileID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "drive file lookup failed")
	}
	if resp.IsError() {
		return false, c.statusError(resp, "drive file lookup failed")
	}
	return file.Trashed, nil
}

// About fetches the owner's storage quota.
func (c *Client) About(ctx context.Context, accessToken string) (quota *StorageQuota, err error) {
	start := time.Now()
	defer func() { c.record("about.get", start, err) }()

	var about aboutResponse
	resp, err := c.drive.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("fields", "storageQuota").
		SetResult(&about).
		Get("/about")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "drive quota lookup failed")
	}
	if resp.IsError() {
		return nil, c.statusError(resp, "drive quota lookup failed")
	}
	return &StorageQuota{
		Limit:         parseInt64(about.StorageQuota.Limit),
		Usage:         parseInt64(about.StorageQuota.Usage),
		UsageInDrive:  parseInt64(about.StorageQuota.UsageInDrive),
		UsageInGmail:  parseInt64(about.StorageQuota.UsageInGmail),
		UsageInPhotos: parseInt64(about.StorageQuota.UsageInPhotos),
	}, nil
}

// GetUserInfo resolves the token owner's profile.
func (c *Client) GetUserInfo(ctx context.Context, accessToken string) (user *UserInfo, err error) {
	start := time.Now()
	defer func() { c.record("userinfo.get", start, err) }()

	var info UserInfo
	resp, err := c.oauth.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&info).
		Get("/userinfo")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "userinfo lookup failed")
	}
	if resp.IsError() {
		return nil, c.statusError(resp, "userinfo lookup failed")
	}
	return &info, nil
}

// GetGmailProfile fetches the Gmail profile. Callers treat failures as
// non-fatal enrichment misses.
func (c *Client) GetGmailProfile(ctx context.Context, accessToken string) (gmail *GmailProfile, err error) {
	start := time.Now()
	defer func() { c.record("gmail.profile", start, err) }()

	var profile GmailProfile
	resp, err := c.gmail.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&profile).
		Get("/users/me/profile")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "gmail profile lookup failed")
	}
	if resp.IsError() {
		return nil, c.statusError(resp, "gmail profile lookup failed")
	}
	return &profile, nil
}

func (c *Client) statusError(resp *resty.Response, message string) error {
	detail := fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return appErrors.Wrap(detail, appErrors.ErrTokenExpired.Code, appErrors.ErrTokenExpired.Status, appErrors.ErrTokenExpired.Message)
	case http.StatusForbidden:
		return appErrors.Wrap(detail, appErrors.ErrPermissionDenied.Code, appErrors.ErrPermissionDenied.Status, appErrors.ErrPermissionDenied.Message)
	case http.StatusNotFound:
		return appErrors.Wrap(detail, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, appErrors.ErrNotFound.Message)
	default:
		return appErrors.Wrap(detail, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, message)
	}
}

func normalizeFile(f driveFile) models.FileRecord {
	size := parseInt64(f.Size)
	if size == 0 {
		size = parseInt64(f.QuotaBytesUsed)
	}
	record := models.FileRecord{
		ID:        f.ID,
		Name:      f.Name,
		MimeType:  f.MimeType,
		SizeBytes: size,
		Trashed:   f.Trashed,
	}
	if record.MimeType == "" {
		record.MimeType = "unknown"
	}
	if ts := parseTime(f.ModifiedTime); ts != nil {
		record.ModifiedTime = ts
	}
	if ts := parseTime(f.CreatedTime); ts != nil {
		record.CreatedTime = ts
	}
	return record
}

func parseInt64(raw string) int64 {
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &ts
}

package dto

// DashboardRequest fetches a live quota and media snapshot.
type DashboardRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// QuotaBreakdown is the storage quota shaped for charts, in gigabytes.
type QuotaBreakdown struct {
	TotalUsageGB  float64 `json:"totalUsageGB"`
	TotalLimitGB  float64 `json:"totalLimitGB"`
	DriveUsageGB  float64 `json:"driveUsageGB"`
	GmailUsageGB  float64 `json:"gmailUsageGB"`
	PhotosUsageGB float64 `json:"photosUsageGB"`
}

// MediaFile previews one image or video from Drive.
type MediaFile struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MimeType    string  `json:"mimeType"`
	SizeMB      float64 `json:"sizeMB"`
	PreviewLink string  `json:"previewLink,omitempty"`
}

// DashboardResponse aggregates quota and media previews.
type DashboardResponse struct {
	Quota QuotaBreakdown `json:"quota"`
	Media []MediaFile    `json:"media"`
}

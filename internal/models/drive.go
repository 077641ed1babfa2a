package models

import "time"

// FolderMimeType is the Drive MIME type for folders. Folders are never
// cleanup targets.
const FolderMimeType = "application/vnd.google-apps.folder"

// FileRecord is a normalized snapshot of a remote Drive file. Records are
// owned by the listing cache and replaced wholesale on refresh.
type FileRecord struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	MimeType     string     `json:"mimeType"`
	SizeBytes    int64      `json:"sizeBytes"`
	ModifiedTime *time.Time `json:"modifiedTime,omitempty"`
	CreatedTime  *time.Time `json:"createdTime,omitempty"`
	Trashed      bool       `json:"trashed"`
}

// CacheEntry holds one owner's cached Drive listing.
type CacheEntry struct {
	OwnerEmail string       `json:"ownerEmail"`
	Files      []FileRecord `json:"files"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Fresh reports whether the entry may be reused instead of refetching.
// Empty listings never count as fresh so a failed or vacuous fetch is retried.
func (e *CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	if e == nil || len(e.Files) == 0 {
		return false
	}
	return now.Sub(e.UpdatedAt) < ttl
}

// MatchedFile is the projection of a FileRecord produced by a cleanup run.
type MatchedFile struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	MimeType     string     `json:"mimeType"`
	SizeBytes    int64      `json:"sizeBytes"`
	ModifiedTime *time.Time `json:"modifiedTime,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}

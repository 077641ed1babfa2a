package models

import "time"

// TrashRecord is the persisted ledger entry for a file moved to the Drive
// bin by a cleanup run. The access token snapshot lets a later restore act on
// the same account. Expiry is advisory; no purge job removes expired rows.
type TrashRecord struct {
	ID          string    `db:"id" json:"id"`
	OwnerEmail  string    `db:"owner_email" json:"ownerEmail"`
	FileID      string    `db:"file_id" json:"fileId"`
	Name        string    `db:"name" json:"name"`
	MimeType    string    `db:"mime_type" json:"mimeType"`
	SizeBytes   int64     `db:"size_bytes" json:"sizeBytes"`
	DeletedAt   time.Time `db:"deleted_at" json:"deletedAt"`
	ExpiryAt    time.Time `db:"expiry_at" json:"expiryAt"`
	AccessToken string    `db:"access_token" json:"-"`
}

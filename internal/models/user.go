package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is an authenticated account with its last known quota snapshot.
// PasswordHash is set only for accounts that registered a local password.
type User struct {
	ID           string  `db:"id" json:"id"`
	GoogleID     string  `db:"google_id" json:"googleId"`
	Email        string  `db:"email" json:"email"`
	Name         string  `db:"name" json:"name"`
	Picture      string  `db:"picture" json:"picture,omitempty"`
	PasswordHash *string `db:"password_hash" json:"-"`

	DriveUsageBytes        int64 `db:"drive_usage_bytes" json:"driveUsageBytes"`
	DriveLimitBytes        int64 `db:"drive_limit_bytes" json:"driveLimitBytes"`
	GmailUsageBytes        int64 `db:"gmail_usage_bytes" json:"gmailUsageBytes"`
	GmailLimitBytes        int64 `db:"gmail_limit_bytes" json:"gmailLimitBytes"`
	PhotosUsageBytes       int64 `db:"photos_usage_bytes" json:"photosUsageBytes"`
	PhotosLimitBytes       int64 `db:"photos_limit_bytes" json:"photosLimitBytes"`
	MobileBackupUsageBytes int64 `db:"mobile_backup_usage_bytes" json:"mobileBackupUsageBytes"`
	MobileBackupLimitBytes int64 `db:"mobile_backup_limit_bytes" json:"mobileBackupLimitBytes"`
	TotalUsageBytes        int64 `db:"total_usage_bytes" json:"totalUsageBytes"`
	TotalLimitBytes        int64 `db:"total_limit_bytes" json:"totalLimitBytes"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// JWTClaims carries the session identity for locally issued tokens.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

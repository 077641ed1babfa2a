package dto

import (
	"github.com/autocloud/autocloud-api/internal/models"
)

// CleanupRequest drives a preview or delete run over one owner's Drive.
type CleanupRequest struct {
	AccessToken  string        `json:"accessToken" binding:"required" validate:"required"`
	OwnerEmail   string        `json:"ownerEmail" binding:"required,email" validate:"required,email"`
	Rules        []models.Rule `json:"rules" binding:"required" validate:"required"`
	PreviewOnly  bool          `json:"previewOnly"`
	ForceRefresh bool          `json:"forceRefresh"`
}

// CleanupSummary reports the scale of a cleanup run.
type CleanupSummary struct {
	Scanned    int `json:"scanned"`
	Matched    int `json:"matched"`
	MovedToBin int `json:"movedToBin,omitempty"`
}

// CleanupResult is the preview or delete outcome.
type CleanupResult struct {
	Mode         string               `json:"mode"`
	FromCache    bool                 `json:"fromCache"`
	Summary      CleanupSummary       `json:"summary"`
	MatchedFiles []models.MatchedFile `json:"matchedFiles,omitempty"`
	DeletedFiles []models.MatchedFile `json:"deletedFiles,omitempty"`
	Message      string               `json:"message,omitempty"`
}

// HistoryRequest lists an owner's trash ledger, optionally limited to the
// most recent FilterDays.
type HistoryRequest struct {
	OwnerEmail string `json:"ownerEmail" binding:"required,email"`
	FilterDays int    `json:"filterDays"`
}

// HistoryItem is one ledger row shaped for the UI.
type HistoryItem struct {
	ID        string `json:"id"`
	FileID    string `json:"fileId"`
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	DeletedAt string `json:"deletedAt"`
	ExpiryAt  string `json:"expiryAt"`
	Source    string `json:"source"`
}

// HistoryResponse wraps the ledger listing.
type HistoryResponse struct {
	History []HistoryItem `json:"history"`
}

// RestoreRequest asks for one trashed file to be brought back. When the
// access token is omitted the credential snapshotted in the ledger is used.
type RestoreRequest struct {
	FileID      string `json:"fileId" binding:"required"`
	AccessToken string `json:"accessToken"`
}

// RestoreResponse reports the restore outcome.
type RestoreResponse struct {
	Restored bool   `json:"restored"`
	Message  string `json:"message"`
}

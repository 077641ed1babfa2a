package dto

import "github.com/autocloud/autocloud-api/internal/models"

// SuggestionsRequest scans an owner's Drive listing for cleanup candidates.
type SuggestionsRequest struct {
	AccessToken  string `json:"accessToken" binding:"required"`
	OwnerEmail   string `json:"ownerEmail" binding:"required,email"`
	ForceRefresh bool   `json:"forceRefresh"`
}

// Suggestion is one heuristic recommendation with an optional ready-made rule.
type Suggestion struct {
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Priority         string               `json:"priority"`
	ReclaimableBytes int64                `json:"reclaimableBytes"`
	Files            []models.MatchedFile `json:"files,omitempty"`
	SuggestedRule    *models.Rule         `json:"suggestedRule,omitempty"`
}

// SuggestionsResponse wraps the recommendation list.
type SuggestionsResponse struct {
	FromCache   bool         `json:"fromCache"`
	Scanned     int          `json:"scanned"`
	Suggestions []Suggestion `json:"suggestions"`
}

package dto

// GoogleAuthRequest carries the upstream access token obtained by the client.
type GoogleAuthRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// StorageBucket is a usage/limit pair converted to gigabytes for display.
type StorageBucket struct {
	UsageGB float64 `json:"usageGB"`
	LimitGB float64 `json:"limitGB"`
}

// AuthResponse returns the upserted user and aggregated usage numbers.
type AuthResponse struct {
	User         UserProfile   `json:"user"`
	Drive        StorageBucket `json:"drive"`
	Gmail        StorageBucket `json:"gmail"`
	Photos       StorageBucket `json:"photos"`
	MobileBackup StorageBucket `json:"mobileBackup"`
	TotalUsageGB float64       `json:"totalUsageGB"`
	TotalLimitGB float64       `json:"totalLimitGB"`
}

// UserProfile is the public projection of a user.
type UserProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// LoginRequest holds local credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int64       `json:"expiresIn"`
	User        UserProfile `json:"user"`
}

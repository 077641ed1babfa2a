package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/google"
	"github.com/autocloud/autocloud-api/internal/models"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

const (
	bytesPerGB = int64(1) << 30

	defaultBucketLimitBytes = 15 * (int64(1) << 30)
	defaultMobileLimitBytes = 10 * (int64(1) << 30)
)

type userStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

type googleIdentity interface {
	GetUserInfo(ctx context.Context, accessToken string) (*google.UserInfo, error)
	About(ctx context.Context, accessToken string) (*google.StorageQuota, error)
	GetGmailProfile(ctx context.Context, accessToken string) (*google.GmailProfile, error)
}

// AuthServiceConfig carries token issuance settings.
type AuthServiceConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
}

// AuthService signs users in against the upstream provider, maintains the
// persisted quota snapshot, and issues local session tokens for password
// accounts.
type AuthService struct {
	users     userStore
	google    googleIdentity
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       AuthServiceConfig
}

// NewAuthService constructs the service.
func NewAuthService(users userStore, googleClient googleIdentity, validate *validator.Validate, logger *zap.Logger, cfg AuthServiceConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JWTExpiration <= 0 {
		cfg.JWTExpiration = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		google:    googleClient,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// GoogleSignIn resolves the token owner's profile and storage quota, upserts
// the account, and returns the aggregated usage numbers. Gmail enrichment is
// best-effort; failures fall back to defaults and are only logged.
func (s *AuthService) GoogleSignIn(ctx context.Context, req dto.GoogleAuthRequest) (*dto.AuthResponse, error) {
	if req.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "accessToken is required")
	}

	info, err := s.google.GetUserInfo(ctx, req.AccessToken)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "userinfo response missing email")
	}

	quota, err := s.google.About(ctx, req.AccessToken)
	if err != nil {
		return nil, err
	}

	if _, gmailErr := s.google.GetGmailProfile(ctx, req.AccessToken); gmailErr != nil {
		s.logger.Info("gmail profile enrichment skipped", zap.String("email", info.Email), zap.Error(gmailErr))
	}

	now := s.now()
	user := &models.User{
		ID:        uuid.NewString(),
		GoogleID:  info.ID,
		Email:     info.Email,
		Name:      info.Name,
		Picture:   info.Picture,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, findErr := s.users.FindByEmail(ctx, info.Email); findErr == nil {
		user.ID = existing.ID
		user.PasswordHash = existing.PasswordHash
		user.CreatedAt = existing.CreatedAt
	} else if !errors.Is(findErr, sql.ErrNoRows) {
		return nil, appErrors.Wrap(findErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "user lookup failed")
	}

	applyQuota(user, quota)

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "user upsert failed")
	}

	return buildAuthResponse(user), nil
}

// Login authenticates a local password account and issues a session token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "user lookup failed")
	}
	if user.PasswordHash == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "account has no local password; sign in with Google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		User:        profileOf(user),
	}, nil
}

// GetUser returns the persisted user/quota snapshot.
func (s *AuthService) GetUser(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "user lookup failed")
	}
	return user, nil
}

// Usage returns the persisted usage snapshot converted for display.
func (s *AuthService) Usage(ctx context.Context, email string) (*dto.AuthResponse, error) {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return buildAuthResponse(user), nil
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issueToken(user *models.User) (string, int64, error) {
	now := s.now()
	expiry := now.Add(s.cfg.JWTExpiration)
	claims := &models.JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "token signing failed")
	}
	return signed, int64(s.cfg.JWTExpiration.Seconds()), nil
}

// applyQuota maps the upstream quota onto the user snapshot. Buckets the
// provider does not report fall back to the plan defaults.
func applyQuota(user *models.User, quota *google.StorageQuota) {
	user.DriveUsageBytes = quota.UsageInDrive
	user.DriveLimitBytes = quota.Limit
	if user.DriveLimitBytes == 0 {
		user.DriveLimitBytes = defaultBucketLimitBytes
	}

	user.GmailUsageBytes = quota.UsageInGmail
	user.GmailLimitBytes = defaultBucketLimitBytes
	user.PhotosUsageBytes = quota.UsageInPhotos
	user.PhotosLimitBytes = defaultBucketLimitBytes
	user.MobileBackupLimitBytes = defaultMobileLimitBytes

	user.TotalUsageBytes = quota.Usage
	user.TotalLimitBytes = quota.Limit
	if user.TotalLimitBytes == 0 {
		user.TotalLimitBytes = defaultBucketLimitBytes
	}
}

func buildAuthResponse(user *models.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		User:         profileOf(user),
		Drive:        bucketGB(user.DriveUsageBytes, user.DriveLimitBytes),
		Gmail:        bucketGB(user.GmailUsageBytes, user.GmailLimitBytes),
		Photos:       bucketGB(user.PhotosUsageBytes, user.PhotosLimitBytes),
		MobileBackup: bucketGB(user.MobileBackupUsageBytes, user.MobileBackupLimitBytes),
		TotalUsageGB: toGB(user.TotalUsageBytes),
		TotalLimitGB: toGB(user.TotalLimitBytes),
	}
}

func profileOf(user *models.User) dto.UserProfile {
	return dto.UserProfile{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	}
}

func bucketGB(usage, limit int64) dto.StorageBucket {
	return dto.StorageBucket{UsageGB: toGB(usage), LimitGB: toGB(limit)}
}

// toGB converts at the presentation boundary only; everything internal stays
// in bytes.
func toGB(bytes int64) float64 {
	return float64(bytes) / float64(bytesPerGB)
}

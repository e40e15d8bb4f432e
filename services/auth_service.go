package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"agency-site-server/config"
	"agency-site-server/logger"
	"agency-site-server/models"
	"agency-site-server/repository"
	"agency-site-server/types"
	"agency-site-server/utils"
)

// MinPasswordLength applies to admin passwords
const MinPasswordLength = 8

// Session is a signed-in admin: a short-lived access token plus the
// persisted refresh token that renews it
type Session struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	User         *models.User `json:"user"`
}

// ClientMeta identifies where a sign-in came from
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// AuthService signs admins in and out and resolves sessions
type AuthService struct {
	users      repository.UserRepository
	tokens     repository.RefreshTokenRepository
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		secret:     cfg.Secret,
		accessTTL:  time.Duration(cfg.ExpiryHours) * time.Hour,
		refreshTTL: time.Duration(cfg.RefreshExpiryHours) * time.Hour,
		now:        time.Now,
	}
}

// AccessTTL is the lifetime of an access token
func (s *AuthService) AccessTTL() time.Duration { return s.accessTTL }

// SignIn checks credentials and opens a session
func (s *AuthService) SignIn(ctx context.Context, email, password string, meta ClientMeta) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn().Str("email", email).Msg("Admin login failed: unknown e-mail")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn().Str("user_id", user.ID).Msg("Admin login failed: wrong password")
		return nil, ErrInvalidCredentials
	}
	if !user.CanManageContent() {
		logger.Warn().Str("user_id", user.ID).Msg("Admin login refused: account inactive")
		return nil, ErrAccountDisabled
	}

	refresh, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	err = s.tokens.Create(ctx, &models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.refreshTTL),
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record last login")
	}

	logger.Info().Str("user_id", user.ID).Msg("Admin logged in")
	return s.session(user, refresh)
}

// Refresh mints a new access token; the refresh token stays the same
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, ErrInvalidSession
	}

	rt, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if !rt.IsValid(s.now()) {
		return nil, ErrInvalidSession
	}

	user, err := s.activeUser(ctx, rt.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Touch(ctx, rt); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to touch refresh token")
	}

	return s.session(user, refreshToken)
}

// SignOut revokes the refresh token. Unknown tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.tokens.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// Authenticate verifies an access token and returns its claims and user
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*types.Claims, *models.User, error) {
	if accessToken == "" {
		return nil, nil, ErrInvalidSession
	}
	claims, err := utils.VerifyToken(accessToken, s.secret)
	if err != nil {
		return nil, nil, ErrInvalidSession
	}
	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	return claims, user, nil
}

// CurrentUser resolves the user behind an access token
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	_, user, err := s.Authenticate(ctx, accessToken)
	return user, err
}

// ChangePassword replaces the password and ends every other session
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return invalid("current_password", "is incorrect")
	}
	if len(newPassword) < MinPasswordLength {
		return invalid("new_password", "must be at least 8 characters")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.tokens.RevokeAllForUser(ctx, user.ID); err != nil {
		return err
	}

	logger.Info().Str("user_id", user.ID).Msg("Admin password changed")
	return nil
}

// UpdateProfile changes the display name
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string) (*models.User, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the first admin account when none exists. It reports
// whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	count, err := s.users.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if email == "" || password == "" {
		logger.Warn().Msg("No admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
		return false, nil
	}
	if !validEmail(email) {
		return false, invalid("email", "must be a valid e-mail address")
	}
	if len(password) < MinPasswordLength {
		return false, invalid("password", "must be at least 8 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}
	user := &models.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}

	logger.Info().Str("email", user.Email).Msg("Bootstrap admin account created")
	return true, nil
}

// CleanupExpiredTokens removes expired refresh tokens
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokens.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	logger.Info().Int64("removed", n).Msg("Expired refresh tokens cleaned up")
	return n, nil
}

func (s *AuthService) activeUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if !user.CanManageContent() {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) session(user *models.User, refresh string) (*Session, error) {
	access, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), s.secret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL / time.Second),
		TokenType:    "Bearer",
		User:         user,
	}, nil
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/jwt"
	"sacco-admin/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = &domain.NotFoundError{Resource: "user"}
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrOldPasswordWrong   = errors.New("old password is incorrect")
)

// AuthService handles authentication business logic
type AuthService struct {
	store    *repositories.Store
	issuer   *jwt.Issuer
	notifier *NotificationService
}

// NewAuthService creates a new auth service
func NewAuthService(store *repositories.Store, issuer *jwt.Issuer, notifier *NotificationService) *AuthService {
	return &AuthService{
		store:    store,
		issuer:   issuer,
		notifier: notifier,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username        string  `json:"username" validate:"required,min=3,max=150"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	PasswordConfirm string  `json:"password_confirm" validate:"required"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	PhoneNumber     *string `json:"phone_number"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int                  `json:"expires_in"`
}

// Register creates a member-role user and signs them in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" {
		return nil, domain.Invalid("username", "is required")
	}
	if input.Email == "" {
		return nil, domain.Invalid("email", "is required")
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrPasswordTooShort
	}
	if input.Password != input.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.store.Users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	exists, err = s.store.Users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    hashedPassword,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Role:        string(domain.RoleMember),
		IsActive:    true,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered", "username", user.Username)
	return s.issue(ctx, user)
}

// Login authenticates a user. Admin and manager sign-ins notify administrators.
func (s *AuthService) Login(ctx context.Context, input *LoginInput, ip string) (*AuthResponse, error) {
	user, err := s.store.Users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	slog.Info("User logged in", "username", user.Username, "role", user.Role, "ip", ip)
	if role := domain.Role(user.Role); role == domain.RoleAdmin || role == domain.RoleManager {
		s.notifier.NotifyAdminLogin(ctx, user, ip)
	}
	return resp, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new pair issued
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	tokenHash := password.HashToken(refreshToken)
	stored, err := s.store.RefreshTokens.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if stored.IsRevoked() {
		// A revoked token coming back means it leaked; end every session of the user.
		slog.Warn("Revoked refresh token reused", "user_id", stored.UserID)
		if err := s.store.RefreshTokens.RevokeAllByUserID(ctx, stored.UserID); err != nil {
			slog.Error("Failed to revoke sessions after token reuse", "user_id", stored.UserID, "error", err)
			return nil, errors.Join(ErrTokenRevoked, err)
		}
		return nil, ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, ErrTokenExpired
	}

	user, err := s.store.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := s.store.RefreshTokens.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return nil, err
	}

	slog.Debug("Token refreshed", "username", user.Username)
	return s.issue(ctx, user)
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.store.RefreshTokens.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
		return err
	}
	slog.Info("User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.store.RefreshTokens.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	slog.Info("All sessions revoked", "user_id", userID)
	return nil
}

// Me returns the caller's profile
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return userResponse(ctx, s.store, user), nil
}

// ChangePassword verifies the old password, stores the new one and ends other sessions
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}
	if input.NewPassword != input.NewPasswordConfirm {
		return ErrPasswordMismatch
	}
	if !password.ValidatePassword(input.NewPassword) {
		return ErrPasswordTooShort
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.store.Users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.store.RefreshTokens.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	slog.Info("Password changed", "user_id", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return s.issuer.ParseAccessToken(accessToken)
}

// CleanupExpiredTokens purges refresh tokens past their expiry
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.store.RefreshTokens.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("Expired refresh tokens removed", "count", n)
	}
	return n, nil
}

// issue generates and stores a token pair for user
func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResponse, error) {
	accessToken, err := s.issuer.AccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, expiresAt, err := s.issuer.RefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.store.RefreshTokens.Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         userResponse(ctx, s.store, user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.issuer.AccessTTL().Seconds()),
	}, nil
}

// userResponse builds the user DTO, adding the membership number when a profile exists
func userResponse(ctx context.Context, store *repositories.Store, user *models.User) *models.UserResponse {
	resp := user.ToResponse()
	if member, err := store.Members.GetByUserID(ctx, user.ID); err == nil {
		resp.MemberID = member.MembershipNo
	}
	return resp
}

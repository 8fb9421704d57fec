package auth

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
	"github.com/threadline-shop/threadline-api/pkg/jwt"
	"github.com/threadline-shop/threadline-api/pkg/logger"
)

// JWTConfig holds token generation settings.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	RefreshExpHours int
	Issuer          string
}

// AuthUseCase covers registration, login, refresh rotation and password
// changes. Refresh tokens are opaque random strings stored server-side;
// each use revokes the presented token and issues a new one, and a
// revoked token presented again revokes the whole family.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	refreshRepo repository.RefreshTokenRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, refreshRepo repository.RefreshTokenRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, refreshRepo: refreshRepo, jwtCfg: jwtCfg, log: log}
}

// Register creates a customer account: hashes the password with bcrypt
// and persists. Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("user registered")
	return toUserResponse(user), nil
}

// Login verifies the credentials and issues an access token plus a
// fresh refresh token.
func (uc *AuthUseCase) Login(in dto.LoginRequest, clientIP string) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueTokens(user, clientIP)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new access/refresh pair is issued. Presenting a revoked token is
// treated as theft and revokes every token the user holds.
func (uc *AuthUseCase) Refresh(in dto.RefreshRequest, clientIP string) (*dto.TokenResponse, error) {
	stored, err := uc.refreshRepo.GetByToken(in.RefreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrUnauthorized
	}
	if stored.Revoked {
		uc.log.Warn().Str("user_id", stored.UserID).Msg("revoked refresh token reuse, revoking all sessions")
		if err := uc.refreshRepo.RevokeAllForUser(stored.UserID); err != nil {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.refreshRepo.Revoke(stored.ID); err != nil {
		return nil, err
	}
	return uc.issueTokens(user, clientIP)
}

// Logout revokes every refresh token of the user.
func (uc *AuthUseCase) Logout(userID string) error {
	return uc.refreshRepo.RevokeAllForUser(userID)
}

// Me returns the authenticated user's profile.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every open session so old refresh tokens die with the old
// password.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(userID, string(hash)); err != nil {
		return err
	}
	return uc.refreshRepo.RevokeAllForUser(userID)
}

func (uc *AuthUseCase) issueTokens(user *entity.User, clientIP string) (*dto.TokenResponse, error) {
	access, jwtID, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(uc.jwtCfg.RefreshExpHours) * time.Hour)
	if err := uc.refreshRepo.Create(&entity.RefreshToken{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Token:       refresh,
		JWTID:       jwtID,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
		CreatedByIP: clientIP,
	}); err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:        access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         *toUserResponse(user),
	}, nil
}

// newRefreshToken returns 256 bits of hex. Opaque on purpose: refresh
// tokens are validated against the store, never parsed.
func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/session"
	"github.com/bumiauto/web-api/internal/repo/postgres"
	"github.com/bumiauto/web-api/internal/utils"
	"github.com/bumiauto/web-api/pkg/logger"
)

// CredentialVerifier checks a login attempt against some identity source.
// Implementations return domain.ErrUnauthorized for a mismatch; anything
// else is an upstream failure.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.LoginUser, error)
}

// StaticVerifier is the env-configured fallback admin. An argon2id hash is
// preferred; a plain password is accepted for development setups only.
type StaticVerifier struct {
	Email        string
	Password     string
	PasswordHash string
	Name         string
	Role         string
}

func (v *StaticVerifier) Verify(ctx context.Context, email, password string) (*domain.LoginUser, error) {
	if utils.NormalizeEmail(email) != utils.NormalizeEmail(v.Email) {
		return nil, domain.ErrUnauthorized
	}

	switch {
	case v.PasswordHash != "":
		match, err := argon2id.ComparePasswordAndHash(password, v.PasswordHash)
		if err != nil || !match {
			return nil, domain.ErrUnauthorized
		}
	case v.Password != "":
		if subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) != 1 {
			return nil, domain.ErrUnauthorized
		}
	default:
		return nil, domain.ErrUnauthorized
	}

	return &domain.LoginUser{Email: utils.NormalizeEmail(v.Email), Role: v.Role, Name: v.Name}, nil
}

// DBVerifier checks against the admin_users table.
type DBVerifier struct {
	Admins postgres.AdminRepository
}

func (v *DBVerifier) Verify(ctx context.Context, email, password string) (*domain.LoginUser, error) {
	admin, err := v.Admins.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrUnauthorized
	}

	match, err := argon2id.ComparePasswordAndHash(password, admin.PasswordHash)
	if err != nil || !match {
		return nil, domain.ErrUnauthorized
	}

	if err := v.Admins.RecordLogin(ctx, admin.ID); err != nil {
		logger.WarnContext(ctx, "Failed to record admin login", "error", err, "admin_id", admin.ID)
	}

	return &domain.LoginUser{Email: admin.Email, Role: admin.Role, Name: admin.Name}, nil
}

// ChainVerifier tries verifiers in order until one accepts. A mismatch
// moves to the next verifier; an upstream failure stops the chain.
type ChainVerifier []CredentialVerifier

func (c ChainVerifier) Verify(ctx context.Context, email, password string) (*domain.LoginUser, error) {
	for _, v := range c {
		user, err := v.Verify(ctx, email, password)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
	}
	return nil, domain.ErrUnauthorized
}

type AuthService interface {
	// Login verifies credentials and returns the identity plus a session
	// token ready to be set as the admin_session cookie.
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginUser, string, error)
}

type authService struct {
	verifier CredentialVerifier
	codec    *session.Codec
}

func NewAuthService(verifier CredentialVerifier, codec *session.Codec) AuthService {
	return &authService{verifier: verifier, codec: codec}
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginUser, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", domain.Invalid("", "email and password are required")
	}

	user, err := s.verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.codec.Encode(*user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode session: %w", err)
	}

	logger.InfoContext(ctx, "Admin login", "email", user.Email, "role", user.Role)
	return user, token, nil
}

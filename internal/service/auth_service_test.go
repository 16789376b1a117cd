package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/session"
	"github.com/bumiauto/web-api/internal/service"
)

func TestStaticVerifierPlainPassword(t *testing.T) {
	v := &service.StaticVerifier{
		Email:    "admin@bumiauto.com",
		Password: "letmein",
		Name:     "Admin",
		Role:     "super_admin",
	}

	user, err := v.Verify(context.Background(), "Admin@BumiAuto.com", "letmein")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Email != "admin@bumiauto.com" || user.Role != "super_admin" {
		t.Fatalf("unexpected identity: %+v", user)
	}

	if _, err := v.Verify(context.Background(), "admin@bumiauto.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "else@bumiauto.com", "letmein"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown email, got %v", err)
	}
}

func TestStaticVerifierHashTakesPrecedence(t *testing.T) {
	hash, err := argon2id.CreateHash("hunter2", argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	v := &service.StaticVerifier{
		Email:        "admin@bumiauto.com",
		Password:     "letmein",
		PasswordHash: hash,
		Role:         "admin",
	}

	if _, err := v.Verify(context.Background(), "admin@bumiauto.com", "hunter2"); err != nil {
		t.Fatalf("hash should match: %v", err)
	}
	// The plain password is ignored once a hash is configured.
	if _, err := v.Verify(context.Background(), "admin@bumiauto.com", "letmein"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDBVerifier(t *testing.T) {
	hash, err := argon2id.CreateHash("s3cret", argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admins := newMockAdminRepo()
	admins.admins["ops@bumiauto.com"] = &domain.AdminUser{
		ID:           "a1",
		Email:        "ops@bumiauto.com",
		PasswordHash: hash,
		Role:         "admin",
		Name:         "Ops",
		Active:       true,
	}
	v := &service.DBVerifier{Admins: admins}

	user, err := v.Verify(context.Background(), "ops@bumiauto.com", "s3cret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Name != "Ops" {
		t.Fatalf("unexpected identity: %+v", user)
	}
	if len(admins.loginRecord) != 1 || admins.loginRecord[0] != "a1" {
		t.Fatalf("expected last_login to be recorded, got %v", admins.loginRecord)
	}

	if _, err := v.Verify(context.Background(), "ops@bumiauto.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "ghost@bumiauto.com", "s3cret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown admin, got %v", err)
	}
}

func TestChainVerifierFallsThrough(t *testing.T) {
	admins := newMockAdminRepo()
	chain := service.ChainVerifier{
		&service.DBVerifier{Admins: admins},
		&service.StaticVerifier{Email: "admin@bumiauto.com", Password: "fallback", Role: "admin"},
	}

	// No DB row, so the static fallback answers.
	user, err := chain.Verify(context.Background(), "admin@bumiauto.com", "fallback")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Role != "admin" {
		t.Fatalf("unexpected identity: %+v", user)
	}
}

func TestChainVerifierStopsOnUpstreamFailure(t *testing.T) {
	admins := newMockAdminRepo()
	admins.findErr = errors.New("db down")
	chain := service.ChainVerifier{
		&service.DBVerifier{Admins: admins},
		&service.StaticVerifier{Email: "admin@bumiauto.com", Password: "fallback", Role: "admin"},
	}

	_, err := chain.Verify(context.Background(), "admin@bumiauto.com", "fallback")
	if err == nil || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("a db failure must not fall through to the next verifier, got %v", err)
	}
}

func TestLoginIssuesDecodableToken(t *testing.T) {
	codec := session.NewCodec("login-test-secret", 24*time.Hour)
	svc := service.NewAuthService(
		&service.StaticVerifier{Email: "admin@bumiauto.com", Password: "pw", Name: "Admin", Role: "admin"},
		codec,
	)

	user, token, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "admin@bumiauto.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "admin@bumiauto.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	s, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("token should decode: %v", err)
	}
	if s.Email != user.Email || s.Role != user.Role {
		t.Fatalf("session does not match login identity: %+v", s)
	}
	if !s.Exp.After(time.Now().Add(23 * time.Hour)) {
		t.Fatalf("expected roughly 24h expiry, got %v", s.Exp)
	}
}

func TestLoginMissingFields(t *testing.T) {
	codec := session.NewCodec("login-test-secret", time.Hour)
	svc := service.NewAuthService(
		&service.StaticVerifier{Email: "admin@bumiauto.com", Password: "pw"},
		codec,
	)

	if _, _, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "admin@bumiauto.com"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), &domain.LoginRequest{Password: "pw"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

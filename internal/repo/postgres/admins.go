package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/store"
)

type AdminRepository interface {
	// FindByEmail returns the active admin with the given email, or nil.
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	RecordLogin(ctx context.Context, id string) error
}

type adminRepository struct {
	db *store.Client
}

func NewAdminRepository(db *store.Client) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.Table("admin_users").Eq("email", email).Eq("active", true).
		Row(ctx, "id", "email", "password_hash", "role", "name", "active", "last_login", "created_at")

	var a domain.AdminUser
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.Name, &a.Active, &a.LastLogin, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) RecordLogin(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.Table("admin_users").Eq("id", id).
		Update(ctx, map[string]any{"last_login": time.Now()})
	return err
}

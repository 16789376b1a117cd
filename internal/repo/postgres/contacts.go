package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/store"
)

type ContactRepository interface {
	Create(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error)
	List(ctx context.Context, status *domain.ContactStatus, limit, offset int) ([]domain.ContactSubmission, error)
	Update(ctx context.Context, id string, values map[string]any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByStatus(ctx context.Context, status domain.ContactStatus) (int64, error)
}

type contactRepository struct {
	db *store.Client
}

func NewContactRepository(db *store.Client) ContactRepository {
	return &contactRepository{db: db}
}

var contactCols = []string{
	"id", "name", "email", "phone", "subject", "message", "status",
	"admin_notes", "created_at", "updated_at",
}

func scanContact(row pgx.Row) (*domain.ContactSubmission, error) {
	var c domain.ContactSubmission
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Status, &c.AdminNotes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepository) Create(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Public creation always starts at "new"; the public path accepts no
	// further writes afterwards.
	row := r.db.Table("contact_submissions").InsertRow(ctx, map[string]any{
		"id":      uuid.NewString(),
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"subject": req.Subject,
		"message": req.Message,
		"status":  string(domain.ContactNew),
	}, contactCols...)

	return scanContact(row)
}

func (r *contactRepository) List(ctx context.Context, status *domain.ContactStatus, limit, offset int) ([]domain.ContactSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := r.db.Table("contact_submissions").Order("created_at", true).Limit(limit).Offset(offset)
	if status != nil {
		q = q.Eq("status", string(*status))
	}
	rows, err := q.Rows(ctx, contactCols...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []domain.ContactSubmission{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *c)
	}
	return subs, rows.Err()
}

func (r *contactRepository) Update(ctx context.Context, id string, values map[string]any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	values["updated_at"] = time.Now()
	n, err := r.db.Table("contact_submissions").Eq("id", id).Update(ctx, values)
	return n > 0, err
}

func (r *contactRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.db.Table("contact_submissions").Eq("id", id).Delete(ctx)
	return n > 0, err
}

func (r *contactRepository) CountByStatus(ctx context.Context, status domain.ContactStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.db.Table("contact_submissions").Eq("status", string(status)).Count(ctx)
}

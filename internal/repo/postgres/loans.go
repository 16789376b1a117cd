package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/store"
)

type LoanRepository interface {
	Create(ctx context.Context, req *domain.LoanInquiryRequest) (*domain.LoanInquiry, error)
	List(ctx context.Context, status *domain.LoanStatus, limit, offset int) ([]domain.LoanInquiry, error)
	Update(ctx context.Context, id string, values map[string]any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error)
}

type loanRepository struct {
	db *store.Client
}

func NewLoanRepository(db *store.Client) LoanRepository {
	return &loanRepository{db: db}
}

var loanCols = []string{
	"id", "full_name", "phone", "email", "loan_type", "loan_amount",
	"monthly_income", "message", "status", "assigned_to", "admin_notes",
	"created_at", "updated_at",
}

func scanLoan(row pgx.Row) (*domain.LoanInquiry, error) {
	var l domain.LoanInquiry
	err := row.Scan(
		&l.ID, &l.FullName, &l.Phone, &l.Email, &l.LoanType, &l.LoanAmount,
		&l.MonthlyIncome, &l.Message, &l.Status, &l.AssignedTo, &l.AdminNotes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loanRepository) Create(ctx context.Context, req *domain.LoanInquiryRequest) (*domain.LoanInquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.Table("loan_inquiries").InsertRow(ctx, map[string]any{
		"id":             uuid.NewString(),
		"full_name":      req.FullName,
		"phone":          req.Phone,
		"email":          req.Email,
		"loan_type":      req.LoanType,
		"loan_amount":    req.LoanAmount,
		"monthly_income": req.MonthlyIncome,
		"message":        req.Message,
		"status":         string(domain.LoanPending),
	}, loanCols...)

	return scanLoan(row)
}

func (r *loanRepository) List(ctx context.Context, status *domain.LoanStatus, limit, offset int) ([]domain.LoanInquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := r.db.Table("loan_inquiries").Order("created_at", true).Limit(limit).Offset(offset)
	if status != nil {
		q = q.Eq("status", string(*status))
	}
	rows, err := q.Rows(ctx, loanCols...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := []domain.LoanInquiry{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, *l)
	}
	return inquiries, rows.Err()
}

func (r *loanRepository) Update(ctx context.Context, id string, values map[string]any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	values["updated_at"] = time.Now()
	n, err := r.db.Table("loan_inquiries").Eq("id", id).Update(ctx, values)
	return n > 0, err
}

func (r *loanRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.db.Table("loan_inquiries").Eq("id", id).Delete(ctx)
	return n > 0, err
}

func (r *loanRepository) CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.db.Table("loan_inquiries").Eq("status", string(status)).Count(ctx)
}

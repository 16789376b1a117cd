package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/mailer"
	"github.com/bumiauto/web-api/internal/repo/postgres"
	"github.com/bumiauto/web-api/internal/utils"
	"github.com/bumiauto/web-api/pkg/logger"
)

type InquiryService interface {
	// SubmitContact persists a contact-form submission and notifies staff.
	// Notification failure never fails the submission.
	SubmitContact(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error)
	SubmitLoan(ctx context.Context, req *domain.LoanInquiryRequest) (*domain.LoanInquiry, error)

	ListContacts(ctx context.Context, status string, limit, offset int) ([]domain.ContactSubmission, error)
	UpdateContact(ctx context.Context, id string, patch domain.ContactPatch) error
	DeleteContact(ctx context.Context, id string) error

	ListLoans(ctx context.Context, status string, limit, offset int) ([]domain.LoanInquiry, error)
	UpdateLoan(ctx context.Context, id string, patch domain.LoanPatch) error
	DeleteLoan(ctx context.Context, id string) error
}

type inquiryService struct {
	contacts  postgres.ContactRepository
	loans     postgres.LoanRepository
	mail      mailer.Service
	contactTo string
	loanTo    string
}

func NewInquiryService(
	contacts postgres.ContactRepository,
	loans postgres.LoanRepository,
	mail mailer.Service,
	contactTo, loanTo string,
) InquiryService {
	return &inquiryService{
		contacts:  contacts,
		loans:     loans,
		mail:      mail,
		contactTo: contactTo,
		loanTo:    loanTo,
	}
}

func (s *inquiryService) SubmitContact(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error) {
	req.Name = utils.NormalizeString(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	req.Message = utils.NormalizeString(req.Message)

	if req.Name == "" {
		return nil, domain.Invalid("name", "name is required")
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, domain.Invalid("email", "invalid email address")
	}
	if req.Message == "" {
		return nil, domain.Invalid("message", "message is required")
	}

	sub, err := s.contacts.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to save contact submission: %w", err)
	}

	s.notify(ctx, contactNotification(sub, s.contactTo))
	return sub, nil
}

func (s *inquiryService) SubmitLoan(ctx context.Context, req *domain.LoanInquiryRequest) (*domain.LoanInquiry, error) {
	req.FullName = utils.NormalizeString(req.FullName)
	req.Phone = utils.NormalizeString(req.Phone)
	req.Email = utils.NormalizeEmail(req.Email)

	if req.FullName == "" {
		return nil, domain.Invalid("full_name", "full name is required")
	}
	if !utils.IsValidPhone(req.Phone) {
		return nil, domain.Invalid("phone", "invalid phone number")
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, domain.Invalid("email", "invalid email address")
	}
	if _, ok := domain.ParseLoanType(req.LoanType); !ok {
		return nil, domain.Invalid("loan_type", "unknown loan type")
	}

	inquiry, err := s.loans.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to save loan inquiry: %w", err)
	}

	s.notify(ctx, loanNotification(inquiry, s.loanTo))
	return inquiry, nil
}

// notify delivers a staff notification best-effort.
func (s *inquiryService) notify(ctx context.Context, msg mailer.Message) {
	id, err := s.mail.Send(ctx, msg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send notification email",
			"error", err, "to", msg.To, "subject", msg.Subject)
		return
	}
	logger.InfoContext(ctx, "Notification email sent", "message_id", id, "to", msg.To)
}

func (s *inquiryService) ListContacts(ctx context.Context, status string, limit, offset int) ([]domain.ContactSubmission, error) {
	var filter *domain.ContactStatus
	if status != "" {
		parsed, ok := domain.ParseContactStatus(status)
		if !ok {
			return nil, domain.Invalid("status", "unknown status")
		}
		filter = &parsed
	}
	return s.contacts.List(ctx, filter, limit, offset)
}

func (s *inquiryService) UpdateContact(ctx context.Context, id string, patch domain.ContactPatch) error {
	values := map[string]any{}
	if patch.Status != nil {
		status, ok := domain.ParseContactStatus(*patch.Status)
		if !ok {
			return domain.Invalid("status", "unknown status")
		}
		values["status"] = string(status)
	}
	if patch.AdminNotes != nil {
		values["admin_notes"] = *patch.AdminNotes
	}
	if len(values) == 0 {
		return domain.Invalid("", "nothing to update")
	}

	ok, err := s.contacts.Update(ctx, id, values)
	if err != nil {
		return fmt.Errorf("failed to update contact submission: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *inquiryService) DeleteContact(ctx context.Context, id string) error {
	ok, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact submission: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *inquiryService) ListLoans(ctx context.Context, status string, limit, offset int) ([]domain.LoanInquiry, error) {
	var filter *domain.LoanStatus
	if status != "" {
		parsed, ok := domain.ParseLoanStatus(status)
		if !ok {
			return nil, domain.Invalid("status", "unknown status")
		}
		filter = &parsed
	}
	return s.loans.List(ctx, filter, limit, offset)
}

func (s *inquiryService) UpdateLoan(ctx context.Context, id string, patch domain.LoanPatch) error {
	values := map[string]any{}
	if patch.Status != nil {
		status, ok := domain.ParseLoanStatus(*patch.Status)
		if !ok {
			return domain.Invalid("status", "unknown status")
		}
		values["status"] = string(status)
	}
	if patch.AssignedTo != nil {
		values["assigned_to"] = *patch.AssignedTo
	}
	if patch.AdminNotes != nil {
		values["admin_notes"] = *patch.AdminNotes
	}
	if len(values) == 0 {
		return domain.Invalid("", "nothing to update")
	}

	ok, err := s.loans.Update(ctx, id, values)
	if err != nil {
		return fmt.Errorf("failed to update loan inquiry: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *inquiryService) DeleteLoan(ctx context.Context, id string) error {
	ok, err := s.loans.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete loan inquiry: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func loanTypeDisplay(t domain.LoanType) string {
	switch t {
	case domain.LoanMotorcycle:
		return "Motorcycle Loan"
	case domain.LoanConsumerDurable:
		return "Consumer Durable Financing"
	default:
		return "Other"
	}
}

func contactNotification(sub *domain.ContactSubmission, to string) mailer.Message {
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission from BumiAuto Website</h2>\n")
	b.WriteString("<h3>Contact Information:</h3>\n<ul>\n")
	fmt.Fprintf(&b, "<li><strong>Name:</strong> %s</li>\n", html.EscapeString(sub.Name))
	fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>\n", html.EscapeString(sub.Email))
	if sub.Phone != nil && *sub.Phone != "" {
		fmt.Fprintf(&b, "<li><strong>Phone:</strong> %s</li>\n", html.EscapeString(*sub.Phone))
	}
	b.WriteString("</ul>\n")
	if sub.Subject != nil && *sub.Subject != "" {
		fmt.Fprintf(&b, "<h3>Subject:</h3><p>%s</p>\n", html.EscapeString(*sub.Subject))
	}
	fmt.Fprintf(&b, "<h3>Message:</h3>\n<p>%s</p>\n", html.EscapeString(sub.Message))
	fmt.Fprintf(&b, "<hr>\n<p><small>Submitted on: %s</small></p>\n", sub.CreatedAt.Format(time.RFC1123))

	subject := fmt.Sprintf("Contact Form Submission from %s", sub.Name)
	if sub.Subject != nil && *sub.Subject != "" {
		subject = fmt.Sprintf("Contact Form: %s", *sub.Subject)
	}

	return mailer.Message{
		To:      to,
		ReplyTo: sub.Email,
		Subject: subject,
		Text:    fmt.Sprintf("New contact form submission from %s <%s>:\n\n%s", sub.Name, sub.Email, sub.Message),
		HTML:    b.String(),
	}
}

func loanNotification(inquiry *domain.LoanInquiry, to string) mailer.Message {
	display := loanTypeDisplay(inquiry.LoanType)

	var b strings.Builder
	b.WriteString("<h2>New Loan Inquiry from BumiAuto Website</h2>\n")
	b.WriteString("<h3>Contact Information:</h3>\n<ul>\n")
	fmt.Fprintf(&b, "<li><strong>Name:</strong> %s</li>\n", html.EscapeString(inquiry.FullName))
	fmt.Fprintf(&b, "<li><strong>Phone:</strong> %s</li>\n", html.EscapeString(inquiry.Phone))
	fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>\n", html.EscapeString(inquiry.Email))
	b.WriteString("</ul>\n<h3>Loan Details:</h3>\n<ul>\n")
	fmt.Fprintf(&b, "<li><strong>Loan Type:</strong> %s</li>\n", display)
	if inquiry.LoanAmount != nil {
		fmt.Fprintf(&b, "<li><strong>Requested Amount:</strong> RM %.2f</li>\n", *inquiry.LoanAmount)
	}
	if inquiry.MonthlyIncome != nil {
		fmt.Fprintf(&b, "<li><strong>Monthly Income:</strong> RM %.2f</li>\n", *inquiry.MonthlyIncome)
	}
	b.WriteString("</ul>\n")
	if inquiry.Message != nil && *inquiry.Message != "" {
		fmt.Fprintf(&b, "<h3>Additional Information:</h3>\n<p>%s</p>\n", html.EscapeString(*inquiry.Message))
	}
	fmt.Fprintf(&b, "<hr>\n<p><small>Submitted on: %s</small></p>\n", inquiry.CreatedAt.Format(time.RFC1123))

	return mailer.Message{
		To:      to,
		ReplyTo: inquiry.Email,
		Subject: fmt.Sprintf("New Loan Inquiry: %s - %s", display, inquiry.FullName),
		Text:    fmt.Sprintf("New %s inquiry from %s <%s>, phone %s.", display, inquiry.FullName, inquiry.Email, inquiry.Phone),
		HTML:    b.String(),
	}
}

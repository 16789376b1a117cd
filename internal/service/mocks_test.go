package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/mailer"
)

// In-memory stand-ins for the repositories, shared across the service
// tests in this package.

type mockPostRepo struct {
	posts      map[string]*domain.BlogPost
	nextID     int
	createErr  error
	updateErr  error
	slugsTaken map[string]bool
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]*domain.BlogPost), slugsTaken: make(map[string]bool)}
}

func (m *mockPostRepo) add(p *domain.BlogPost) *domain.BlogPost {
	m.nextID++
	if p.ID == "" {
		p.ID = fmt.Sprintf("post-%d", m.nextID)
	}
	m.posts[p.ID] = p
	m.slugsTaken[p.Slug] = true
	return p
}

func (m *mockPostRepo) Create(_ context.Context, req *domain.CreatePostRequest) (*domain.BlogPost, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.slugsTaken[req.Slug] {
		return nil, fmt.Errorf("duplicate slug: %w", domain.ErrConflict)
	}
	return m.add(&domain.BlogPost{
		Slug:      req.Slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Tag:       req.Tag,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}), nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (*domain.BlogPost, error) {
	return m.posts[id], nil
}

func (m *mockPostRepo) GetBySlug(_ context.Context, slug string, publishedOnly bool) (*domain.BlogPost, error) {
	for _, p := range m.posts {
		if p.Slug == slug && (!publishedOnly || p.Published) {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPostRepo) ListPublished(_ context.Context, limit, offset int) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	for _, p := range m.posts {
		if p.Published {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPostRepo) ListAll(_ context.Context) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPostRepo) Update(_ context.Context, id string, values map[string]any) (*domain.BlogPost, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	if v, ok := values["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := values["slug"]; ok {
		p.Slug = v.(string)
	}
	if v, ok := values["content"]; ok {
		p.Content = v.(string)
	}
	if v, ok := values["published"]; ok {
		p.Published = v.(bool)
	}
	if v, ok := values["published_at"]; ok {
		t := v.(time.Time)
		p.PublishedAt = &t
	}
	return p, nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.posts[id]; !ok {
		return false, nil
	}
	delete(m.posts, id)
	return true, nil
}

func (m *mockPostRepo) ExistsPublished(_ context.Context, id string) (bool, error) {
	p, ok := m.posts[id]
	return ok && p.Published, nil
}

func (m *mockPostRepo) IncrementViews(_ context.Context, id string) error {
	p, ok := m.posts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ViewsCount++
	return nil
}

func (m *mockPostRepo) IncrementLikes(_ context.Context, id string) (int, error) {
	p, ok := m.posts[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.LikesCount++
	return p.LikesCount, nil
}

func (m *mockPostRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.posts)), nil
}

type mockCommentRepo struct {
	comments  map[string]*domain.BlogComment
	nextID    int
	createErr error
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[string]*domain.BlogComment)}
}

func (m *mockCommentRepo) Create(_ context.Context, c *domain.BlogComment) (*domain.BlogComment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	stored := *c
	stored.ID = fmt.Sprintf("comment-%d", m.nextID)
	stored.CreatedAt = time.Now()
	m.comments[stored.ID] = &stored
	return &stored, nil
}

func (m *mockCommentRepo) ListByPost(_ context.Context, postID string, approvedOnly bool) ([]domain.BlogComment, error) {
	var out []domain.BlogComment
	for _, c := range m.comments {
		if c.PostID == postID && (!approvedOnly || c.Approved) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCommentRepo) List(_ context.Context, approved *bool, limit, offset int) ([]domain.BlogComment, error) {
	var out []domain.BlogComment
	for _, c := range m.comments {
		if approved == nil || c.Approved == *approved {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCommentRepo) SetApproved(_ context.Context, id string, approved bool) (*domain.BlogComment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	c.Approved = approved
	return c, nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.comments[id]; !ok {
		return false, nil
	}
	delete(m.comments, id)
	return true, nil
}

func (m *mockCommentRepo) CountPending(_ context.Context) (int64, error) {
	var n int64
	for _, c := range m.comments {
		if !c.Approved {
			n++
		}
	}
	return n, nil
}

type mockLikeRepo struct {
	liked     map[string]bool
	insertErr error
}

func newMockLikeRepo() *mockLikeRepo {
	return &mockLikeRepo{liked: make(map[string]bool)}
}

func (m *mockLikeRepo) InsertIfAbsent(_ context.Context, postID, visitorID string) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
	key := postID + "|" + visitorID
	if m.liked[key] {
		return false, nil
	}
	m.liked[key] = true
	return true, nil
}

type mockContactRepo struct {
	subs      map[string]*domain.ContactSubmission
	nextID    int
	createErr error
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{subs: make(map[string]*domain.ContactSubmission)}
}

func (m *mockContactRepo) Create(_ context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	sub := &domain.ContactSubmission{
		ID:        fmt.Sprintf("contact-%d", m.nextID),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    domain.ContactNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.subs[sub.ID] = sub
	return sub, nil
}

func (m *mockContactRepo) List(_ context.Context, status *domain.ContactStatus, limit, offset int) ([]domain.ContactSubmission, error) {
	var out []domain.ContactSubmission
	for _, s := range m.subs {
		if status == nil || s.Status == *status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockContactRepo) Update(_ context.Context, id string, values map[string]any) (bool, error) {
	s, ok := m.subs[id]
	if !ok {
		return false, nil
	}
	if v, ok := values["status"]; ok {
		s.Status = domain.ContactStatus(v.(string))
	}
	if v, ok := values["admin_notes"]; ok {
		notes := v.(string)
		s.AdminNotes = &notes
	}
	return true, nil
}

func (m *mockContactRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.subs[id]; !ok {
		return false, nil
	}
	delete(m.subs, id)
	return true, nil
}

func (m *mockContactRepo) CountByStatus(_ context.Context, status domain.ContactStatus) (int64, error) {
	var n int64
	for _, s := range m.subs {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

type mockLoanRepo struct {
	loans     map[string]*domain.LoanInquiry
	nextID    int
	createErr error
}

func newMockLoanRepo() *mockLoanRepo {
	return &mockLoanRepo{loans: make(map[string]*domain.LoanInquiry)}
}

func (m *mockLoanRepo) Create(_ context.Context, req *domain.LoanInquiryRequest) (*domain.LoanInquiry, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	inq := &domain.LoanInquiry{
		ID:            fmt.Sprintf("loan-%d", m.nextID),
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		LoanType:      domain.LoanType(req.LoanType),
		LoanAmount:    req.LoanAmount,
		MonthlyIncome: req.MonthlyIncome,
		Message:       req.Message,
		Status:        domain.LoanPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.loans[inq.ID] = inq
	return inq, nil
}

func (m *mockLoanRepo) List(_ context.Context, status *domain.LoanStatus, limit, offset int) ([]domain.LoanInquiry, error) {
	var out []domain.LoanInquiry
	for _, l := range m.loans {
		if status == nil || l.Status == *status {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockLoanRepo) Update(_ context.Context, id string, values map[string]any) (bool, error) {
	l, ok := m.loans[id]
	if !ok {
		return false, nil
	}
	if v, ok := values["status"]; ok {
		l.Status = domain.LoanStatus(v.(string))
	}
	if v, ok := values["assigned_to"]; ok {
		assigned := v.(string)
		l.AssignedTo = &assigned
	}
	return true, nil
}

func (m *mockLoanRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.loans[id]; !ok {
		return false, nil
	}
	delete(m.loans, id)
	return true, nil
}

func (m *mockLoanRepo) CountByStatus(_ context.Context, status domain.LoanStatus) (int64, error) {
	var n int64
	for _, l := range m.loans {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

type mockAdminRepo struct {
	admins      map[string]*domain.AdminUser
	loginRecord []string
	findErr     error
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*domain.AdminUser)}
}

func (m *mockAdminRepo) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.admins[email], nil
}

func (m *mockAdminRepo) RecordLogin(_ context.Context, id string) error {
	m.loginRecord = append(m.loginRecord, id)
	return nil
}

type mockMailer struct {
	sent    []mailer.Message
	sendErr error
}

func (m *mockMailer) Send(_ context.Context, msg mailer.Message) (string, error) {
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.sent = append(m.sent, msg)
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}

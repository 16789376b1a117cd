package domain

import "time"

type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
	ContactArchived  ContactStatus = "archived"
)

func ParseContactStatus(s string) (ContactStatus, bool) {
	switch ContactStatus(s) {
	case ContactNew, ContactRead, ContactResponded, ContactArchived:
		return ContactStatus(s), true
	default:
		return "", false
	}
}

type ContactSubmission struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      *string       `json:"phone,omitempty"`
	Subject    *string       `json:"subject,omitempty"`
	Message    string        `json:"message"`
	Status     ContactStatus `json:"status"`
	AdminNotes *string       `json:"admin_notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type ContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message"`
}

// ContactPatch is an admin-only partial update. Status transitions are
// unordered: any enumerated status may follow any other.
type ContactPatch struct {
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

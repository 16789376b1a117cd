package domain

import "time"

// AdminSession is the identity carried in the admin_session cookie. It is
// ephemeral: there is no server-side session store, the cookie is the only
// record. Any consumer must treat an elapsed Exp as an absent session.
type AdminSession struct {
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Name  string    `json:"name"`
	Exp   time.Time `json:"exp"`
}

func (s *AdminSession) Expired() bool {
	return time.Now().After(s.Exp)
}

// AdminUser is a back-office account stored in admin_users.
type AdminUser struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Name         string     `json:"name"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

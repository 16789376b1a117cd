// Package session encodes the admin identity into the admin_session cookie
// and validates it on the way back in. The token is an HMAC-signed JWT, so
// a client that can read the cookie still cannot forge or extend one.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bumiauto/web-api/internal/domain"
)

const CookieName = "admin_session"

var (
	ErrMalformedToken = errors.New("malformed session token")
	ErrSessionExpired = errors.New("session expired")
)

type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Encode serializes the identity into a signed token expiring after the
// configured TTL.
func (c *Codec) Encode(user domain.LoginUser) (string, error) {
	now := time.Now()
	cl := claims{
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Decode parses and verifies a token. ErrSessionExpired is reported for a
// well-formed token whose expiry has elapsed; everything else that fails to
// parse or verify is ErrMalformedToken.
func (c *Codec) Decode(token string) (*domain.AdminSession, error) {
	tok, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformedToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrMalformedToken
	}

	cl, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid || cl.ExpiresAt == nil {
		return nil, ErrMalformedToken
	}

	return &domain.AdminSession{
		Email: cl.Email,
		Role:  cl.Role,
		Name:  cl.Name,
		Exp:   cl.ExpiresAt.Time,
	}, nil
}

// FromRequest is the page-level guard: it returns the session carried by
// the request, or nil on a missing cookie, malformed token or elapsed
// expiry. Expired sessions are indistinguishable from absent ones here.
func (c *Codec) FromRequest(r *http.Request) *domain.AdminSession {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	s, err := c.Decode(cookie.Value)
	if err != nil {
		return nil
	}
	return s
}

// SetCookie installs the session cookie on a login response.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie, on logout or detected expiry.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey struct{}

func WithSession(ctx context.Context, s *domain.AdminSession) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session placed in ctx by the auth middleware,
// or nil.
func FromContext(ctx context.Context) *domain.AdminSession {
	s, _ := ctx.Value(contextKey{}).(*domain.AdminSession)
	return s
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/http/response"
	"github.com/bumiauto/web-api/internal/platform/session"
)

const loginPath = "/admin/login"

// AdminGate protects the /admin page tree. Requests without a valid
// session are redirected to the login page; a cookie carrying a
// malformed or expired token is also cleared so the browser stops
// resending it. The login page itself passes through, with the session
// (if any) placed in the request context so it can redirect away.
func AdminGate(codec *session.Codec, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, stale := decodeCookie(codec, r)
			if stale {
				session.ClearCookie(w, secure)
			}

			if isLoginPath(r.URL.Path) {
				if s != nil {
					r = r.WithContext(session.WithSession(r.Context(), s))
				}
				next.ServeHTTP(w, r)
				return
			}

			if s == nil {
				// 303 so a gated POST re-fetches the login page with GET.
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// RequireAdmin protects the admin JSON API. Unlike the page gate it
// answers 401 instead of redirecting, so fetch callers get a parseable
// error body.
func RequireAdmin(codec *session.Codec, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, stale := decodeCookie(codec, r)
			if stale {
				session.ClearCookie(w, secure)
			}
			if s == nil {
				response.Unauthorized(w, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// decodeCookie reads the session cookie. stale is true when a cookie was
// present but did not decode to a live session, which is the signal to
// clear it.
func decodeCookie(codec *session.Codec, r *http.Request) (s *domain.AdminSession, stale bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	sess, err := codec.Decode(cookie.Value)
	if err != nil {
		return nil, true
	}
	return sess, false
}

func isLoginPath(p string) bool {
	return p == loginPath || strings.HasPrefix(p, loginPath+"/")
}

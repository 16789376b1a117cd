package session_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bumiauto/web-api/internal/domain"
	"github.com/bumiauto/web-api/internal/platform/session"
)

const testSecret = "test-secret"

func testUser() domain.LoginUser {
	return domain.LoginUser{Email: "admin@bumiauto.com", Role: "super_admin", Name: "Admin"}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := session.NewCodec(testSecret, time.Hour)

	token, err := codec.Encode(testUser())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	s, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Email != "admin@bumiauto.com" || s.Role != "super_admin" || s.Name != "Admin" {
		t.Errorf("unexpected session %+v", s)
	}
	if s.Expired() {
		t.Error("fresh session reported expired")
	}
	if remaining := time.Until(s.Exp); remaining > time.Hour || remaining < 59*time.Minute {
		t.Errorf("expiry out of range: %v", remaining)
	}
}

func TestDecodeExpired(t *testing.T) {
	codec := session.NewCodec(testSecret, -time.Millisecond)

	token, err := codec.Encode(testUser())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := codec.Decode(token); err != session.ErrSessionExpired {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	codec := session.NewCodec(testSecret, time.Hour)

	cases := map[string]string{
		"garbage":     "not-a-token",
		"empty":       "",
		"base64 json": base64.StdEncoding.EncodeToString([]byte(`{"email":"x@y.com","role":"super_admin","name":"X","exp":99999999999}`)),
	}
	for name, token := range cases {
		if _, err := codec.Decode(token); err != session.ErrMalformedToken {
			t.Errorf("%s: err = %v, want ErrMalformedToken", name, err)
		}
	}
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	other := session.NewCodec("other-secret", time.Hour)
	token, err := other.Encode(testUser())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	codec := session.NewCodec(testSecret, time.Hour)
	if _, err := codec.Decode(token); err != session.ErrMalformedToken {
		t.Errorf("err = %v, want ErrMalformedToken", err)
	}
}

func TestFromRequest(t *testing.T) {
	codec := session.NewCodec(testSecret, time.Hour)

	t.Run("no cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin", nil)
		if s := codec.FromRequest(r); s != nil {
			t.Errorf("session = %+v, want nil", s)
		}
	})

	t.Run("malformed cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "junk"})
		if s := codec.FromRequest(r); s != nil {
			t.Errorf("session = %+v, want nil", s)
		}
	})

	t.Run("expired cookie", func(t *testing.T) {
		expired := session.NewCodec(testSecret, -time.Millisecond)
		token, _ := expired.Encode(testUser())

		r := httptest.NewRequest("GET", "/admin", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
		if s := codec.FromRequest(r); s != nil {
			t.Errorf("session = %+v, want nil", s)
		}
	})

	t.Run("valid cookie", func(t *testing.T) {
		token, _ := codec.Encode(testUser())

		r := httptest.NewRequest("GET", "/admin", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
		s := codec.FromRequest(r)
		if s == nil || s.Email != "admin@bumiauto.com" {
			t.Errorf("session = %+v", s)
		}
	})
}

func TestCookieAttributes(t *testing.T) {
	w := httptest.NewRecorder()
	session.SetCookie(w, "tok", 24*time.Hour, true)

	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != "admin_session" || c.Value != "tok" {
		t.Errorf("cookie = %+v", c)
	}
	if !c.HttpOnly || !c.Secure || c.Path != "/" || c.SameSite != http.SameSiteLaxMode {
		t.Errorf("attributes = %+v", c)
	}
	if c.MaxAge != 24*60*60 {
		t.Errorf("max age = %d", c.MaxAge)
	}
}

func TestClearCookie(t *testing.T) {
	w := httptest.NewRecorder()
	session.ClearCookie(w, false)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if c := cookies[0]; c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("cookie not cleared: %+v", c)
	}
}

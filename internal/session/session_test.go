package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerify(t *testing.T) {
	m := NewManager("admin", "s3cret", "signing-key")

	tests := []struct {
		name, user, password string
		want                 bool
	}{
		{"correct credentials", "admin", "s3cret", true},
		{"wrong password", "admin", "nope", false},
		{"wrong user", "root", "s3cret", false},
		{"empty credentials", "", "", false},
		{"case sensitive user", "Admin", "s3cret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Verify(tt.user, tt.password); got != tt.want {
				t.Fatalf("Verify(%q, %q) = %v, want %v", tt.user, tt.password, got, tt.want)
			}
		})
	}
}

// loginCookie runs Login and returns the cookie it set.
func loginCookie(t *testing.T, m *Manager) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	if err := m.Login(rr); err != nil {
		t.Fatalf("Login: %v", err)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestLoginThenAuthenticated(t *testing.T) {
	m := NewManager("admin", "s3cret", "signing-key")
	cookie := loginCookie(t, m)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if !m.Authenticated(req) {
		t.Fatal("request with fresh session cookie should be authenticated")
	}
}

func TestAuthenticatedRejectsMissingCookie(t *testing.T) {
	m := NewManager("admin", "s3cret", "signing-key")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if m.Authenticated(req) {
		t.Fatal("request without cookie should be anonymous")
	}
}

func TestAuthenticatedRejectsTamperedToken(t *testing.T) {
	m := NewManager("admin", "s3cret", "signing-key")
	cookie := loginCookie(t, m)
	cookie.Value = cookie.Value + "x"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if m.Authenticated(req) {
		t.Fatal("tampered token should not authenticate")
	}
}

func TestAuthenticatedRejectsForeignSecret(t *testing.T) {
	issuer := NewManager("admin", "s3cret", "other-key")
	cookie := loginCookie(t, issuer)

	m := NewManager("admin", "s3cret", "signing-key")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if m.Authenticated(req) {
		t.Fatal("token signed with a different secret should not authenticate")
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	m := NewManager("admin", "s3cret", "signing-key")
	rr := httptest.NewRecorder()
	m.Logout(rr)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Fatalf("logout cookie MaxAge = %d, want negative", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Fatalf("logout cookie value = %q, want empty", cookies[0].Value)
	}
}

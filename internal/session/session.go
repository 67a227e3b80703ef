// Package session implements the login gate: a single shared credential pair
// and an authenticated flag carried in a signed cookie. There are no user
// accounts; the application intentionally serves one identity.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "comprobantes_session"

// Manager verifies the shared credential and issues/checks session cookies.
type Manager struct {
	user     string
	password string
	secret   []byte
	ttl      time.Duration
}

func NewManager(user, password, secret string) *Manager {
	return &Manager{
		user:     user,
		password: password,
		secret:   []byte(secret),
		ttl:      12 * time.Hour,
	}
}

// Verify compares the submitted credentials against the configured pair.
// Plain equality on a single shared account; credential hashing is out of
// scope for this tool's threat model.
func (m *Manager) Verify(user, password string) bool {
	return user == m.user && password == m.password
}

// Login sets the signed session cookie on the response.
func (m *Manager) Login(w http.ResponseWriter) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   m.user,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout clears the session cookie.
func (m *Manager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Authenticated reports whether the request carries a valid session cookie.
// An expired or tampered token reads as anonymous, never as an error.
func (m *Manager) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return false
	}

	token, err := jwt.ParseWithClaims(c.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	return err == nil && token.Valid
}

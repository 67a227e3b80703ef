package http

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "comprobantes_flash"

// setFlash stores a one-shot message for the next rendered page. Kind is
// "error" or "success" and maps to a CSS class.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) (kind, message string) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return "", ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", ""
	}
	kind, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return "error", decoded
	}
	return kind, message
}

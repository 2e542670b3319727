package session

import (
	"net/http"
	"time"
)

// SetCookie writes the session cookie for ticket.
func (m *Manager) SetCookie(w http.ResponseWriter, ticket Ticket) {
	maxAge := int(time.Until(ticket.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    ticket.Token,
		Path:     "/",
		Expires:  ticket.ExpiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie instructs the client to drop the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest returns the session token carried by r, or "".
func (m *Manager) TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

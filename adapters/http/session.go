package http

import (
	"net/http"

	"github.com/google/uuid"
)

// sessionID returns the session id from the cookie, or "" when absent or
// malformed.
func (a *Adapter) sessionID(r *http.Request) string {
	c, err := r.Cookie(a.config.SessionCookie)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

// ensureSession returns the current session id, starting a new session when
// the request has none.
func (a *Adapter) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := a.sessionID(r); id != "" {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     a.config.SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(a.config.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   a.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

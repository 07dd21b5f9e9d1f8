// Package session binds an identity token to the transport as a
// secure cookie.
package session

import (
	"net/http"
	"time"

	"github.com/postboard-app/postboard/backend/internal/common/constants"
)

const CookieName = constants.SessionCookieName

// Carrier sets, clears and reads the session cookie. Attach and Clear
// use identical attributes so a logout never leaves a stale cookie
// behind.
type Carrier struct {
	secure bool
	maxAge time.Duration
}

// NewCarrier builds a carrier. secure should be false only in
// development; everywhere else the cookie requires TLS.
func NewCarrier(secure bool, maxAge time.Duration) *Carrier {
	return &Carrier{
		secure: secure,
		maxAge: maxAge,
	}
}

func (c *Carrier) Attach(w http.ResponseWriter, token string) {
	if token == "" {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.secure,
	})
}

func (c *Carrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.secure,
	})
}

// Read extracts the token from the request. A missing cookie is not an
// error; it denotes an anonymous request.
func (c *Carrier) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

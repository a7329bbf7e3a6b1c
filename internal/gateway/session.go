package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const sessionCookieName = "heart_session"

// sessionCodec signs the session id carried in the browser cookie.
type sessionCodec struct {
	cookies *securecookie.SecureCookie
	maxAge  time.Duration
	secure  bool
}

func newSessionCodec(hashKey []byte, maxAge time.Duration, secure bool) *sessionCodec {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	cookies := securecookie.New(hashKey, nil)
	cookies.MaxAge(int(maxAge / time.Second))
	return &sessionCodec{cookies: cookies, maxAge: maxAge, secure: secure}
}

// session returns the caller's session id, issuing a fresh one (and its
// cookie) when the request carries none or an invalid one.
func (c *sessionCodec) session(w http.ResponseWriter, r *http.Request) string {
	if id, ok := c.read(r); ok {
		return id
	}
	id := uuid.NewString()
	// An id whose cookie cannot be encoded still serves this one request.
	_ = c.write(w, id)
	return id
}

func (c *sessionCodec) read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	var id string
	if err := c.cookies.Decode(sessionCookieName, cookie.Value, &id); err != nil {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (c *sessionCodec) write(w http.ResponseWriter, id string) error {
	encoded, err := c.cookies.Encode(sessionCookieName, id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(c.maxAge / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "brandson-session"

	cartIDSessionKey = "cartID"
)

type SessionStore interface {
	GetCartID(r *http.Request) string
	EnsureCartID(w http.ResponseWriter, r *http.Request) (string, error)
	ClearCartID(w http.ResponseWriter, r *http.Request) error
}

// CookieSessionStore keeps only the cart id in a signed, encrypted cookie.
// The cart itself lives in a repositories.CartStore.
type CookieSessionStore struct {
	store *sessions.CookieStore
	newID func() string
}

func NewCookieSessionStore(secure bool, maxAge time.Duration, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store, newID: uuid.NewString}
}

// getSession ignores decode errors so a tampered or stale cookie simply starts
// a new session.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, _ := c.store.Get(r, sessionCookieName)
	return session
}

func (c *CookieSessionStore) GetCartID(r *http.Request) string {
	cartID, _ := c.getSession(r).Values[cartIDSessionKey].(string)
	return cartID
}

// EnsureCartID returns the request's cart id, issuing a new one when the
// cookie has none.
func (c *CookieSessionStore) EnsureCartID(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)
	if cartID, ok := session.Values[cartIDSessionKey].(string); ok && cartID != "" {
		return cartID, nil
	}

	cartID := c.newID()
	session.Values[cartIDSessionKey] = cartID
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return cartID, nil
}

func (c *CookieSessionStore) ClearCartID(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	delete(session.Values, cartIDSessionKey)
	return session.Save(r, w)
}

package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/umakantv/go-utils/cache"
)

const sessionKeyPrefix = "session:"

// CacheStore keeps session values in the shared cache under "session:<id>".
// The cookie carries only the signed id.
type CacheStore struct {
	cache   cache.Cache
	Codecs  []securecookie.Codec
	Options *sessions.Options
}

func NewCacheStore(kv cache.Cache, keyPairs ...[]byte) *CacheStore {
	return &CacheStore{
		cache:  kv,
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:   "/",
			MaxAge: 86400 * 31,
		},
	}
}

// Get returns the session for name, cached per request by the registry.
func (s *CacheStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session referenced by the request cookie, or returns a fresh
// one when there is no usable cookie or the cached entry has expired.
func (s *CacheStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, err
	}
	if err := s.load(session); err != nil {
		// Expired or evicted; start over under a new id.
		session.ID = ""
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

// Save writes the values to the cache and refreshes the cookie. A negative
// MaxAge deletes both.
func (s *CacheStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.cache.Delete(sessionKeyPrefix + session.ID); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	encoded, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session values: %w", err)
	}
	if err := s.cache.Set(sessionKeyPrefix+session.ID, encoded, s.ttl(session)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	cookieValue, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), cookieValue, session.Options))
	return nil
}

func (s *CacheStore) load(session *sessions.Session) error {
	raw, err := s.cache.Get(sessionKeyPrefix + session.ID)
	if err != nil {
		return err
	}

	var encoded string
	switch v := raw.(type) {
	case string:
		encoded = v
	case []byte:
		encoded = string(v)
	default:
		return errors.New("unexpected session type")
	}
	return securecookie.DecodeMulti(session.Name(), encoded, &session.Values, s.Codecs...)
}

func (s *CacheStore) ttl(session *sessions.Session) time.Duration {
	if session.Options.MaxAge == 0 {
		// Browser-session cookie; keep the server side for a day.
		return 24 * time.Hour
	}
	return time.Duration(session.Options.MaxAge) * time.Second
}

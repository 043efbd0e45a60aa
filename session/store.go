package session

import (
	"fmt"
	"net/http"
	"os"

	"member-profile/config"

	"github.com/gorilla/sessions"
	"github.com/umakantv/go-utils/cache"
)

// CookieName is the name of the cookie carrying the session token.
const CookieName = "session"

// NewStore builds the session store selected by cfg.SessionType. kv is only
// used for the cache-backed store and may be nil otherwise.
func NewStore(cfg config.Config, kv cache.Cache) (sessions.Store, error) {
	options := &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	switch cfg.SessionType {
	case config.SessionTypeFilesystem:
		if err := os.MkdirAll(cfg.SessionDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session dir: %w", err)
		}
		store := sessions.NewFilesystemStore(cfg.SessionDir, []byte(cfg.SessionSecret))
		store.Options = options
		// Values live on disk; only the id travels in the cookie.
		store.MaxLength(0)
		return store, nil
	case config.SessionTypeCache:
		if kv == nil {
			return nil, fmt.Errorf("session type %q requires a cache", cfg.SessionType)
		}
		store := NewCacheStore(kv, []byte(cfg.SessionSecret))
		store.Options = options
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session type %q", cfg.SessionType)
	}
}

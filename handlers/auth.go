package handlers

import (
	"net/http"

	"member-profile/session"

	"github.com/umakantv/go-utils/httpserver"
)

// AuthTypeSession marks routes that carry the browser session. Such routes
// always pass CheckSession; the handlers redirect anonymous visitors
// themselves.
const AuthTypeSession = "session"

// CheckSession is the server's auth callback. It never rejects a request and
// only labels the client for request logging.
func CheckSession(r *http.Request) (bool, httpserver.RequestAuth) {
	client := "anonymous"
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		client = "browser"
	}
	return true, httpserver.RequestAuth{
		Type:   AuthTypeSession,
		Client: client,
	}
}

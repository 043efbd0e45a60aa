package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"member-profile/session"
	"member-profile/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/httpserver"
)

func TestLifecycle_ConnectionReleasedOnEveryOutcome(t *testing.T) {
	tests := []struct {
		name      string
		handler   ScopedHandler
		wantView  string
		wantError string
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
				w.WriteHeader(http.StatusNoContent)
				return nil
			},
		},
		{
			name: "error",
			handler: func(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
				return errors.New("boom")
			},
			wantView:  views.Error,
			wantError: "boom",
		},
		{
			name: "panic",
			handler: func(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
				panic("kaboom")
			},
			wantView:  views.Error,
			wantError: "kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, envOptions{mirror: true})
			var during int
			handler := func(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
				during = env.db.Stats().InUse
				return tt.handler(w, r, scope)
			}

			wrapped := env.lifecycle.Wrap(handler)
			rec := httptest.NewRecorder()
			wrapped(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, 1, during, "handler runs with one dedicated connection")
			stats := env.db.Stats()
			assert.Equal(t, 0, stats.InUse)
			assert.Equal(t, 0, stats.OpenConnections, "connection is closed, not pooled")

			if tt.wantView == "" {
				assert.Equal(t, http.StatusNoContent, rec.Code)
				assert.Empty(t, env.errorLogLines(t))
				return
			}
			call := env.renderer.last(t)
			assert.Equal(t, tt.wantView, call.view)
			assert.Equal(t, tt.wantError, call.data.Error)
			assert.Equal(t, []string{"error: " + tt.wantError}, env.errorLogLines(t))
		})
	}
}

func TestLifecycle_ScopeIsPerRequest(t *testing.T) {
	env := newTestEnv(t, envOptions{mirror: true})
	var scopes []*RequestScope
	wrapped := env.lifecycle.Wrap(func(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
		scopes = append(scopes, scope)
		return nil
	})

	for i := 0; i < 2; i++ {
		wrapped(context.Background(), httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	}

	require.Len(t, scopes, 2)
	assert.NotSame(t, scopes[0], scopes[1])
	assert.NotSame(t, scopes[0].Members, scopes[1].Members)
	assert.NotSame(t, scopes[0].Session, scopes[1].Session)
}

func TestNewRouter_RouteDetailsOnContext(t *testing.T) {
	type seen struct {
		name, method, path string
		auth               *httpserver.RequestAuth
	}
	var got seen
	details := Route{Name: "Details", Method: http.MethodGet, Path: "/details", AuthType: AuthTypeSession,
		Handler: func(w http.ResponseWriter, r *http.Request, scope *RequestScope) error {
			got = seen{
				name:   httpserver.GetRouteName(scope.Ctx),
				method: httpserver.GetRouteMethod(r.Context()),
				path:   httpserver.GetRoutePath(scope.Ctx),
				auth:   httpserver.GetRequestAuth(scope.Ctx),
			}
			w.WriteHeader(http.StatusNoContent)
			return nil
		}}
	env := newTestEnv(t, envOptions{mirror: true, extra: []Route{details}})

	resp := env.get(t, "/details")

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "Details", got.name)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/details", got.path)
	require.NotNil(t, got.auth)
	assert.Equal(t, "anonymous", got.auth.Client)

	env.insert(t, bob)
	env.login(t, "B1", "bobpwd")
	env.get(t, "/details")
	require.NotNil(t, got.auth)
	assert.Equal(t, "browser", got.auth.Client)
}

func TestCheckSession(t *testing.T) {
	anonymous := httptest.NewRequest(http.MethodGet, "/", nil)
	ok, auth := CheckSession(anonymous)
	assert.True(t, ok, "anonymous visitors are redirected by handlers, not rejected")
	assert.Equal(t, AuthTypeSession, auth.Type)
	assert.Equal(t, "anonymous", auth.Client)

	withCookie := httptest.NewRequest(http.MethodGet, "/", nil)
	withCookie.AddCookie(&http.Cookie{Name: session.CookieName, Value: "token"})
	ok, auth = CheckSession(withCookie)
	assert.True(t, ok)
	assert.Equal(t, "browser", auth.Client)
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthCheck(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "member-profile"}`, rec.Body.String())
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/httpserver"
)

// Route describes one registered endpoint.
type Route struct {
	Name     string
	Method   string
	Path     string
	AuthType string
	Handler  ScopedHandler
}

// Routes is the route table for the profile pages.
func Routes(h *ProfileHandler) []Route {
	return []Route{
		{Name: "Index", Method: http.MethodGet, Path: "/", AuthType: AuthTypeSession, Handler: h.Index},
		{Name: "LoginForm", Method: http.MethodGet, Path: "/login", AuthType: AuthTypeSession, Handler: h.Login},
		{Name: "Login", Method: http.MethodPost, Path: "/login", AuthType: AuthTypeSession, Handler: h.Login},
		{Name: "EditForm", Method: http.MethodGet, Path: "/edit", AuthType: AuthTypeSession, Handler: h.Edit},
		{Name: "Edit", Method: http.MethodPost, Path: "/edit", AuthType: AuthTypeSession, Handler: h.Edit},
		{Name: "Logout", Method: http.MethodGet, Path: "/logout", AuthType: AuthTypeSession, Handler: h.Logout},
	}
}

// NewRouter mounts routes on a gorilla/mux router, each wrapped by lc. Like
// httpserver.Server it puts the route and auth details on the context.
func NewRouter(lc *Lifecycle, routes []Route) *mux.Router {
	router := mux.NewRouter()
	for _, route := range routes {
		handle := lc.Wrap(route.Handler)
		router.HandleFunc(route.Path, func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), httpserver.RouteNameKey, route.Name)
			ctx = context.WithValue(ctx, httpserver.RouteMethodKey, route.Method)
			ctx = context.WithValue(ctx, httpserver.RoutePathKey, route.Path)
			ctx = context.WithValue(ctx, httpserver.AuthTypeKey, route.AuthType)
			if route.AuthType != "none" {
				if ok, auth := CheckSession(r); ok {
					ctx = context.WithValue(ctx, httpserver.RequestAuthKey, auth)
				}
			}
			handle(ctx, w, r)
		}).Methods(route.Method).Name(route.Name)
	}
	return router
}

// HealthCheck handles GET /health
func HealthCheck(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy", "service": "member-profile"}`))
}

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"member-profile/database"
	"member-profile/session"

	"github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// RequestScope is everything a handler may touch for one request. It is built
// by the Lifecycle and is invalid once the handler returns.
type RequestScope struct {
	Ctx     context.Context
	Members *database.MemberStore
	Session *session.Binding
}

// ScopedHandler handles one request. A returned error is reported through the
// failure boundary.
type ScopedHandler func(w http.ResponseWriter, r *http.Request, scope *RequestScope) error

// Lifecycle owns the per-request database connection.
type Lifecycle struct {
	db       *sqlx.DB
	sessions sessions.Store
	mirror   bool
	failures *FailureReporter
}

func NewLifecycle(db *sqlx.DB, store sessions.Store, mirrorProfile bool, failures *FailureReporter) *Lifecycle {
	return &Lifecycle{
		db:       db,
		sessions: store,
		mirror:   mirrorProfile,
		failures: failures,
	}
}

// Wrap adapts h to the server's handler signature. A dedicated connection is
// opened before h runs and closed after it, whether h returns, fails or
// panics.
func (l *Lifecycle) Wrap(h ScopedHandler) func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(ctx)

		conn, err := l.db.Connx(ctx)
		if err != nil {
			l.failures.Report(ctx, w, fmt.Errorf("failed to open database connection: %w", err))
			return
		}
		defer func() {
			if err := conn.Close(); err != nil {
				logRequest(ctx, "error", "Failed to close database connection", zap.Error(err))
			}
		}()
		defer func() {
			if rec := recover(); rec != nil {
				l.failures.Report(ctx, w, fmt.Errorf("%v", rec))
			}
		}()

		binding, err := session.Load(r, l.sessions, l.mirror)
		if err != nil {
			l.failures.Report(ctx, w, err)
			return
		}

		scope := &RequestScope{
			Ctx:     ctx,
			Members: database.NewMemberStore(conn),
			Session: binding,
		}
		if err := h(w, r, scope); err != nil {
			l.failures.Report(ctx, w, err)
		}
	}
}

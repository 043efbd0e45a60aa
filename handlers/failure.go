package handlers

import (
	"context"
	"net/http"

	"member-profile/errorlog"
	"member-profile/views"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FailureReporter is the error boundary shared by all routes: it appends the
// failure to the error log and renders the generic failure view.
//
// In literal mode the view shows the raw error text. In opaque mode it shows
// only a reference id, which is also written to the log line.
type FailureReporter struct {
	log    *errorlog.Log
	views  views.Renderer
	opaque bool
}

func NewFailureReporter(log *errorlog.Log, renderer views.Renderer, opaque bool) *FailureReporter {
	return &FailureReporter{
		log:    log,
		views:  renderer,
		opaque: opaque,
	}
}

func (f *FailureReporter) Report(ctx context.Context, w http.ResponseWriter, err error) {
	message := err.Error()
	shown := message
	if f.opaque {
		ref := uuid.New().String()
		message += " [ref " + ref + "]"
		shown = "reference " + ref
	}

	f.log.Write(message)
	logRequest(ctx, "error", "Request failed", zap.Error(err))

	if renderErr := f.views.Render(w, http.StatusOK, views.Error, views.PageData{Error: shown}); renderErr != nil {
		logRequest(ctx, "error", "Failed to render error view", zap.Error(renderErr))
	}
}

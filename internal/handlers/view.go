package handlers

import (
	"net/http"

	"notekeeper/internal/contextutil"
)

// ViewHandler starts a view session for a freshly loaded page.
type ViewHandler struct {
	views *Views
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(views *Views) *ViewHandler {
	return &ViewHandler{views: views}
}

// ServeHTTP creates a session and returns the patches that render the sidebar and the first notebook.
func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sync, patches, err := h.views.start(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load notebooks")
		return
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "view session started", "active_notebook", sync.Active())
	writeView(ctx, w, http.StatusOK, nil, patches)
}

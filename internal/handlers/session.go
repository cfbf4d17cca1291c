package handlers

import (
	"context"
	"errors"
	"net/http"

	"notekeeper/internal/contextutil"
	"notekeeper/internal/service"
	"notekeeper/internal/viewsync"
)

// SessionCookie names the cookie that binds a page to its view session.
const SessionCookie = "notekeeper_session"

// Views binds requests to their page's view session.
type Views struct {
	sessions *viewsync.Sessions
	store    NoteStore
}

// NewViews creates a Views over the session registry.
func NewViews(sessions *viewsync.Sessions, store NoteStore) *Views {
	return &Views{sessions: sessions, store: store}
}

// start creates a fresh session for the page and loads every notebook into it.
func (v *Views) start(w http.ResponseWriter, r *http.Request) (*viewsync.Sync, []viewsync.Patch, error) {
	ctx := r.Context()

	notebooks, err := v.store.ListNotebooks(ctx)
	if err != nil {
		return nil, nil, err
	}
	id, sync := v.sessions.Create()
	patches, err := sync.Load(ctx, notebooks)
	if err != nil {
		v.sessions.Delete(id)
		return nil, nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sync, patches, nil
}

// session returns the page's view session. A missing or expired session is
// replaced by a freshly loaded one; its bootstrap patches are returned so the
// page can be redrawn before the operation's own patches are applied.
func (v *Views) session(w http.ResponseWriter, r *http.Request) (*viewsync.Sync, []viewsync.Patch, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sync, ok := v.sessions.Get(c.Value); ok {
			return sync, nil, nil
		}
	}
	return v.start(w, r)
}

// redraw reloads a session whose page no longer matches the store.
// Errors other than a missing row or notebook are returned unchanged.
func (v *Views) redraw(ctx context.Context, sync *viewsync.Sync, cause error) ([]viewsync.Patch, error) {
	if !errors.Is(cause, service.ErrNotFound) {
		return nil, cause
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "view out of date, redrawing", "cause", cause)

	notebooks, err := v.store.ListNotebooks(ctx)
	if err != nil {
		return nil, err
	}
	return sync.Load(ctx, notebooks)
}

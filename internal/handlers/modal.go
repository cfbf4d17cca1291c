package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"notekeeper/internal/contextutil"
	"notekeeper/internal/service"
	"notekeeper/internal/viewsync"
)

// ResolveModalRequest answers an open modal. Confirm false dismisses it;
// note modals are submitted with their title and text otherwise.
type ResolveModalRequest struct {
	Confirm *bool  `json:"confirm,omitempty"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

func (req ResolveModalRequest) confirmed() bool {
	return req.Confirm == nil || *req.Confirm
}

// ResolveModalResponse reports how a modal was resolved and what it changed.
type ResolveModalResponse struct {
	Kind      viewsync.ModalKind `json:"kind"`
	Confirmed bool               `json:"confirmed"`
	Result    any                `json:"result,omitempty"`
}

// ModalHandler opens and resolves modals.
type ModalHandler struct {
	store    NoteStore
	views    *Views
	validate *validator.Validate
}

// NewModalHandler creates a new ModalHandler.
func NewModalHandler(store NoteStore, views *Views, validate *validator.Validate) *ModalHandler {
	return &ModalHandler{store: store, views: views, validate: validate}
}

// OpenNote opens the new-note modal for the active notebook.
func (h *ModalHandler) OpenNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	m, more, err := sync.OpenNoteModal()
	if err != nil {
		handleViewError(ctx, w, err, "Failed to open modal", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, ModalResponse{ID: m.ID, Kind: m.Kind}, append(patches, more...))
}

// Resolve closes a modal and applies the user's answer. Each modal resolves once.
func (h *ModalHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	modalID := chi.URLParam(r, "modalID")

	var req ResolveModalRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		handleServiceError(ctx, w, err, "Invalid request body")
		return
	}

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	// A replaced session knows no modals; the error carries the redraw.
	m, err := sync.Modal(modalID)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to resolve modal", patches)
		return
	}

	confirmed := req.confirmed()
	var notebookID string
	if confirmed {
		switch m.Kind {
		case viewsync.ModalNote, viewsync.ModalEditNote:
			if err := validateRequest(h.validate, NoteRequest{Title: req.Title, Text: req.Text}); err != nil {
				handleViewError(ctx, w, err, "Invalid request body", patches)
				return
			}
		}
		notebookID = m.NotebookID
		if m.Kind == viewsync.ModalNote {
			// The note goes to the notebook that is active when the form is submitted.
			notebookID = sync.Active()
			if notebookID == "" {
				handleViewError(ctx, w, fmt.Errorf("no active notebook: %w", service.ErrInvalidInput), "Failed to resolve modal", patches)
				return
			}
		}
	}

	m, closed, err := sync.ResolveModal(modalID)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to resolve modal", patches)
		return
	}
	patches = append(patches, closed...)
	resp := ResolveModalResponse{Kind: m.Kind, Confirmed: confirmed}
	logger.DebugContext(ctx, "modal resolved", "modal_id", modalID, "kind", m.Kind, "confirmed", confirmed)

	if !confirmed {
		writeView(ctx, w, http.StatusOK, resp, patches)
		return
	}

	in := service.NoteInput{Title: req.Title, Text: req.Text}
	var more []viewsync.Patch
	switch m.Kind {
	case viewsync.ModalNote:
		var note service.Note
		note, err = h.store.CreateNote(ctx, notebookID, in)
		if err == nil {
			resp.Result = note
			more, err = sync.NoteCreated(note)
		}
	case viewsync.ModalEditNote:
		var note service.Note
		note, err = h.store.UpdateNote(ctx, notebookID, m.NoteID, in)
		if err == nil {
			resp.Result = note
			more, err = sync.NoteUpdated(note)
		}
	case viewsync.ModalDeleteNotebook:
		var deleted DeleteNotebookResponse
		more, deleted, err = deleteNotebook(ctx, h.store, h.views, sync, notebookID)
		if err == nil {
			resp.Result = deleted
		}
	}
	if err != nil {
		handleViewError(ctx, w, err, "Failed to resolve modal", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, resp, append(patches, more...))
}

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"notekeeper/internal/contextutil"
	"notekeeper/internal/service"
	"notekeeper/internal/viewsync"
)

// NotebookRequest is the body of a notebook create request.
// An empty name is stored as "Untitled".
type NotebookRequest struct {
	Name string `json:"name" validate:"max=256"`
}

// RenameNotebookRequest is the body of a notebook rename request.
type RenameNotebookRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// DeleteNotebookResponse describes a deleted notebook.
type DeleteNotebookResponse struct {
	Index    int              `json:"index"`
	Notebook service.Notebook `json:"notebook"`
}

// ModalResponse identifies an opened modal.
type ModalResponse struct {
	ID   string             `json:"id"`
	Kind viewsync.ModalKind `json:"kind"`
}

// NotebookHandler handles notebook routes.
type NotebookHandler struct {
	store    NoteStore
	views    *Views
	validate *validator.Validate
}

// NewNotebookHandler creates a new NotebookHandler.
func NewNotebookHandler(store NoteStore, views *Views, validate *validator.Validate) *NotebookHandler {
	return &NotebookHandler{store: store, views: views, validate: validate}
}

// List returns every notebook in creation order.
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notebooks, err := h.store.ListNotebooks(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list notebooks")
		return
	}
	writeJSON(ctx, w, http.StatusOK, notebooks)
}

// Create adds a notebook and makes it the active one.
func (h *NotebookHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req NotebookRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		logger.WarnContext(ctx, "invalid notebook request", "error", err)
		handleServiceError(ctx, w, err, "Invalid request body")
		return
	}

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	nb, err := h.store.CreateNotebook(ctx, req.Name)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to create notebook", patches)
		return
	}

	more, err := sync.NotebookCreated(nb)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to render notebook", patches)
		return
	}
	writeView(ctx, w, http.StatusCreated, nb, append(patches, more...))
}

// Rename changes a notebook's name.
func (h *NotebookHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req RenameNotebookRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		handleServiceError(ctx, w, err, "Invalid request body")
		return
	}

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	nb, err := h.store.RenameNotebook(ctx, id, req.Name)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to rename notebook", patches)
		return
	}

	more, err := sync.NotebookUpdated(id, nb)
	if err != nil {
		more, err = h.views.redraw(ctx, sync, err)
	}
	if err != nil {
		handleViewError(ctx, w, err, "Failed to render notebook", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, nb, append(patches, more...))
}

// Delete removes a notebook with all of its notes.
func (h *NotebookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	more, resp, err := deleteNotebook(ctx, h.store, h.views, sync, id)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to delete notebook", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, resp, append(patches, more...))
}

// Select makes a notebook active and shows its notes.
func (h *NotebookHandler) Select(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	more, err := sync.Select(ctx, id)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to select notebook", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, nil, append(patches, more...))
}

// ConfirmDelete opens the modal that asks before deleting a notebook.
func (h *NotebookHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	m, more, err := sync.OpenDeleteModal(id)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to open modal", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, ModalResponse{ID: m.ID, Kind: m.Kind}, append(patches, more...))
}

func deleteNotebook(ctx context.Context, store NoteStore, views *Views, sync *viewsync.Sync, id string) ([]viewsync.Patch, DeleteNotebookResponse, error) {
	index, removed, err := store.DeleteNotebook(ctx, id)
	if err != nil {
		return nil, DeleteNotebookResponse{}, err
	}
	resp := DeleteNotebookResponse{Index: index, Notebook: removed}

	patches, err := sync.NotebookDeleted(ctx, id)
	if err != nil {
		patches, err = views.redraw(ctx, sync, err)
	}
	if err != nil {
		return nil, DeleteNotebookResponse{}, err
	}
	return patches, resp, nil
}

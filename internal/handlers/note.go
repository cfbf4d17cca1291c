package handlers

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"notekeeper/internal/service"
)

// NoteRequest is the body of note create and update requests.
// A note needs a title or a text.
type NoteRequest struct {
	Title string `json:"title" validate:"required_without=Text,max=1024"`
	Text  string `json:"text" validate:"max=65536"`
}

func (req NoteRequest) input() service.NoteInput {
	return service.NoteInput{Title: req.Title, Text: req.Text}
}

// NoteHandler handles the note routes of a notebook.
type NoteHandler struct {
	store    NoteStore
	views    *Views
	validate *validator.Validate
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(store NoteStore, views *Views, validate *validator.Validate) *NoteHandler {
	return &NoteHandler{store: store, views: views, validate: validate}
}

// List returns a notebook's notes, most recent first.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notes, err := h.store.ListNotes(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list notes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, notes)
}

// Create adds a note to a notebook.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notebookID := chi.URLParam(r, "id")

	var req NoteRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		handleServiceError(ctx, w, err, "Invalid request body")
		return
	}

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	note, err := h.store.CreateNote(ctx, notebookID, req.input())
	if err != nil {
		handleViewError(ctx, w, err, "Failed to create note", patches)
		return
	}

	more, err := sync.NoteCreated(note)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to render note", patches)
		return
	}
	writeView(ctx, w, http.StatusCreated, note, append(patches, more...))
}

// Update replaces the title and text of a note.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req NoteRequest
	if err := decodeRequest(r, h.validate, &req); err != nil {
		handleServiceError(ctx, w, err, "Invalid request body")
		return
	}

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	note, err := h.store.UpdateNote(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "noteID"), req.input())
	if err != nil {
		handleViewError(ctx, w, err, "Failed to update note", patches)
		return
	}

	more, err := sync.NoteUpdated(note)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to render note", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, note, append(patches, more...))
}

// Delete removes a note.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	note, err := h.store.DeleteNote(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "noteID"))
	if err != nil {
		handleViewError(ctx, w, err, "Failed to delete note", patches)
		return
	}

	more, err := sync.NoteDeleted(note.ID)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to render notes", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, note, append(patches, more...))
}

// Edit opens the detail modal of a note.
func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notebookID := chi.URLParam(r, "id")
	noteID := chi.URLParam(r, "noteID")

	sync, patches, err := h.views.session(w, r)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load view")
		return
	}

	nb, err := h.store.GetNotebook(ctx, notebookID)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to load note", patches)
		return
	}
	i := slices.IndexFunc(nb.Notes, func(n service.Note) bool { return n.ID == noteID })
	if i < 0 {
		handleViewError(ctx, w, &service.NotFoundError{Kind: "note", ID: noteID}, "Failed to load note", patches)
		return
	}
	note := nb.Notes[i]

	m, more, err := sync.OpenEditNoteModal(note)
	if err != nil {
		handleViewError(ctx, w, err, "Failed to open modal", patches)
		return
	}
	writeView(ctx, w, http.StatusOK, ModalResponse{ID: m.ID, Kind: m.Kind}, append(patches, more...))
}

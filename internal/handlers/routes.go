package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"notekeeper/internal/service"
	"notekeeper/internal/viewsync"
)

// API holds the handlers mounted under /api.
type API struct {
	health    *HealthHandler
	view      *ViewHandler
	notebooks *NotebookHandler
	notes     *NoteHandler
	modals    *ModalHandler
	theme     *ThemeHandler
}

// NewAPI wires the API handlers. A nil themes leaves the theme routes out;
// a nil validate means NewValidator().
func NewAPI(store NoteStore, themes *service.Themes, sessions *viewsync.Sessions, slots Pinger, validate *validator.Validate) *API {
	if validate == nil {
		validate = NewValidator()
	}
	views := NewViews(sessions, store)

	a := &API{
		health:    NewHealthHandler(slots),
		view:      NewViewHandler(views),
		notebooks: NewNotebookHandler(store, views, validate),
		notes:     NewNoteHandler(store, views, validate),
		modals:    NewModalHandler(store, views, validate),
	}
	if themes != nil {
		a.theme = NewThemeHandler(themes)
	}
	return a
}

// Routes registers the API routes on r.
func (a *API) Routes(r chi.Router) {
	r.Method(http.MethodGet, "/health", a.health)
	r.Method(http.MethodGet, "/view", a.view)

	r.Route("/notebooks", func(r chi.Router) {
		r.Get("/", a.notebooks.List)
		r.Post("/", a.notebooks.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", a.notebooks.Rename)
			r.Delete("/", a.notebooks.Delete)
			r.Post("/select", a.notebooks.Select)
			r.Post("/delete-confirm", a.notebooks.ConfirmDelete)

			r.Get("/notes", a.notes.List)
			r.Post("/notes", a.notes.Create)
			r.Put("/notes/{noteID}", a.notes.Update)
			r.Delete("/notes/{noteID}", a.notes.Delete)
			r.Post("/notes/{noteID}/edit", a.notes.Edit)
		})
	})

	r.Post("/modals/note", a.modals.OpenNote)
	r.Post("/modals/{modalID}", a.modals.Resolve)

	if a.theme != nil {
		r.Get("/theme", a.theme.Current)
		r.Post("/theme/toggle", a.theme.Toggle)
	}
}

package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"notekeeper/internal/handlers"
	"notekeeper/internal/service"
	"notekeeper/internal/viewsync"
)

const healthPath = "/api/health"

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Store     handlers.NoteStore
	Themes    *service.Themes
	Sessions  *viewsync.Sessions
	Slots     handlers.Pinger
	Validator *validator.Validate // nil means handlers.NewValidator()
	IndexHTML string              // Embedded HTML content
	Static    fs.FS               // Served under /static/; may be nil
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	api := handlers.NewAPI(deps.Store, deps.Themes, deps.Sessions, deps.Slots, deps.Validator)

	// Register API routes
	r.Route("/api", api.Routes)

	if deps.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(deps.Static))))
	}

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}

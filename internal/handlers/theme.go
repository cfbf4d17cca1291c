package handlers

import (
	"net/http"
	"strings"

	"notekeeper/internal/service"
	"notekeeper/internal/viewsync"
)

// ThemeResponse reports the page theme.
type ThemeResponse struct {
	Theme service.Theme `json:"theme"`
}

// ThemeHandler serves the theme preference.
type ThemeHandler struct {
	themes *service.Themes
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(themes *service.Themes) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

// Current returns the stored theme, falling back to the client's color scheme.
func (h *ThemeHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	theme, err := h.themes.Current(ctx, prefersDark(r))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to read theme")
		return
	}
	writeView(ctx, w, http.StatusOK, ThemeResponse{Theme: theme}, []viewsync.Patch{viewsync.ThemePatch(string(theme))})
}

// Toggle flips between light and dark and stores the result.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	theme, err := h.themes.Toggle(ctx, prefersDark(r))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to toggle theme")
		return
	}
	writeView(ctx, w, http.StatusOK, ThemeResponse{Theme: theme}, []viewsync.Patch{viewsync.ThemePatch(string(theme))})
}

// prefersDark reads the client's color scheme from ?prefers=dark or the
// Sec-CH-Prefers-Color-Scheme client hint.
func prefersDark(r *http.Request) bool {
	if v := r.URL.Query().Get("prefers"); v != "" {
		return strings.EqualFold(v, "dark")
	}
	hint := strings.Trim(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), `"`)
	return strings.EqualFold(hint, "dark")
}

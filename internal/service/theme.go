package service

import "context"

// ThemeKey is the slot holding the theme preference. It is independent of the document.
const ThemeKey = "theme"

// Theme is the color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Themes reads and toggles the stored theme preference.
type Themes struct {
	slots Slots
}

// NewThemes creates a new Themes.
func NewThemes(slots Slots) *Themes {
	return &Themes{slots: slots}
}

// Current returns the stored theme, or the client's system preference when none is stored.
func (t *Themes) Current(ctx context.Context, prefersDark bool) (Theme, error) {
	raw, found, err := t.slots.Get(ctx, ThemeKey)
	if err != nil {
		return "", storageError("read theme", err)
	}
	if found {
		switch Theme(raw) {
		case ThemeLight, ThemeDark:
			return Theme(raw), nil
		}
	}
	if prefersDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

// Toggle flips the current theme and stores the result.
func (t *Themes) Toggle(ctx context.Context, prefersDark bool) (Theme, error) {
	current, err := t.Current(ctx, prefersDark)
	if err != nil {
		return "", err
	}
	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	if err := t.slots.Set(ctx, ThemeKey, string(next)); err != nil {
		return "", storageError("write theme", err)
	}
	return next, nil
}

package viewsync

import "strings"

// Op is a DOM mutation understood by the browser script.
type Op string

const (
	OpAppend      Op = "append"      // append HTML as the last child of target
	OpReplace     Op = "replace"     // replace target with HTML
	OpRemove      Op = "remove"      // remove target
	OpSetHTML     Op = "html"        // set innerHTML of target
	OpSetText     Op = "text"        // set textContent of target
	OpAddClass    Op = "addClass"    // add class Name to target
	OpRemoveClass Op = "removeClass" // remove class Name from target
	OpSetAttr     Op = "setAttr"     // set attribute Name to Value on every match
	OpRemoveAttr  Op = "removeAttr"  // remove attribute Name from every match
)

// Patch is one DOM mutation. Target is a CSS selector.
type Patch struct {
	Op     Op     `json:"op"`
	Target string `json:"target"`
	HTML   string `json:"html,omitempty"`
	Text   string `json:"text,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Page regions, matched by data attributes in the page shell.
const (
	SelectorSidebarList = "[data-sidebar-list]"
	SelectorPanelTitle  = "[data-note-panel-title]"
	SelectorNotePanel   = "[data-note-panel]"
	SelectorCreateNote  = "[data-note-create-btn]"
	SelectorBody        = "body"
	SelectorRoot        = "html"

	activeClass  = "active"
	disabledAttr = "disabled"
)

// RowSelector returns the selector of the sidebar row for a notebook.
func RowSelector(notebookID string) string {
	return `[data-notebook="` + cssString(notebookID) + `"]`
}

// CardSelector returns the selector of the card for a note.
func CardSelector(noteID string) string {
	return `[data-note="` + cssString(noteID) + `"]`
}

// ModalSelector returns the selector of an open modal.
func ModalSelector(modalID string) string {
	return `[data-modal="` + cssString(modalID) + `"]`
}

// ModalOverlaySelector returns the selector of an open modal's overlay.
func ModalOverlaySelector(modalID string) string {
	return `[data-modal-overlay="` + cssString(modalID) + `"]`
}

// ThemePatch switches the page theme.
func ThemePatch(theme string) Patch {
	return Patch{Op: OpSetAttr, Target: SelectorRoot, Name: "data-theme", Value: theme}
}

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

func cssString(s string) string {
	return cssEscaper.Replace(s)
}

package viewsync

import (
	"errors"

	"github.com/google/uuid"
)

// ErrModalResolved is returned when a modal is resolved after it was already
// resolved or dismissed, or was never opened in this session.
var ErrModalResolved = errors.New("modal already resolved")

// ModalKind identifies what a modal collects.
type ModalKind string

const (
	// ModalNote collects the title and text of a new note for the active notebook.
	ModalNote ModalKind = "note"
	// ModalEditNote shows an existing note and collects its new title and text.
	ModalEditNote ModalKind = "edit-note"
	// ModalDeleteNotebook asks for confirmation before deleting a notebook.
	ModalDeleteNotebook ModalKind = "delete-notebook"
)

// Modal is an open dialog awaiting exactly one resolution.
type Modal struct {
	ID         string
	Kind       ModalKind
	NotebookID string
	NoteID     string
	Title      string
	Text       string
	PostedOn   int64
}

// modals tracks open modals. Each id resolves at most once.
type modals struct {
	open  map[string]Modal
	newID func() string
}

func newModals() *modals {
	return &modals{
		open:  make(map[string]Modal),
		newID: uuid.NewString,
	}
}

func (m *modals) add(modal Modal) Modal {
	modal.ID = m.newID()
	m.open[modal.ID] = modal
	return modal
}

func (m *modals) take(id string) (Modal, error) {
	modal, ok := m.open[id]
	if !ok {
		return Modal{}, ErrModalResolved
	}
	delete(m.open, id)
	return modal, nil
}

func (m *modals) reset() {
	m.open = make(map[string]Modal)
}

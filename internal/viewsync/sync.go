package viewsync

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_lister.go -package=mocks notekeeper/internal/viewsync NoteLister

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"notekeeper/internal/service"
)

// NoteLister loads the notes of a notebook when a row is selected.
type NoteLister interface {
	ListNotes(ctx context.Context, notebookID string) ([]service.Note, error)
}

// PanelMode is what the note panel currently shows.
type PanelMode int

const (
	// PanelCleared is an empty panel, shown when no notebook exists.
	PanelCleared PanelMode = iota
	// PanelEmpty is the "No notes" placeholder.
	PanelEmpty
	// PanelCards is a list of note cards.
	PanelCards
)

func (m PanelMode) String() string {
	switch m {
	case PanelEmpty:
		return "empty"
	case PanelCards:
		return "cards"
	default:
		return "cleared"
	}
}

// Row is a notebook as shown in the sidebar.
type Row struct {
	ID   string
	Name string
}

// State is a snapshot of what the page shows.
type State struct {
	Rows          []Row
	Active        string
	Title         string
	Panel         PanelMode
	Cards         []string
	CanCreateNote bool
}

// Sync keeps one page in step with the Store. Every method returns the patches
// that bring the page from its previous state to the new one.
//
// The active notebook is held as an id; its row is always looked up by selector.
type Sync struct {
	mu     sync.Mutex
	notes  NoteLister
	render *Renderer
	state  State
	modals *modals
}

// New creates a Sync for a page that has not loaded anything yet.
func New(notes NoteLister, render *Renderer) *Sync {
	return &Sync{
		notes:  notes,
		render: render,
		modals: newModals(),
	}
}

// State returns a copy of the current page state.
func (s *Sync) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Rows = slices.Clone(s.state.Rows)
	st.Cards = slices.Clone(s.state.Cards)
	return st
}

// Active returns the id of the active notebook, or "" when none is active.
func (s *Sync) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Active
}

func (s *Sync) rowIndex(id string) int {
	return slices.IndexFunc(s.state.Rows, func(r Row) bool { return r.ID == id })
}

// activate moves the active marker to the row of id.
func (s *Sync) activate(id string) []Patch {
	var patches []Patch
	if prev := s.state.Active; prev != "" && s.rowIndex(prev) >= 0 {
		patches = append(patches, Patch{Op: OpRemoveClass, Target: RowSelector(prev), Name: activeClass})
	}
	s.state.Active = id
	return append(patches, Patch{Op: OpAddClass, Target: RowSelector(id), Name: activeClass})
}

// gateCreateNote enables the create-note buttons iff at least one notebook exists.
func (s *Sync) gateCreateNote() Patch {
	s.state.CanCreateNote = len(s.state.Rows) > 0
	if s.state.CanCreateNote {
		return Patch{Op: OpRemoveAttr, Target: SelectorCreateNote, Name: disabledAttr}
	}
	return Patch{Op: OpSetAttr, Target: SelectorCreateNote, Name: disabledAttr, Value: ""}
}

func (s *Sync) setTitle(title string) Patch {
	s.state.Title = title
	return Patch{Op: OpSetText, Target: SelectorPanelTitle, Text: title}
}

func (s *Sync) showEmpty() (Patch, error) {
	html, err := s.render.Empty()
	if err != nil {
		return Patch{}, err
	}
	s.state.Panel = PanelEmpty
	s.state.Cards = nil
	return Patch{Op: OpSetHTML, Target: SelectorNotePanel, HTML: html}, nil
}

func (s *Sync) clearPanel(mode PanelMode) Patch {
	s.state.Panel = mode
	s.state.Cards = nil
	return Patch{Op: OpSetHTML, Target: SelectorNotePanel, HTML: ""}
}

func (s *Sync) appendCard(note service.Note) (Patch, error) {
	html, err := s.render.Card(note)
	if err != nil {
		return Patch{}, err
	}
	s.state.Panel = PanelCards
	s.state.Cards = append(s.state.Cards, note.ID)
	return Patch{Op: OpAppend, Target: SelectorNotePanel, HTML: html}, nil
}

// Load renders a fresh page: all notebooks, then the notes of the first one.
// On failure the session keeps its previous state.
func (s *Sync) Load(ctx context.Context, notebooks []service.Notebook) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	patches, err := s.load(ctx, notebooks)
	if err != nil {
		s.state = prev
		return nil, err
	}
	s.modals.reset()
	return patches, nil
}

func (s *Sync) load(ctx context.Context, notebooks []service.Notebook) ([]Patch, error) {
	s.state = State{}
	patches := []Patch{{Op: OpSetHTML, Target: SelectorSidebarList, HTML: ""}}

	read, err := s.notebooksRead(notebooks)
	if err != nil {
		return nil, err
	}
	patches = append(patches, read...)

	if s.state.Active == "" {
		return patches, nil
	}
	notes, err := s.notes.ListNotes(ctx, s.state.Active)
	if err != nil {
		return nil, err
	}
	more, err := s.notesRead(notes)
	if err != nil {
		return nil, err
	}
	return append(patches, more...), nil
}

// NotebookCreated adds the row of a new notebook, makes it active and shows an empty note panel.
func (s *Sync) NotebookCreated(nb service.Notebook) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.render.Row(nb.ID, nb.Name)
	if err != nil {
		return nil, err
	}
	s.state.Rows = append(s.state.Rows, Row{ID: nb.ID, Name: nb.Name})

	patches := []Patch{{Op: OpAppend, Target: SelectorSidebarList, HTML: row}}
	patches = append(patches, s.activate(nb.ID)...)
	patches = append(patches, s.setTitle(nb.Name))
	empty, err := s.showEmpty()
	if err != nil {
		return nil, err
	}
	patches = append(patches, empty, s.gateCreateNote())
	return patches, nil
}

// NotebooksRead adds a row per notebook and activates the first one.
func (s *Sync) NotebooksRead(notebooks []service.Notebook) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notebooksRead(notebooks)
}

func (s *Sync) notebooksRead(notebooks []service.Notebook) ([]Patch, error) {
	for _, nb := range notebooks {
		s.state.Rows = append(s.state.Rows, Row{ID: nb.ID, Name: nb.Name})
	}
	patches := []Patch{s.gateCreateNote()}

	for i, nb := range notebooks {
		row, err := s.render.Row(nb.ID, nb.Name)
		if err != nil {
			return nil, err
		}
		patches = append(patches, Patch{Op: OpAppend, Target: SelectorSidebarList, HTML: row})
		if i == 0 {
			patches = append(patches, s.activate(nb.ID)...)
			patches = append(patches, s.setTitle(nb.Name))
		}
	}
	return patches, nil
}

// NotebookUpdated replaces the row of a renamed notebook and re-activates it.
func (s *Sync) NotebookUpdated(id string, nb service.Notebook) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.rowIndex(id)
	if i < 0 {
		return nil, &service.NotFoundError{Kind: "notebook row", ID: id}
	}
	row, err := s.render.Row(nb.ID, nb.Name)
	if err != nil {
		return nil, err
	}
	s.state.Rows[i] = Row{ID: nb.ID, Name: nb.Name}

	patches := []Patch{
		s.setTitle(nb.Name),
		{Op: OpReplace, Target: RowSelector(id), HTML: row},
	}
	return append(patches, s.activate(nb.ID)...), nil
}

// NotebookDeleted removes the row of a deleted notebook. The next row, else the
// previous one, is selected in its place; with no rows left the panel is cleared
// and note creation is disabled.
func (s *Sync) NotebookDeleted(ctx context.Context, id string) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.rowIndex(id)
	if i < 0 {
		return nil, &service.NotFoundError{Kind: "notebook row", ID: id}
	}

	var patches []Patch
	sibling := ""
	if i+1 < len(s.state.Rows) {
		sibling = s.state.Rows[i+1].ID
	} else if i > 0 {
		sibling = s.state.Rows[i-1].ID
	}

	if sibling != "" {
		selected, err := s.selectRow(ctx, sibling)
		if err != nil {
			return nil, err
		}
		patches = append(patches, selected...)
	}

	s.state.Rows = slices.Delete(s.state.Rows, i, i+1)
	if s.state.Active == id {
		s.state.Active = ""
	}

	if sibling == "" {
		patches = append(patches, s.setTitle(""), s.clearPanel(PanelCleared), s.gateCreateNote())
	}
	return append(patches, Patch{Op: OpRemove, Target: RowSelector(id)}), nil
}

// Select handles a click on a notebook row: it becomes active and its notes are shown.
func (s *Sync) Select(ctx context.Context, id string) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectRow(ctx, id)
}

func (s *Sync) selectRow(ctx context.Context, id string) ([]Patch, error) {
	i := s.rowIndex(id)
	if i < 0 {
		return nil, &service.NotFoundError{Kind: "notebook row", ID: id}
	}

	notes, err := s.notes.ListNotes(ctx, id)
	if err != nil {
		return nil, err
	}

	patches := []Patch{s.setTitle(s.state.Rows[i].Name)}
	patches = append(patches, s.activate(id)...)
	read, err := s.notesRead(notes)
	if err != nil {
		return nil, err
	}
	return append(patches, read...), nil
}

// NoteCreated appends the card of a new note in the active notebook.
// Notes created in other notebooks do not change the page.
func (s *Sync) NoteCreated(note service.Note) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.NotebookID != s.state.Active {
		return nil, nil
	}

	var patches []Patch
	if len(s.state.Cards) == 0 {
		patches = append(patches, s.clearPanel(PanelCards))
	}
	card, err := s.appendCard(note)
	if err != nil {
		return nil, err
	}
	return append(patches, card), nil
}

// NotesRead shows a notebook's notes, or the placeholder when it has none.
func (s *Sync) NotesRead(notes []service.Note) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notesRead(notes)
}

func (s *Sync) notesRead(notes []service.Note) ([]Patch, error) {
	if len(notes) == 0 {
		empty, err := s.showEmpty()
		if err != nil {
			return nil, err
		}
		return []Patch{empty}, nil
	}

	patches := []Patch{s.clearPanel(PanelCards)}
	for _, note := range notes {
		card, err := s.appendCard(note)
		if err != nil {
			return nil, err
		}
		patches = append(patches, card)
	}
	return patches, nil
}

// NoteUpdated replaces the card of an edited note if it is shown.
func (s *Sync) NoteUpdated(note service.Note) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.state.Cards, note.ID) {
		return nil, nil
	}
	card, err := s.render.Card(note)
	if err != nil {
		return nil, err
	}
	return []Patch{{Op: OpReplace, Target: CardSelector(note.ID), HTML: card}}, nil
}

// NoteDeleted removes the card of a deleted note, showing the placeholder when none remain.
func (s *Sync) NoteDeleted(noteID string) ([]Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.state.Cards, noteID)
	if i < 0 {
		return nil, nil
	}
	s.state.Cards = slices.Delete(s.state.Cards, i, i+1)
	patches := []Patch{{Op: OpRemove, Target: CardSelector(noteID)}}
	if len(s.state.Cards) == 0 {
		empty, err := s.showEmpty()
		if err != nil {
			return nil, err
		}
		patches = append(patches, empty)
	}
	return patches, nil
}

// OpenNoteModal opens the dialog for a new note. It fails when note creation is disabled.
func (s *Sync) OpenNoteModal() (Modal, []Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanCreateNote || s.state.Active == "" {
		return Modal{}, nil, fmt.Errorf("no active notebook: %w", service.ErrInvalidInput)
	}
	return s.openModal(Modal{Kind: ModalNote})
}

// OpenEditNoteModal opens the detail dialog of an existing note.
func (s *Sync) OpenEditNoteModal(note service.Note) (Modal, []Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.openModal(Modal{
		Kind:       ModalEditNote,
		NotebookID: note.NotebookID,
		NoteID:     note.ID,
		Title:      note.Title,
		Text:       note.Text,
		PostedOn:   note.PostedOn,
	})
}

// OpenDeleteModal asks for confirmation before deleting a notebook shown in the sidebar.
func (s *Sync) OpenDeleteModal(notebookID string) (Modal, []Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.rowIndex(notebookID)
	if i < 0 {
		return Modal{}, nil, &service.NotFoundError{Kind: "notebook row", ID: notebookID}
	}
	return s.openModal(Modal{
		Kind:       ModalDeleteNotebook,
		NotebookID: notebookID,
		Title:      s.state.Rows[i].Name,
	})
}

func (s *Sync) openModal(m Modal) (Modal, []Patch, error) {
	m = s.modals.add(m)
	html, err := s.render.Modal(m)
	if err != nil {
		_, _ = s.modals.take(m.ID)
		return Modal{}, nil, err
	}
	return m, []Patch{{Op: OpAppend, Target: SelectorBody, HTML: html}}, nil
}

// Modal returns an open modal without resolving it.
func (s *Sync) Modal(id string) (Modal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.modals.open[id]
	if !ok {
		return Modal{}, ErrModalResolved
	}
	return m, nil
}

// ResolveModal closes an open modal and returns it so the caller can act on the
// user's answer. A modal resolves exactly once; later calls return ErrModalResolved.
func (s *Sync) ResolveModal(id string) (Modal, []Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.modals.take(id)
	if err != nil {
		return Modal{}, nil, err
	}
	return m, []Patch{
		{Op: OpRemove, Target: ModalSelector(id)},
		{Op: OpRemove, Target: ModalOverlaySelector(id)},
	}, nil
}

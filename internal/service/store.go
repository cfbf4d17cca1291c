package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_slots.go -package=mocks notekeeper/internal/service Slots

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"notekeeper/internal/contextutil"
)

const (
	// DocumentKey is the slot that holds the serialized Document.
	DocumentKey = "notekeeperDB"
	// DefaultNotebookName is used when a notebook is created without a name.
	DefaultNotebookName = "Untitled"

	corruptSuffix = ".corrupt"
)

// Slots is a durable key-value store of string values.
// This interface is defined from the service layer's perspective (consumer-first).
type Slots interface {
	// Get returns the value under key; found is false if the key was never written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set replaces the value under key.
	Set(ctx context.Context, key, value string) error
}

// NoteInput carries the user-editable fields of a note.
type NoteInput struct {
	Title string
	Text  string
}

// Store is the only authority for persisted notebooks and notes.
//
// Every operation reloads the full document from its slot, mutates it in memory
// and writes the whole document back. Within a process operations are serialized;
// across processes sharing a slot store the last writer wins.
type Store struct {
	mu     sync.Mutex
	slots  Slots
	key    string
	newID  IDGenerator
	now    func() time.Time
	logger *slog.Logger
	doc    Document
}

// Option configures a Store.
type Option func(*Store)

// WithDocumentKey overrides the slot key holding the document.
func WithDocumentKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the time source used for PostedOn.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore loads the document from slots, creating and persisting an empty one if the
// slot is absent. A corrupt slot is copied to "<key>.corrupt" and replaced by an empty document.
func NewStore(ctx context.Context, slots Slots, opts ...Option) (*Store, error) {
	s := &Store{
		slots:  slots,
		key:    DocumentKey,
		newID:  NewUUIDGenerator(),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	logger := contextutil.LoggerOr(ctx, s.logger)

	raw, found, err := s.slots.Get(ctx, s.key)
	if err != nil {
		return storageError("load document", err)
	}

	if found {
		doc, err := DecodeDocument([]byte(raw))
		if err == nil {
			s.doc = doc
			logger.DebugContext(ctx, "document loaded", "key", s.key, "notebooks", len(doc.Notebooks))
			return nil
		}

		backupKey := s.key + corruptSuffix
		logger.ErrorContext(ctx, "stored document is corrupt, starting with an empty document",
			"key", s.key, "backup_key", backupKey, "error", &SerializationError{Key: s.key, Err: err})
		if err := s.slots.Set(ctx, backupKey, raw); err != nil {
			return storageError("back up corrupt document", err)
		}
	}

	s.doc = Document{Notebooks: []Notebook{}}
	if err := s.flush(ctx); err != nil {
		return WrapError(err, "initialize document")
	}
	logger.InfoContext(ctx, "initialized empty document", "key", s.key)
	return nil
}

// reload replaces the in-memory document with the latest slot content.
func (s *Store) reload(ctx context.Context) error {
	raw, found, err := s.slots.Get(ctx, s.key)
	if err != nil {
		return storageError("read document", err)
	}
	if !found {
		s.doc = Document{Notebooks: []Notebook{}}
		return nil
	}
	doc, err := DecodeDocument([]byte(raw))
	if err != nil {
		return &SerializationError{Key: s.key, Err: err}
	}
	s.doc = doc
	return nil
}

// flush writes the in-memory document to its slot.
func (s *Store) flush(ctx context.Context) error {
	data, err := EncodeDocument(s.doc)
	if err != nil {
		return &SerializationError{Key: s.key, Err: err}
	}
	if err := s.slots.Set(ctx, s.key, string(data)); err != nil {
		return storageError("write document", err)
	}
	return nil
}

// read reloads the document and hands it to fn without persisting.
func (s *Store) read(ctx context.Context, op string, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		contextutil.LoggerOr(ctx, s.logger).ErrorContext(ctx, "failed to reload document", "op", op, "error", err)
		return WrapError(err, op)
	}
	return fn(&s.doc)
}

// update reloads the document, applies fn and persists the result.
// Nothing is written when fn fails.
func (s *Store) update(ctx context.Context, op string, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := contextutil.LoggerOr(ctx, s.logger)
	if err := s.reload(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to reload document", "op", op, "error", err)
		return WrapError(err, op)
	}
	if err := fn(&s.doc); err != nil {
		return err
	}
	if err := s.flush(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to persist document", "op", op, "error", err)
		return WrapError(err, op)
	}
	return nil
}

func notebookIndex(doc *Document, id string) int {
	for i := range doc.Notebooks {
		if doc.Notebooks[i].ID == id {
			return i
		}
	}
	return -1
}

func findNotebook(doc *Document, id string) (*Notebook, error) {
	i := notebookIndex(doc, id)
	if i < 0 {
		return nil, &NotFoundError{Kind: "notebook", ID: id}
	}
	return &doc.Notebooks[i], nil
}

func noteIndex(nb *Notebook, id string) int {
	for i := range nb.Notes {
		if nb.Notes[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateNotebook appends a new empty notebook. An empty name becomes "Untitled".
func (s *Store) CreateNotebook(ctx context.Context, name string) (Notebook, error) {
	var created Notebook
	err := s.update(ctx, "create notebook", func(doc *Document) error {
		if name == "" {
			name = DefaultNotebookName
		}
		created = Notebook{ID: s.newID(), Name: name, Notes: []Note{}}
		doc.Notebooks = append(doc.Notebooks, created)
		return nil
	})
	if err != nil {
		return Notebook{}, err
	}
	contextutil.LoggerOr(ctx, s.logger).InfoContext(ctx, "notebook created", "notebook_id", created.ID)
	return created.Clone(), nil
}

// ListNotebooks returns every notebook in creation order.
func (s *Store) ListNotebooks(ctx context.Context) ([]Notebook, error) {
	var list []Notebook
	err := s.read(ctx, "list notebooks", func(doc *Document) error {
		list = doc.Clone().Notebooks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetNotebook returns a single notebook.
func (s *Store) GetNotebook(ctx context.Context, id string) (Notebook, error) {
	var found Notebook
	err := s.read(ctx, "get notebook", func(doc *Document) error {
		nb, err := findNotebook(doc, id)
		if err != nil {
			return err
		}
		found = nb.Clone()
		return nil
	})
	return found, err
}

// RenameNotebook sets the name of an existing notebook.
func (s *Store) RenameNotebook(ctx context.Context, id, name string) (Notebook, error) {
	var renamed Notebook
	err := s.update(ctx, "rename notebook", func(doc *Document) error {
		nb, err := findNotebook(doc, id)
		if err != nil {
			return err
		}
		nb.Name = name
		renamed = nb.Clone()
		return nil
	})
	if err != nil {
		return Notebook{}, err
	}
	return renamed, nil
}

// DeleteNotebook removes a notebook and, by containment, all of its notes.
// It returns the index the notebook occupied.
func (s *Store) DeleteNotebook(ctx context.Context, id string) (int, Notebook, error) {
	var (
		index   int
		removed Notebook
	)
	err := s.update(ctx, "delete notebook", func(doc *Document) error {
		index = notebookIndex(doc, id)
		if index < 0 {
			return &NotFoundError{Kind: "notebook", ID: id}
		}
		removed = doc.Notebooks[index].Clone()
		doc.Notebooks = append(doc.Notebooks[:index], doc.Notebooks[index+1:]...)
		return nil
	})
	if err != nil {
		return -1, Notebook{}, err
	}
	contextutil.LoggerOr(ctx, s.logger).InfoContext(ctx, "notebook deleted",
		"notebook_id", id, "index", index, "notes", len(removed.Notes))
	return index, removed, nil
}

// CreateNote stamps a new note with the current time and puts it first in its notebook.
func (s *Store) CreateNote(ctx context.Context, notebookID string, in NoteInput) (Note, error) {
	var created Note
	err := s.update(ctx, "create note", func(doc *Document) error {
		nb, err := findNotebook(doc, notebookID)
		if err != nil {
			return err
		}
		created = Note{
			ID:         s.newID(),
			NotebookID: notebookID,
			Title:      in.Title,
			Text:       in.Text,
			PostedOn:   s.now().UnixMilli(),
		}
		nb.Notes = append([]Note{created}, nb.Notes...)
		return nil
	})
	if err != nil {
		return Note{}, err
	}
	contextutil.LoggerOr(ctx, s.logger).InfoContext(ctx, "note created", "notebook_id", notebookID, "note_id", created.ID)
	return created, nil
}

// ListNotes returns the notes of a notebook, most recent first.
func (s *Store) ListNotes(ctx context.Context, notebookID string) ([]Note, error) {
	var notes []Note
	err := s.read(ctx, "list notes", func(doc *Document) error {
		nb, err := findNotebook(doc, notebookID)
		if err != nil {
			return err
		}
		notes = nb.Clone().Notes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote replaces the title and text of a note. Its id, notebook and position are kept.
func (s *Store) UpdateNote(ctx context.Context, notebookID, noteID string, in NoteInput) (Note, error) {
	var updated Note
	err := s.update(ctx, "update note", func(doc *Document) error {
		nb, err := findNotebook(doc, notebookID)
		if err != nil {
			return err
		}
		i := noteIndex(nb, noteID)
		if i < 0 {
			return &NotFoundError{Kind: "note", ID: noteID}
		}
		nb.Notes[i].Title = in.Title
		nb.Notes[i].Text = in.Text
		updated = nb.Notes[i]
		return nil
	})
	if err != nil {
		return Note{}, err
	}
	return updated, nil
}

// DeleteNote removes a note from its notebook.
func (s *Store) DeleteNote(ctx context.Context, notebookID, noteID string) (Note, error) {
	var removed Note
	err := s.update(ctx, "delete note", func(doc *Document) error {
		nb, err := findNotebook(doc, notebookID)
		if err != nil {
			return err
		}
		i := noteIndex(nb, noteID)
		if i < 0 {
			return &NotFoundError{Kind: "note", ID: noteID}
		}
		removed = nb.Notes[i]
		nb.Notes = append(nb.Notes[:i], nb.Notes[i+1:]...)
		return nil
	})
	if err != nil {
		return Note{}, err
	}
	contextutil.LoggerOr(ctx, s.logger).InfoContext(ctx, "note deleted", "notebook_id", notebookID, "note_id", noteID)
	return removed, nil
}

// Document reloads and returns a copy of the whole document.
func (s *Store) Document(ctx context.Context) (Document, error) {
	var out Document
	err := s.read(ctx, "read document", func(doc *Document) error {
		out = doc.Clone()
		return nil
	})
	return out, err
}

package handlers

import (
	"context"

	"notekeeper/internal/service"
)

// NoteStore is the part of service.Store the handlers use.
type NoteStore interface {
	CreateNotebook(ctx context.Context, name string) (service.Notebook, error)
	ListNotebooks(ctx context.Context) ([]service.Notebook, error)
	GetNotebook(ctx context.Context, id string) (service.Notebook, error)
	RenameNotebook(ctx context.Context, id, name string) (service.Notebook, error)
	DeleteNotebook(ctx context.Context, id string) (int, service.Notebook, error)
	CreateNote(ctx context.Context, notebookID string, in service.NoteInput) (service.Note, error)
	ListNotes(ctx context.Context, notebookID string) ([]service.Note, error)
	UpdateNote(ctx context.Context, notebookID, noteID string, in service.NoteInput) (service.Note, error)
	DeleteNote(ctx context.Context, notebookID, noteID string) (service.Note, error)
}

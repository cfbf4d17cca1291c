package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Document is the whole persisted state: every notebook with its notes.
type Document struct {
	Notebooks []Notebook `json:"notebooks"`
}

// Notebook is a named container of notes. Notes are ordered most-recent-first.
type Notebook struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes []Note `json:"notes"`
}

// Note is a title/text record owned by exactly one notebook.
type Note struct {
	ID         string `json:"id"`
	NotebookID string `json:"notebookId"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	PostedOn   int64  `json:"postedOn"` // milliseconds since epoch
}

// PostedAt returns PostedOn as a time.
func (n Note) PostedAt() time.Time {
	return time.UnixMilli(n.PostedOn)
}

// Clone returns a deep copy with nil slices normalized to empty ones.
func (d Document) Clone() Document {
	out := Document{Notebooks: make([]Notebook, len(d.Notebooks))}
	for i, nb := range d.Notebooks {
		out.Notebooks[i] = nb.Clone()
	}
	return out
}

// Clone returns a deep copy of the notebook.
func (nb Notebook) Clone() Notebook {
	notes := make([]Note, len(nb.Notes))
	copy(notes, nb.Notes)
	nb.Notes = notes
	return nb
}

// EncodeDocument serializes d in the slot format. Empty collections are written as [].
func EncodeDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d.Clone()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeDocument parses slot text. Unknown fields, a missing notebooks array,
// empty ids and notes filed under the wrong notebook are rejected.
func DecodeDocument(data []byte) (Document, error) {
	var raw struct {
		Notebooks *[]Notebook `json:"notebooks"`
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return Document{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Document{}, errors.New("unexpected data after document")
	}
	if raw.Notebooks == nil {
		return Document{}, errors.New(`missing "notebooks" array`)
	}

	doc := Document{Notebooks: *raw.Notebooks}
	for i, nb := range doc.Notebooks {
		if nb.ID == "" {
			return Document{}, fmt.Errorf("notebook at index %d has no id", i)
		}
		for j, note := range nb.Notes {
			if note.ID == "" {
				return Document{}, fmt.Errorf("note at index %d of notebook %q has no id", j, nb.ID)
			}
			if note.NotebookID != nb.ID {
				return Document{}, fmt.Errorf("note %q references notebook %q but is stored in %q", note.ID, note.NotebookID, nb.ID)
			}
		}
	}
	return doc.Clone(), nil
}

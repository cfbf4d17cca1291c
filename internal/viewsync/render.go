package viewsync

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"notekeeper/internal/service"
)

const fragments = `
{{define "row"}}<div class="nav-item" data-notebook="{{.ID}}">
  <span class="text text-label-large" data-notebook-field>{{.Name}}</span>
  <button class="icon-btn small" aria-label="Edit notebook" data-tooltip="Edit notebook" data-edit-btn>
    <span class="material-symbols-rounded" aria-hidden="true">edit</span>
    <div class="state-layer"></div>
  </button>
  <button class="icon-btn small" aria-label="Delete notebook" data-tooltip="Delete notebook" data-delete-btn>
    <span class="material-symbols-rounded" aria-hidden="true">delete</span>
    <div class="state-layer"></div>
  </button>
  <div class="state-layer"></div>
</div>{{end}}

{{define "card"}}<div class="card" data-note="{{.ID}}" data-note-notebook="{{.NotebookID}}">
  <h3 class="card-title text-title-medium">{{.Title}}</h3>
  <div class="card-text text-body-large">{{.Body}}</div>
  <div class="wrapper">
    <span class="card-time text-label-large">{{.Time}}</span>
    <button class="icon-btn large" aria-label="Delete note" data-tooltip="Delete note" data-note-delete-btn>
      <span class="material-symbols-rounded" aria-hidden="true">delete</span>
      <div class="state-layer"></div>
    </button>
  </div>
  <div class="state-layer"></div>
</div>{{end}}

{{define "empty"}}<div class="empty-notes">
  <span class="material-symbols-rounded" aria-hidden="true">note_stack</span>
  <div class="text-headline-small">No notes</div>
</div>{{end}}

{{define "noteModal"}}<div class="modal" data-modal="{{.ID}}" data-modal-kind="{{.Kind}}">
  <button class="icon-btn large" aria-label="Close modal" data-tooltip="Close modal" data-modal-close>
    <span class="material-symbols-rounded" aria-hidden="true">close</span>
    <div class="state-layer"></div>
  </button>
  <input type="text" placeholder="Untitled" value="{{.Title}}" class="modal-title text-title-medium" data-note-field="title">
  <textarea placeholder="Take a note..." class="modal-text text-body-large custom-scrollbar" data-note-field="text">{{.Text}}</textarea>
  <div class="modal-footer">
    <span class="time text-label-large">{{.Time}}</span>
    <button class="btn text" data-modal-submit disabled>
      <span class="text-label-large">Save</span>
      <div class="state-layer"></div>
    </button>
  </div>
</div>{{template "overlay" .}}{{end}}

{{define "deleteModal"}}<div class="modal" data-modal="{{.ID}}" data-modal-kind="{{.Kind}}">
  <h3 class="modal-title text-title-medium">Are you sure you want to delete <strong>"{{.Title}}"</strong>?</h3>
  <div class="modal-footer">
    <button class="btn text" data-action-btn="false">
      <span class="text-label-large">Cancel</span>
      <div class="state-layer"></div>
    </button>
    <button class="btn fill" data-action-btn="true">
      <span class="text-label-large">Delete</span>
      <div class="state-layer"></div>
    </button>
  </div>
</div>{{template "overlay" .}}{{end}}

{{define "overlay"}}<div class="overlay modal-overlay active" data-modal-overlay="{{.ID}}"></div>{{end}}
`

type cardData struct {
	ID         string
	NotebookID string
	Title      string
	Body       template.HTML
	Time       string
}

type modalData struct {
	ID    string
	Kind  ModalKind
	Title string
	Text  string
	Time  string
}

// Renderer builds the HTML fragments carried by patches.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
	now  func() time.Time
}

// NewRenderer creates a Renderer. now is used for relative card times; nil means time.Now.
func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{
		tmpl: template.Must(template.New("fragments").Parse(fragments)),
		// Raw HTML in note text is dropped; goldmark's default renderer is safe.
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
		),
		now: now,
	}
}

// Row renders the sidebar row of a notebook.
func (r *Renderer) Row(id, name string) (string, error) {
	return r.execute("row", struct{ ID, Name string }{id, name})
}

// Card renders a note card. Note text is treated as markdown.
func (r *Renderer) Card(note service.Note) (string, error) {
	body, err := r.markdown(note.Text)
	if err != nil {
		return "", err
	}
	return r.execute("card", cardData{
		ID:         note.ID,
		NotebookID: note.NotebookID,
		Title:      note.Title,
		Body:       body,
		Time:       RelativeTime(r.now(), note.PostedAt()),
	})
}

// Empty renders the "No notes" placeholder.
func (r *Renderer) Empty() (string, error) {
	return r.execute("empty", nil)
}

// Modal renders a modal together with its overlay.
func (r *Renderer) Modal(m Modal) (string, error) {
	data := modalData{ID: m.ID, Kind: m.Kind, Title: m.Title, Text: m.Text}
	switch m.Kind {
	case ModalDeleteNotebook:
		return r.execute("deleteModal", data)
	case ModalEditNote:
		data.Time = RelativeTime(r.now(), time.UnixMilli(m.PostedOn))
		return r.execute("noteModal", data)
	default:
		return r.execute("noteModal", data)
	}
}

func (r *Renderer) markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

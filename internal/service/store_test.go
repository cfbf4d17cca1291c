package service

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"notekeeper/internal/service/mocks"
	"notekeeper/internal/storage"
)

func setupTestSlots(t *testing.T) storage.SlotStore {
	t.Helper()

	slots, err := storage.Open(storage.BackendSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open slot store: %v", err)
	}
	t.Cleanup(func() {
		_ = slots.Close()
	})
	return slots
}

func setupTestStore(t *testing.T, opts ...Option) (*Store, storage.SlotStore) {
	t.Helper()

	slots := setupTestSlots(t)
	store, err := NewStore(context.Background(), slots, opts...)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store, slots
}

func TestNewStore_CreatesEmptyDocument(t *testing.T) {
	store, slots := setupTestStore(t)
	ctx := context.Background()

	raw, found, err := slots.Get(ctx, DocumentKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("NewStore() should persist the empty document immediately")
	}
	if raw != `{"notebooks":[]}` {
		t.Errorf("stored document = %s, want empty notebooks", raw)
	}

	list, err := store.ListNotebooks(ctx)
	if err != nil {
		t.Fatalf("ListNotebooks() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListNotebooks() = %v, want []", list)
	}
}

func TestNewStore_LoadsExistingDocument(t *testing.T) {
	slots := setupTestSlots(t)
	ctx := context.Background()
	existing := `{"notebooks":[{"id":"1","name":"Work","notes":[{"id":"2","notebookId":"1","title":"A","text":"1","postedOn":5}]}]}`
	if err := slots.Set(ctx, DocumentKey, existing); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	store, err := NewStore(ctx, slots)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	notes, err := store.ListNotes(ctx, "1")
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "A" {
		t.Errorf("ListNotes() = %+v, want the stored note", notes)
	}

	raw, _, _ := slots.Get(ctx, DocumentKey)
	if raw != existing {
		t.Errorf("NewStore() rewrote a valid document: %s", raw)
	}
}

func TestNewStore_CorruptDocumentFallsBack(t *testing.T) {
	slots := setupTestSlots(t)
	ctx := context.Background()
	if err := slots.Set(ctx, DocumentKey, "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	store, err := NewStore(ctx, slots)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	list, err := store.ListNotebooks(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("ListNotebooks() = %v, %v; want empty", list, err)
	}

	backup, found, err := slots.Get(ctx, DocumentKey+".corrupt")
	if err != nil || !found || backup != "{not json" {
		t.Errorf("corrupt backup = %q, %v, %v; want original text preserved", backup, found, err)
	}
}

func TestNewStore_StorageUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	slots := mocks.NewMockSlots(ctrl)
	slots.EXPECT().Get(gomock.Any(), DocumentKey).Return("", false, errors.New("access denied"))

	_, err := NewStore(context.Background(), slots)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("NewStore() error = %v, want ErrStorageUnavailable", err)
	}
}

func TestNewStore_CustomKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	slots := mocks.NewMockSlots(ctrl)
	gomock.InOrder(
		slots.EXPECT().Get(gomock.Any(), "other").Return("", false, nil),
		slots.EXPECT().Set(gomock.Any(), "other", `{"notebooks":[]}`).Return(nil),
	)

	if _, err := NewStore(context.Background(), slots, WithDocumentKey("other")); err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
}

func TestStore_CreateNotebook(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		wantName string
	}{
		{name: "named", input: "Work", wantName: "Work"},
		{name: "empty name becomes Untitled", input: "", wantName: "Untitled"},
		{name: "whitespace kept", input: "  ", wantName: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := store.ListNotebooks(ctx)
			if err != nil {
				t.Fatalf("ListNotebooks() error = %v", err)
			}

			nb, err := store.CreateNotebook(ctx, tt.input)
			if err != nil {
				t.Fatalf("CreateNotebook() error = %v", err)
			}
			if nb.Name != tt.wantName {
				t.Errorf("CreateNotebook() name = %q, want %q", nb.Name, tt.wantName)
			}
			if nb.Notes == nil || len(nb.Notes) != 0 {
				t.Errorf("CreateNotebook() notes = %#v, want empty", nb.Notes)
			}

			after, err := store.ListNotebooks(ctx)
			if err != nil {
				t.Fatalf("ListNotebooks() error = %v", err)
			}
			if len(after) != len(before)+1 {
				t.Fatalf("ListNotebooks() len = %d, want %d", len(after), len(before)+1)
			}
			last := after[len(after)-1]
			if last.ID != nb.ID || last.Name != tt.wantName {
				t.Errorf("new notebook should be appended, got %+v", last)
			}
			for _, other := range before {
				if other.ID == nb.ID {
					t.Errorf("id %q is not unique", nb.ID)
				}
			}
		})
	}
}

func TestStore_TimestampIDsDoNotCollide(t *testing.T) {
	frozen := func() time.Time { return time.UnixMilli(1700000000000) }
	store, _ := setupTestStore(t, WithIDGenerator(NewTimestampGenerator(frozen)), WithClock(frozen))
	ctx := context.Background()

	a, _ := store.CreateNotebook(ctx, "a")
	b, _ := store.CreateNotebook(ctx, "b")
	if a.ID == b.ID {
		t.Fatalf("notebooks created in the same millisecond share id %q", a.ID)
	}
	if a.ID != "1700000000000" || b.ID != "1700000000001" {
		t.Errorf("ids = %q, %q; want consecutive millisecond strings", a.ID, b.ID)
	}
}

func TestStore_RenameNotebook(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	nb, _ := store.CreateNotebook(ctx, "Old")
	note, _ := store.CreateNote(ctx, nb.ID, NoteInput{Title: "t", Text: "x"})

	renamed, err := store.RenameNotebook(ctx, nb.ID, "X")
	if err != nil {
		t.Fatalf("RenameNotebook() error = %v", err)
	}
	if renamed.ID != nb.ID || renamed.Name != "X" {
		t.Errorf("RenameNotebook() = %+v", renamed)
	}

	list, _ := store.ListNotebooks(ctx)
	if len(list) != 1 || list[0].ID != nb.ID || list[0].Name != "X" {
		t.Fatalf("ListNotebooks() = %+v, want renamed entry", list)
	}
	if !reflect.DeepEqual(list[0].Notes, []Note{note}) {
		t.Errorf("rename changed notes: %+v", list[0].Notes)
	}

	_, err = store.RenameNotebook(ctx, "missing", "X")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RenameNotebook(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteNotebook(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	a, _ := store.CreateNotebook(ctx, "a")
	b, _ := store.CreateNotebook(ctx, "b")
	c, _ := store.CreateNotebook(ctx, "c")
	_, _ = store.CreateNote(ctx, b.ID, NoteInput{Title: "gone"})

	index, removed, err := store.DeleteNotebook(ctx, b.ID)
	if err != nil {
		t.Fatalf("DeleteNotebook() error = %v", err)
	}
	if index != 1 {
		t.Errorf("DeleteNotebook() index = %d, want 1", index)
	}
	if removed.ID != b.ID || len(removed.Notes) != 1 {
		t.Errorf("DeleteNotebook() removed = %+v", removed)
	}

	list, _ := store.ListNotebooks(ctx)
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != c.ID {
		t.Errorf("ListNotebooks() after delete = %+v", list)
	}

	if _, err := store.ListNotes(ctx, b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("ListNotes(deleted) error = %v, want ErrNotFound", err)
	}

	_, _, err = store.DeleteNotebook(ctx, b.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteNotebook() error = %v, want ErrNotFound", err)
	}
}

func TestStore_CreateNote_MostRecentFirst(t *testing.T) {
	clock := time.UnixMilli(1000)
	store, _ := setupTestStore(t, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	work, err := store.CreateNotebook(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateNotebook() error = %v", err)
	}

	a, err := store.CreateNote(ctx, work.ID, NoteInput{Title: "A", Text: "1"})
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if a.NotebookID != work.ID || a.PostedOn != 1000 {
		t.Errorf("CreateNote() = %+v, want notebook id and clock stamp", a)
	}

	clock = time.UnixMilli(2000)
	b, err := store.CreateNote(ctx, work.ID, NoteInput{Title: "B", Text: "2"})
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	notes, err := store.ListNotes(ctx, work.ID)
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("ListNotes() len = %d, want 2", len(notes))
	}
	if notes[0] != b || notes[1] != a {
		t.Errorf("ListNotes() = [%s %s], want [B A]", notes[0].Title, notes[1].Title)
	}

	if _, err := store.CreateNote(ctx, "missing", NoteInput{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateNote(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_UpdateAndDeleteNote(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	nb, _ := store.CreateNotebook(ctx, "nb")
	first, _ := store.CreateNote(ctx, nb.ID, NoteInput{Title: "first"})
	second, _ := store.CreateNote(ctx, nb.ID, NoteInput{Title: "second"})

	updated, err := store.UpdateNote(ctx, nb.ID, first.ID, NoteInput{Title: "edited", Text: "body"})
	if err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	if updated.ID != first.ID || updated.PostedOn != first.PostedOn || updated.Title != "edited" || updated.Text != "body" {
		t.Errorf("UpdateNote() = %+v", updated)
	}

	notes, _ := store.ListNotes(ctx, nb.ID)
	if notes[0].ID != second.ID || notes[1] != updated {
		t.Errorf("UpdateNote() should keep position, got %+v", notes)
	}

	if _, err := store.UpdateNote(ctx, nb.ID, "missing", NoteInput{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateNote(missing) error = %v, want ErrNotFound", err)
	}

	removed, err := store.DeleteNote(ctx, nb.ID, second.ID)
	if err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}
	if removed.ID != second.ID {
		t.Errorf("DeleteNote() = %+v", removed)
	}
	notes, _ = store.ListNotes(ctx, nb.ID)
	if len(notes) != 1 || notes[0].ID != first.ID {
		t.Errorf("ListNotes() after DeleteNote = %+v", notes)
	}

	if _, err := store.DeleteNote(ctx, nb.ID, second.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteNote() error = %v, want ErrNotFound", err)
	}
	if _, err := store.DeleteNote(ctx, "missing", first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteNote(missing notebook) error = %v, want ErrNotFound", err)
	}
}

func TestStore_ResultsDoNotAlias(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	nb, _ := store.CreateNotebook(ctx, "nb")
	_, _ = store.CreateNote(ctx, nb.ID, NoteInput{Title: "t"})

	list, _ := store.ListNotebooks(ctx)
	list[0].Name = "mutated"
	list[0].Notes[0].Title = "mutated"

	again, _ := store.GetNotebook(ctx, nb.ID)
	if again.Name != "nb" || again.Notes[0].Title != "t" {
		t.Errorf("mutating a result changed the store: %+v", again)
	}
}

func TestStore_ReloadsBeforeEachOperation(t *testing.T) {
	slots := setupTestSlots(t)
	ctx := context.Background()

	first, err := NewStore(ctx, slots)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	second, err := NewStore(ctx, slots)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	nb, _ := first.CreateNotebook(ctx, "from first")
	if _, err := second.CreateNote(ctx, nb.ID, NoteInput{Title: "from second"}); err != nil {
		t.Fatalf("second store should see notebook created by first: %v", err)
	}

	notes, err := first.ListNotes(ctx, nb.ID)
	if err != nil || len(notes) != 1 {
		t.Errorf("first store should see note created by second: %+v, %v", notes, err)
	}
}

func TestStore_CorruptDuringOperation(t *testing.T) {
	store, slots := setupTestStore(t)
	ctx := context.Background()

	if err := slots.Set(ctx, DocumentKey, `{"notebooks":`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, err := store.CreateNotebook(ctx, "x")
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("CreateNotebook() error = %v, want ErrSerialization", err)
	}

	raw, _, _ := slots.Get(ctx, DocumentKey)
	if raw != `{"notebooks":` {
		t.Errorf("failed operation must not overwrite the slot, got %s", raw)
	}
}

func TestStore_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	slots := mocks.NewMockSlots(ctrl)
	ctx := context.Background()

	slots.EXPECT().Get(gomock.Any(), DocumentKey).Return(`{"notebooks":[]}`, true, nil).Times(2)
	slots.EXPECT().Set(gomock.Any(), DocumentKey, gomock.Any()).Return(errors.New("quota exceeded"))

	store, err := NewStore(ctx, slots)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	_, err = store.CreateNotebook(ctx, "x")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("CreateNotebook() error = %v, want ErrStorageUnavailable", err)
	}
}

func TestStore_MissingSlotTreatedAsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	slots := mocks.NewMockSlots(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		slots.EXPECT().Get(gomock.Any(), DocumentKey).Return(`{"notebooks":[]}`, true, nil),
		slots.EXPECT().Get(gomock.Any(), DocumentKey).Return("", false, nil),
	)

	store, err := NewStore(ctx, slots)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	list, err := store.ListNotebooks(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("ListNotebooks() = %v, %v; want empty", list, err)
	}
}

func TestStore_Document(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	nb, _ := store.CreateNotebook(ctx, "nb")
	note, _ := store.CreateNote(ctx, nb.ID, NoteInput{Title: "t", Text: "x"})

	doc, err := store.Document(ctx)
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	want := Document{Notebooks: []Notebook{{ID: nb.ID, Name: "nb", Notes: []Note{note}}}}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("Document() = %+v, want %+v", doc, want)
	}
}

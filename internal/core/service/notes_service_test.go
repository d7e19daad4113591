package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/speernotes/notes-system/internal/core/domain"
	"github.com/speernotes/notes-system/internal/core/ports"
)

type stubNoteRepo struct {
	notes   map[string]*domain.Note
	nextID  int
	deleted []string
	// searchResults is returned verbatim by SearchByText, mimicking a raw
	// non-tenant-aware text index.
	searchResults []*domain.Note
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[string]*domain.Note)}
}

func cloneNote(n *domain.Note) *domain.Note {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}

func (r *stubNoteRepo) FindByID(_ context.Context, id string) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return cloneNote(n), nil
}

func (r *stubNoteRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range r.notes {
		if n.OwnerID == ownerID {
			out = append(out, cloneNote(n))
		}
	}
	return out, nil
}

func (r *stubNoteRepo) Save(_ context.Context, note *domain.Note) (*domain.Note, error) {
	saved := cloneNote(note)
	if saved.ID == "" {
		r.nextID++
		saved.ID = "n" + strconv.Itoa(r.nextID)
	}
	r.notes[saved.ID] = cloneNote(saved)
	return saved, nil
}

func (r *stubNoteRepo) Delete(_ context.Context, id string) error {
	delete(r.notes, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubNoteRepo) SearchByText(_ context.Context, _ string) ([]*domain.Note, error) {
	return r.searchResults, nil
}

type stubRecorder struct {
	events []domain.ActivityEvent
}

func (s *stubRecorder) Record(event domain.ActivityEvent) {
	s.events = append(s.events, event)
}

func newNotesSvc(notes *stubNoteRepo, users *stubUserRepo) (*NotesService, *stubRecorder) {
	rec := &stubRecorder{}
	return NewNotesService(notes, users, NewAccessGuard(), rec, zerolog.Nop()), rec
}

func owner() *domain.Principal {
	return &domain.Principal{ID: "u1", Email: "alice@example.com"}
}

func TestNotesService_CreateAndList(t *testing.T) {
	notes := newStubNoteRepo()
	svc, rec := newNotesSvc(notes, newStubUserRepo())

	created, err := svc.Create(context.Background(), owner(), ports.CreateNoteInput{Title: "groceries", Content: "milk"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if created.OwnerID != "u1" {
		t.Fatalf("owner not set: %s", created.OwnerID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}

	listed, err := svc.List(context.Background(), owner())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected list result: %+v", listed)
	}

	if len(rec.events) != 1 || rec.events[0].Action != domain.ActivityCreated {
		t.Fatalf("expected one created activity event, got %+v", rec.events)
	}
}

func TestNotesService_Get_HiddenFromStrangers(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "u1", Title: "secret"}
	svc, _ := newNotesSvc(notes, newStubUserRepo())

	if _, err := svc.Get(context.Background(), owner(), "n1"); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}

	stranger := &domain.Principal{ID: "u2"}
	if _, err := svc.Get(context.Background(), stranger, "n1"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("stranger must see not-found, got %v", err)
	}

	recipient := &domain.Principal{ID: "u3", SharedNoteIDs: []string{"n1"}}
	if _, err := svc.Get(context.Background(), recipient, "n1"); err != nil {
		t.Fatalf("share recipient get failed: %v", err)
	}
}

func TestNotesService_Update_Partial(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "u1", Title: "old title", Content: "old content"}
	svc, _ := newNotesSvc(notes, newStubUserRepo())

	title := "new title"
	updated, err := svc.Update(context.Background(), owner(), "n1", ports.UpdateNoteInput{Title: &title})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "new title" {
		t.Fatalf("title not updated: %s", updated.Title)
	}
	if updated.Content != "old content" {
		t.Fatalf("absent field must stay untouched, got %s", updated.Content)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("updated_at must be refreshed")
	}
}

func TestNotesService_Update_Forbidden(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "someone-else"}
	svc, _ := newNotesSvc(notes, newStubUserRepo())

	title := "hijack"
	if _, err := svc.Update(context.Background(), owner(), "n1", ports.UpdateNoteInput{Title: &title}); !errors.Is(err, domain.ErrNoteForbidden) {
		t.Fatalf("expected ErrNoteForbidden, got %v", err)
	}
}

func TestNotesService_Delete(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "u1"}
	svc, _ := newNotesSvc(notes, newStubUserRepo())

	if err := svc.Delete(context.Background(), owner(), "n1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(notes.deleted) != 1 || notes.deleted[0] != "n1" {
		t.Fatalf("note not deleted: %v", notes.deleted)
	}

	// Deleting a note that no longer exists is a no-op success.
	if err := svc.Delete(context.Background(), owner(), "n1"); err != nil {
		t.Fatalf("repeat delete must succeed, got %v", err)
	}
}

func TestNotesService_Delete_Forbidden(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "someone-else"}
	svc, _ := newNotesSvc(notes, newStubUserRepo())

	if err := svc.Delete(context.Background(), owner(), "n1"); !errors.Is(err, domain.ErrNoteForbidden) {
		t.Fatalf("expected ErrNoteForbidden, got %v", err)
	}
	if len(notes.deleted) != 0 {
		t.Fatalf("unauthorized delete must not reach storage")
	}
}

func TestNotesService_Share_GrantsReadNotWrite(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "u1"}
	users := newStubUserRepo()
	users.users["bob@example.com"] = &domain.User{ID: "u2", Email: "bob@example.com"}
	svc, rec := newNotesSvc(notes, users)

	shared, err := svc.Share(context.Background(), owner(), "n1", "bob@example.com")
	if err != nil {
		t.Fatalf("share failed: %v", err)
	}
	if !shared {
		t.Fatalf("expected share success")
	}

	target := users.users["bob@example.com"]
	if !target.HasSharedNote("n1") {
		t.Fatalf("grant not recorded on recipient")
	}

	recipient := &domain.Principal{ID: "u2", SharedNoteIDs: target.SharedNoteIDs}
	note := notes.notes["n1"]
	if !recipient.CanRead(note) {
		t.Errorf("recipient must read after share")
	}
	if recipient.CanWrite(note) {
		t.Errorf("sharing must not grant write")
	}

	if len(rec.events) != 1 || rec.events[0].Action != domain.ActivityShared {
		t.Fatalf("expected shared activity event, got %+v", rec.events)
	}
}

func TestNotesService_Share_Idempotent(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "u1"}
	users := newStubUserRepo()
	users.users["bob@example.com"] = &domain.User{ID: "u2", Email: "bob@example.com"}
	svc, _ := newNotesSvc(notes, users)

	for i := 0; i < 2; i++ {
		shared, err := svc.Share(context.Background(), owner(), "n1", "bob@example.com")
		if err != nil || !shared {
			t.Fatalf("share round %d: shared=%v err=%v", i, shared, err)
		}
	}

	target := users.users["bob@example.com"]
	if len(target.SharedNoteIDs) != 1 {
		t.Fatalf("expected a single grant, got %v", target.SharedNoteIDs)
	}
	// The second share found the grant in place and skipped persistence.
	if len(users.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(users.saved))
	}
}

func TestNotesService_Share_UnknownTarget(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "u1"}
	svc, _ := newNotesSvc(notes, newStubUserRepo())

	shared, err := svc.Share(context.Background(), owner(), "n1", "ghost@example.com")
	if shared {
		t.Fatalf("share to unknown email must fail")
	}
	if !errors.Is(err, domain.ErrShareTarget) {
		t.Fatalf("expected ErrShareTarget, got %v", err)
	}
}

func TestNotesService_Share_MissingNoteOrNotOwner(t *testing.T) {
	notes := newStubNoteRepo()
	notes.notes["n1"] = &domain.Note{ID: "n1", OwnerID: "someone-else"}
	users := newStubUserRepo()
	users.users["bob@example.com"] = &domain.User{ID: "u2", Email: "bob@example.com"}
	svc, _ := newNotesSvc(notes, users)

	// Missing note: failure without error, nothing leaked.
	shared, err := svc.Share(context.Background(), owner(), "missing", "bob@example.com")
	if shared || err != nil {
		t.Fatalf("missing note: shared=%v err=%v", shared, err)
	}

	// Note owned by someone else: same silent failure.
	shared, err = svc.Share(context.Background(), owner(), "n1", "bob@example.com")
	if shared || err != nil {
		t.Fatalf("foreign note: shared=%v err=%v", shared, err)
	}
	if users.users["bob@example.com"].HasSharedNote("n1") {
		t.Fatalf("no grant may be recorded for a foreign note")
	}
}

func TestNotesService_Search_FiltersVisibility(t *testing.T) {
	notes := newStubNoteRepo()
	notes.searchResults = []*domain.Note{
		{ID: "n1", OwnerID: "u1", Title: "mine"},
		{ID: "n2", OwnerID: "other", Title: "theirs"},
		{ID: "n3", OwnerID: "other", Title: "shared with me"},
	}
	svc, _ := newNotesSvc(notes, newStubUserRepo())

	p := &domain.Principal{ID: "u1", SharedNoteIDs: []string{"n3"}}
	got, err := svc.Search(context.Background(), p, "anything")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 visible matches, got %d", len(got))
	}
	if got[0].ID != "n1" || got[1].ID != "n3" {
		t.Fatalf("unexpected matches: %s, %s", got[0].ID, got[1].ID)
	}
}

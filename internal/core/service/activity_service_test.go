package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/speernotes/notes-system/internal/core/domain"
)

type stubDedup struct {
	duplicate bool
	checkErr  error
	marked    []string
}

func (s *stubDedup) IsDuplicate(_ context.Context, _ string, _ domain.ActivityAction, _ time.Time) (bool, error) {
	return s.duplicate, s.checkErr
}

func (s *stubDedup) Mark(_ context.Context, noteID string, action domain.ActivityAction, _ time.Time) error {
	s.marked = append(s.marked, noteID+":"+string(action))
	return nil
}

type stubActivityRepo struct {
	inserted  []*domain.ActivityEvent
	insertErr error
}

func (s *stubActivityRepo) Insert(_ context.Context, event *domain.ActivityEvent) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, event)
	return nil
}

func sampleEvent() domain.ActivityEvent {
	return domain.ActivityEvent{
		NoteID:    "n1",
		ActorID:   "u1",
		Action:    domain.ActivityUpdated,
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestActivityService_PersistsEvent(t *testing.T) {
	repo := &stubActivityRepo{}
	dedup := &stubDedup{}
	svc := NewActivityService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != "n1:updated" {
		t.Fatalf("dedup key not marked: %v", dedup.marked)
	}
}

func TestActivityService_SkipsDuplicate(t *testing.T) {
	repo := &stubActivityRepo{}
	dedup := &stubDedup{duplicate: true}
	svc := NewActivityService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("duplicate must not be persisted")
	}
	if len(dedup.marked) != 0 {
		t.Fatalf("duplicate must not be re-marked")
	}
}

func TestActivityService_DedupErrorDoesNotBlock(t *testing.T) {
	repo := &stubActivityRepo{}
	dedup := &stubDedup{checkErr: errors.New("redis down")}
	svc := NewActivityService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("process must survive a dedup outage, got %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("event must still be persisted")
	}
}

func TestActivityService_InsertError(t *testing.T) {
	insertErr := errors.New("write concern failed")
	repo := &stubActivityRepo{insertErr: insertErr}
	svc := NewActivityService(repo, &stubDedup{}, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error propagated, got %v", err)
	}
}

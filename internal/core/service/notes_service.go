package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/speernotes/notes-system/internal/metrics"
	"github.com/speernotes/notes-system/internal/core/domain"
	"github.com/speernotes/notes-system/internal/core/ports"
)

// ActivityRecorder accepts note activity events for asynchronous processing.
// Record must not block the request path.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// NotesService implements all note use cases: CRUD scoped to the owner,
// owner-to-user sharing, and visibility-filtered full-text search.
type NotesService struct {
	notes    ports.NoteRepository
	users    ports.UserRepository
	guard    AccessGuard
	activity ActivityRecorder
	logger   zerolog.Logger
}

func NewNotesService(
	notes ports.NoteRepository,
	users ports.UserRepository,
	guard AccessGuard,
	activity ActivityRecorder,
	logger zerolog.Logger,
) *NotesService {
	return &NotesService{
		notes:    notes,
		users:    users,
		guard:    guard,
		activity: activity,
		logger:   logger,
	}
}

var _ ports.NotesService = (*NotesService)(nil)

// List returns every note owned by the principal.
func (s *NotesService) List(ctx context.Context, p *domain.Principal) ([]*domain.Note, error) {
	return s.notes.FindByOwner(ctx, p.ID)
}

// Get loads a single note the principal may read. A note that exists but is
// not visible to the principal is reported as not found, so callers cannot
// probe for other tenants' note ids.
func (s *NotesService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.Note, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanRead(note) {
		return nil, fmt.Errorf("get note %s: %w", id, domain.ErrNoteNotFound)
	}
	return note, nil
}

// Create stores a new note owned by the principal.
func (s *NotesService) Create(ctx context.Context, p *domain.Principal, input ports.CreateNoteInput) (*domain.Note, error) {
	now := time.Now().UTC()
	note := &domain.Note{
		OwnerID:   p.ID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.notes.Save(ctx, note)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", p.ID).Msg("failed to create note")
		return nil, err
	}

	metrics.NotesCreatedTotal.Inc()
	s.record(domain.ActivityEvent{NoteID: created.ID, ActorID: p.ID, Action: domain.ActivityCreated, Timestamp: now})
	s.logger.Info().Str("note_id", created.ID).Str("owner_id", p.ID).Msg("note created")
	return created, nil
}

// Update applies a partial update to an owned note. Only fields present in
// the input overwrite stored values; UpdatedAt is always refreshed.
func (s *NotesService) Update(ctx context.Context, p *domain.Principal, id string, input ports.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(p, note, OpWrite); err != nil {
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	note.UpdatedAt = time.Now().UTC()

	updated, err := s.notes.Save(ctx, note)
	if err != nil {
		return nil, err
	}

	s.record(domain.ActivityEvent{NoteID: id, ActorID: p.ID, Action: domain.ActivityUpdated, Timestamp: note.UpdatedAt})
	return updated, nil
}

// Delete removes an owned note. Deleting a note that no longer exists is a
// no-op success.
func (s *NotesService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil
		}
		return err
	}
	if err := s.guard.Authorize(p, note, OpDelete); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}

	s.record(domain.ActivityEvent{NoteID: id, ActorID: p.ID, Action: domain.ActivityDeleted, Timestamp: time.Now().UTC()})
	s.logger.Info().Str("note_id", id).Str("owner_id", p.ID).Msg("note deleted")
	return nil
}

// Share grants the target user read access to an owned note. Sharing to an
// unknown email is an error; a missing note or a note owned by someone else
// reports failure without error, so the endpoint does not leak whether the
// note exists. Re-sharing an already shared note is a no-op success.
func (s *NotesService) Share(ctx context.Context, p *domain.Principal, noteID, targetEmail string) (bool, error) {
	target, err := s.users.FindByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, fmt.Errorf("notes cannot be shared to the user %s: %w", targetEmail, domain.ErrShareTarget)
		}
		return false, err
	}

	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return false, nil
		}
		return false, err
	}

	if note.OwnerID != p.ID {
		return false, nil
	}

	if target.AddSharedNote(noteID) {
		if err := s.users.Save(ctx, target); err != nil {
			return false, err
		}
	}

	metrics.NotesSharedTotal.Inc()
	s.record(domain.ActivityEvent{
		NoteID:    noteID,
		ActorID:   p.ID,
		Action:    domain.ActivityShared,
		Target:    targetEmail,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("note_id", noteID).Str("target", targetEmail).Msg("note shared")
	return true, nil
}

// Search runs the full-text query and keeps only notes visible to the
// principal.
func (s *NotesService) Search(ctx context.Context, p *domain.Principal, query string) ([]*domain.Note, error) {
	raw, err := s.notes.SearchByText(ctx, query)
	if err != nil {
		return nil, err
	}
	metrics.SearchesTotal.Inc()
	return s.guard.FilterVisible(p, raw), nil
}

func (s *NotesService) record(event domain.ActivityEvent) {
	if s.activity != nil {
		s.activity.Record(event)
	}
}

package ports

import (
	"context"

	"github.com/speernotes/notes-system/internal/core/domain"
)

// CreateNoteInput carries the fields for a new note.
type CreateNoteInput struct {
	Title   string
	Content string
}

// UpdateNoteInput carries a partial update: nil fields leave the stored
// value untouched.
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

// NotesService defines the use-case operations on notes. Every operation
// receives the principal resolved for the current request; authorization is
// decided here, never in the transport layer.
type NotesService interface {
	List(ctx context.Context, p *domain.Principal) ([]*domain.Note, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.Note, error)
	Create(ctx context.Context, p *domain.Principal, input CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, p *domain.Principal, id string, input UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error
	// Share grants the target user read access to the note. It returns false
	// without error when the note does not exist or is not owned by the
	// principal; an unknown target email is an error.
	Share(ctx context.Context, p *domain.Principal, noteID, targetEmail string) (bool, error)
	// Search runs a full-text query and returns only notes the principal may
	// read.
	Search(ctx context.Context, p *domain.Principal, query string) ([]*domain.Note, error)
}

package ports

import (
	"context"

	"github.com/speernotes/notes-system/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error)
	// Save inserts the note when its ID is empty (assigning one) and replaces
	// the stored document otherwise.
	Save(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
	// SearchByText runs a full-text query over note titles and contents. The
	// result is raw: it is not scoped to any principal, callers must filter
	// for visibility.
	SearchByText(ctx context.Context, query string) ([]*domain.Note, error)
}

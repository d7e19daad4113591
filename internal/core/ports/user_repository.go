package ports

import (
	"context"

	"github.com/speernotes/notes-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Accounts are created
// at signup and never deleted by the service.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Save persists changes to an existing user (e.g. new shared-note grants).
	Save(ctx context.Context, user *domain.User) error
}

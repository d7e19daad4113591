package ports

import (
	"context"

	"github.com/speernotes/notes-system/internal/core/domain"
)

// ActivityRepository persists note activity events to the audit collection.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

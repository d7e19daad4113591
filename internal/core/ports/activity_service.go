package ports

import (
	"context"

	"github.com/speernotes/notes-system/internal/core/domain"
)

// ActivityProcessor handles dequeued activity events.
type ActivityProcessor interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/speernotes/notes-system/internal/core/domain"
	"github.com/speernotes/notes-system/internal/core/ports"
	"github.com/speernotes/notes-system/internal/metrics"
)

// DedupChecker abstracts the idempotency store (Redis) guarding the activity
// trail against double delivery.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, noteID string, action domain.ActivityAction, ts time.Time) (bool, error)
	Mark(ctx context.Context, noteID string, action domain.ActivityAction, ts time.Time) error
}

// ActivityService persists note activity events dequeued by the dispatcher.
type ActivityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single activity event. Failures here
// never reach the request that produced the event.
func (s *ActivityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.NoteID, event.Action, event.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("note_id", event.NoteID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.ActivityDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("note_id", event.NoteID).Str("action", string(event.Action)).Msg("duplicate activity event skipped")
		return nil
	}
	metrics.ActivityDedupTotal.WithLabelValues("miss").Inc()

	if markErr := s.dedup.Mark(ctx, event.NoteID, event.Action, event.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("note_id", event.NoteID).Msg("failed to set dedup key")
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(string(event.Action)).Inc()
	s.log.Debug().
		Str("note_id", event.NoteID).
		Str("actor_id", event.ActorID).
		Str("action", string(event.Action)).
		Msg("activity event recorded")
	return nil
}

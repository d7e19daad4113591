package service

import (
	"fmt"

	"github.com/speernotes/notes-system/internal/core/domain"
)

// Operation identifies an action checked by the access guard.
type Operation string

const (
	OpRead   Operation = "read"
	OpWrite  Operation = "write"
	OpDelete Operation = "delete"
)

// AccessGuard decides whether a principal may perform an operation on a
// note. Ownership grants everything; a share grant confers read only.
type AccessGuard struct{}

func NewAccessGuard() AccessGuard {
	return AccessGuard{}
}

// Authorize fails with domain.ErrNoteForbidden when the principal lacks the
// requested operation on the note. It runs before every mutation so that
// unauthorized writes never reach storage.
func (AccessGuard) Authorize(p *domain.Principal, n *domain.Note, op Operation) error {
	var allowed bool
	switch op {
	case OpRead:
		allowed = p.CanRead(n)
	case OpWrite:
		allowed = p.CanWrite(n)
	case OpDelete:
		allowed = p.CanDelete(n)
	}
	if !allowed {
		return fmt.Errorf("%s note %s: %w", op, n.ID, domain.ErrNoteForbidden)
	}
	return nil
}

// FilterVisible retains only the notes the principal may read. It is the
// authorization boundary for full-text search: the text index itself is not
// tenant-aware.
func (AccessGuard) FilterVisible(p *domain.Principal, notes []*domain.Note) []*domain.Note {
	visible := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		if p.CanRead(n) {
			visible = append(visible, n)
		}
	}
	return visible
}

package domain

import "time"

// User models a registered account. SharedNoteIDs holds the ids of notes
// other owners have shared with this user; it is mutated only through the
// sharing flow in the notes service.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	SharedNoteIDs []string  `json:"shared_note_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasSharedNote reports whether the note id has been shared with this user.
func (u *User) HasSharedNote(noteID string) bool {
	for _, id := range u.SharedNoteIDs {
		if id == noteID {
			return true
		}
	}
	return false
}

// AddSharedNote grants read access to the note. Returns false when the grant
// was already present, so callers can skip the persistence round-trip.
func (u *User) AddSharedNote(noteID string) bool {
	if u.HasSharedNote(noteID) {
		return false
	}
	u.SharedNoteIDs = append(u.SharedNoteIDs, noteID)
	return true
}

// Principal is the authenticated identity attached to a single request. It
// carries a snapshot of the user's shared-note grants taken at resolution
// time and is never persisted.
type Principal struct {
	ID            string
	Email         string
	SharedNoteIDs []string
}

// CanRead reports whether the principal may read the note: either the
// principal owns it or the note was shared with them.
func (p *Principal) CanRead(n *Note) bool {
	if n.OwnerID == p.ID {
		return true
	}
	for _, id := range p.SharedNoteIDs {
		if id == n.ID {
			return true
		}
	}
	return false
}

// CanWrite reports whether the principal may mutate the note. Sharing never
// grants write access.
func (p *Principal) CanWrite(n *Note) bool {
	return n.OwnerID == p.ID
}

// CanDelete reports whether the principal may delete the note.
func (p *Principal) CanDelete(n *Note) bool {
	return n.OwnerID == p.ID
}

package domain

import (
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrNoteForbidden = errors.New("the note does not belong to the user")
var ErrShareTarget = errors.New("the user is invalid")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAuthentication = errors.New("authentication failure, please try again")

// Note is the core aggregate. OwnerID is set once at creation and never
// changes; read access beyond the owner is tracked on the recipient's User
// record, not here.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package domain

import "time"

// ActivityAction identifies the kind of note mutation recorded in the
// activity trail.
type ActivityAction string

const (
	ActivityCreated ActivityAction = "created"
	ActivityUpdated ActivityAction = "updated"
	ActivityDeleted ActivityAction = "deleted"
	ActivityShared  ActivityAction = "shared"
)

// ActivityEvent records a single mutation performed on a note. Events are
// captured asynchronously and never block the originating request.
type ActivityEvent struct {
	NoteID    string
	ActorID   string
	Action    ActivityAction
	Target    string // share recipient email, empty for other actions
	Timestamp time.Time
}

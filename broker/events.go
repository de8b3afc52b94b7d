package broker

import "time"

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	NoteCreated     EventType = "note.created"
	NoteUpdated     EventType = "note.updated"
	NoteDeleted     EventType = "note.deleted"
	InsightResolved EventType = "insight.resolved"
)

const NoteEventsSubject = "note_events"

// Event is the envelope published for every note lifecycle transition.
type Event struct {
	Type      EventType   `json:"event"`
	NoteID    uint        `json:"note_id"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

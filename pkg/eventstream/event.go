package eventstream

import (
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/factboard/pkg/fact"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeFactSubmitted is emitted after the collection accepted a new fact.
	EventTypeFactSubmitted = "factboard.fact.submitted"
)

// FactSubmittedEvent is the transport-neutral payload for an accepted submission.
type FactSubmittedEvent struct {
	SchemaVersion int         `json:"schema_version"`
	EventType     string      `json:"event_type"`
	EventID       string      `json:"event_id"`
	EmittedAt     time.Time   `json:"emitted_at"`
	Source        EventSource `json:"source"`
	Fact          fact.Fact   `json:"fact"`
}

// EventSource identifies the board and collection a fact went through.
type EventSource struct {
	Board  string `json:"board,omitempty"`
	Target string `json:"target,omitempty"`
}

// NewFactSubmitted builds a v1 event with a fresh id stamped at now.
func NewFactSubmitted(source EventSource, f fact.Fact, now time.Time) *FactSubmittedEvent {
	return &FactSubmittedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeFactSubmitted,
		EventID:       uuid.NewString(),
		EmittedAt:     now.UTC(),
		Source:        source,
		Fact:          f,
	}
}

package portfolio

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeOverrideAdded   = "override.added"
	EventTypeOverrideDeleted = "override.deleted"
	EventTypeHeroUpdated     = "hero.updated"
	EventTypeHeroReset       = "hero.reset"
)

// OverrideEvent announces that one storage slot was rewritten.
type OverrideEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	Kind       string    `json:"kind,omitempty"`
	Index      int       `json:"index"`
	Slot       string    `json:"slot"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewOverrideEvent(eventType, slot string, kind Kind, index int) OverrideEvent {
	ev := OverrideEvent{
		EventID:    uuid.New(),
		EventType:  eventType,
		Index:      index,
		Slot:       slot,
		OccurredAt: time.Now().UTC(),
	}
	if kind != 0 {
		ev.Kind = kind.String()
	}
	return ev
}

package sim

import "github.com/tomz197/lakeside/internal/object"

// EventType identifies a notification raised during a tick or by an intent.
type EventType int

const (
	EventCast EventType = iota
	EventHooked
	EventLanded
	EventLineBroke
	EventStageChanged
)

// Event is a notification for the HUD. Events are buffered by the Game and
// handed out by DrainEvents.
type Event struct {
	Type    EventType
	Fish    object.FishID
	Species string
	Delta   int // Score change actually applied
	Score   int // Score after the event
	Stage   Stage
}

package core

// EventType distinguishes the two edges of a lane key.
type EventType int

const (
	EventPress EventType = iota
	EventRelease
)

// String returns a human-readable name for the event type.
func (e EventType) String() string {
	switch e {
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

// InputEvent is a lane key edge produced by an input adapter.
// Key is the input symbol ("d", "f", ...) as configured for a lane.
type InputEvent struct {
	Key  string
	Type EventType
}

// Press builds a press event for key.
func Press(key string) InputEvent {
	return InputEvent{Key: key, Type: EventPress}
}

// Release builds a release event for key.
func Release(key string) InputEvent {
	return InputEvent{Key: key, Type: EventRelease}
}

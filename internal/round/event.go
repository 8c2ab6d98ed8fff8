package round

import "time"

type EventKind uint8

const (
	EventPhaseChanged EventKind = iota
	EventLevelStarted
	EventTargetCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseChanged:
		return "phase_changed"
	case EventLevelStarted:
		return "level_started"
	case EventTargetCompleted:
		return "target_completed"
	default:
		return "unknown"
	}
}

// Event reports a change the presentation layer may want to react to.
// From and To are set for EventPhaseChanged, Target for
// EventTargetCompleted and WrongTouch transitions.
type Event struct {
	Kind   EventKind
	At     time.Time
	From   Phase
	To     Phase
	Target int
	Score  int
	Level  int
}

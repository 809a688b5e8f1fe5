package draft

type EventType string

const (
	PickAdded     EventType = "pick_added"
	PickRemoved   EventType = "pick_removed"
	RosterLoaded  EventType = "roster_loaded"
	RosterCleared EventType = "roster_cleared"
	SaveFailed    EventType = "save_failed"
)

// Event is emitted after every state change. Pick is set for add and
// remove; Err is set for SaveFailed. For RosterCleared, Count is the number
// of picks dropped.
type Event struct {
	Type  EventType
	Pick  *Pick
	Count int
	Err   error
}

type Notifier interface {
	Notify(event Event)
}

type NotifierFunc func(event Event)

func (f NotifierFunc) Notify(event Event) {
	f(event)
}

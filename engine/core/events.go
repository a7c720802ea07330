package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtShotFired EventType = iota
	EvtTerrainHit
	EvtActorHit
	EvtShieldAbsorbed
	EvtActorDestroyed
	EvtBaseDestroyed
	EvtPowerUpSpawned
	EvtPowerUpExpired
	EvtPowerUpCollected
	EvtBuffExpired
	EvtEnemySpawned
	EvtPlayerRespawned
	EvtLevelStarted
	EvtLevelComplete
	EvtGameOver
)

// ActorEvent carries the actor an event is about
type ActorEvent struct {
	Actor *Actor
	Score int // points credited, for EvtActorDestroyed
}

// TerrainEvent carries the cell a shell reacted with
type TerrainEvent struct {
	X, Y      int
	Destroyed bool
	Stopped   bool // the shell was consumed
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the queued events without dispatching them
func (eb *EventBus) Pending() []Event {
	return eb.queue
}

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}

// pkg/event/event.go
package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sasha-s/go-deadlock"

	"github.com/opd-ai/mason/pkg/scene"
)

// Type represents the type of event
type Type string

// Common event types
const (
	PhaseChanged      Type = "phase_changed"
	Bounced           Type = "bounced"
	ContactObserved   Type = "contact_observed"
	ScriptConstructed Type = "script_constructed"
	GameStarted       Type = "game_started"
	GameEnded         Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe; Cancel removes the handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       deadlock.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, s := range handlers {
		if s.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine and may publish further events.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]subscriber(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, s := range handlers {
		s.handler(event)
	}
}

// Specific event implementations

// PhaseEvent reports a locomotion phase transition
type PhaseEvent struct {
	BaseEvent
	From string
	To   string
}

// NewPhaseEvent creates a new phase event
func NewPhaseEvent(source interface{}, from, to string) *PhaseEvent {
	return &PhaseEvent{
		BaseEvent: BaseEvent{EventType: PhaseChanged, Source: source},
		From:      from,
		To:        to,
	}
}

// BounceEvent reports a world-boundary bounce
type BounceEvent struct {
	BaseEvent
	Position mgl64.Vec3
	Momentum mgl64.Vec3
}

// NewBounceEvent creates a new bounce event. Momentum is the value after
// the bounce.
func NewBounceEvent(source interface{}, position, momentum mgl64.Vec3) *BounceEvent {
	return &BounceEvent{
		BaseEvent: BaseEvent{EventType: Bounced, Source: source},
		Position:  position,
		Momentum:  momentum,
	}
}

// ContactEvent reports an active contact that caused no state change
type ContactEvent struct {
	BaseEvent
	Collider scene.Handle
	Other    scene.Handle
}

// NewContactEvent creates a new contact event
func NewContactEvent(source interface{}, collider, other scene.Handle) *ContactEvent {
	return &ContactEvent{
		BaseEvent: BaseEvent{EventType: ContactObserved, Source: source},
		Collider:  collider,
		Other:     other,
	}
}

// ScriptEvent reports a script lifecycle step
type ScriptEvent struct {
	BaseEvent
	Script string
}

// NewScriptEvent creates a new script event
func NewScriptEvent(eventType Type, source interface{}, script string) *ScriptEvent {
	return &ScriptEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Script:    script,
	}
}

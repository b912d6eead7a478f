package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"booksearch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchSubmitted  = domain.EventSearchSubmitted
	EventSearchCompleted  = domain.EventSearchCompleted
	EventSearchFailed     = domain.EventSearchFailed
	EventSearchDiscarded  = domain.EventSearchDiscarded
	EventValidationFailed = domain.EventValidationFailed
	EventWindowExtended   = domain.EventWindowExtended
	EventLinkOpened       = domain.EventLinkOpened
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

// Re-export domain event types
type SearchSubmittedEvent = domain.SearchSubmittedEvent
type SearchCompletedEvent = domain.SearchCompletedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type SearchDiscardedEvent = domain.SearchDiscardedEvent
type ValidationFailedEvent = domain.ValidationFailedEvent
type WindowExtendedEvent = domain.WindowExtendedEvent
type LinkOpenedEvent = domain.LinkOpenedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	log       *logrus.Logger
}

// New creates a new event bus
func New(log *logrus.Logger) EventBus {
	if log == nil {
		log = logrus.StandardLogger()
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
		log:       log,
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	b.log.WithField("event", event.Type()).Debug("eventbus: publish")

	select {
	case b.eventChan <- event:
	case <-b.quit:
	default:
		b.log.WithField("event", event.Type()).Warn("eventbus: channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and drops undelivered events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.deliver(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// deliver runs one handler, isolating the dispatcher from its panics
func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.WithFields(logrus.Fields{
				"event": event.Type(),
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("eventbus: handler panic")
		}
	}()
	h(event)
}

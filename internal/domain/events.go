package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted  EventType = "SearchSubmitted"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventSearchDiscarded  EventType = "SearchDiscarded"
	EventValidationFailed EventType = "ValidationFailed"
	EventWindowExtended   EventType = "WindowExtended"
	EventLinkOpened       EventType = "LinkOpened"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted when a search request is issued
type SearchSubmittedEvent struct {
	SearchID string
	Term     string
	Token    uint64
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// SearchCompletedEvent is emitted when the latest search returned records
type SearchCompletedEvent struct {
	SearchID string
	Term     string
	Results  int
	Seconds  float64
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the latest search failed in transport
type SearchFailedEvent struct {
	SearchID string
	Term     string
	Err      error
	Seconds  float64
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a superseded search finishes
type SearchDiscardedEvent struct {
	SearchID string
	Term     string
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// ValidationFailedEvent is emitted when an empty term is submitted
type ValidationFailedEvent struct {
	Message string
}

func (e ValidationFailedEvent) Type() EventType { return EventValidationFailed }

// WindowExtendedEvent is emitted when more results become visible
type WindowExtendedEvent struct {
	Visible int
	Total   int
}

func (e WindowExtendedEvent) Type() EventType { return EventWindowExtended }

// LinkOpenedEvent is emitted when an outbound URL is handed to the opener
type LinkOpenedEvent struct {
	URL string
	Err error
}

func (e LinkOpenedEvent) Type() EventType { return EventLinkOpened }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

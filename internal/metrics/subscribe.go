package metrics

import (
	"booksearch/internal/eventbus"
)

// Subscribe records bus events into the collectors.
// The returned func removes every subscription.
func Subscribe(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.SearchCompletedEvent)
			if !ok {
				return
			}
			outcome := OutcomeResults
			if ev.Results == 0 {
				outcome = OutcomeEmpty
			}
			SearchesTotal.WithLabelValues(outcome).Inc()
			SearchDuration.Observe(ev.Seconds)
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.SearchFailedEvent)
			if !ok {
				return
			}
			SearchesTotal.WithLabelValues(OutcomeFailed).Inc()
			SearchDuration.Observe(ev.Seconds)
		}),
		bus.Subscribe(eventbus.EventValidationFailed, func(eventbus.DomainEvent) {
			SearchesTotal.WithLabelValues(OutcomeInvalid).Inc()
		}),
		bus.Subscribe(eventbus.EventSearchDiscarded, func(eventbus.DomainEvent) {
			StaleResultsTotal.Inc()
		}),
		bus.Subscribe(eventbus.EventWindowExtended, func(eventbus.DomainEvent) {
			WindowExtensionsTotal.Inc()
		}),
		bus.Subscribe(eventbus.EventLinkOpened, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.LinkOpenedEvent)
			if !ok {
				return
			}
			status := "ok"
			if ev.Err != nil {
				status = "error"
			}
			LinksOpenedTotal.WithLabelValues(status).Inc()
		}),
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

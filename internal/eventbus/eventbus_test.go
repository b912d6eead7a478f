package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInOrder(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	var terms []string
	b.Subscribe(EventSearchSubmitted, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		terms = append(terms, e.(SearchSubmittedEvent).Term)
	})

	b.Publish(SearchSubmittedEvent{Term: "dune"})
	b.Publish(SearchSubmittedEvent{Term: "emma"})
	b.Publish(SearchCompletedEvent{Term: "ignored"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(terms) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"dune", "emma"}, terms)
}

func TestUnsubscribe(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	first, second := 0, 0
	unsubscribe := b.Subscribe(EventSearchFailed, func(DomainEvent) {
		mu.Lock()
		first++
		mu.Unlock()
	})
	b.Subscribe(EventSearchFailed, func(DomainEvent) {
		mu.Lock()
		second++
		mu.Unlock()
	})

	unsubscribe()
	b.Publish(SearchFailedEvent{Term: "dune"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return second == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, first)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New(nil)
	defer b.Close()

	done := make(chan struct{})
	b.Subscribe(EventLinkOpened, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventWindowExtended, func(DomainEvent) { close(done) })

	b.Publish(LinkOpenedEvent{URL: "https://x"})
	b.Publish(WindowExtendedEvent{Visible: 24, Total: 30})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher stopped after handler panic")
	}
}

func TestPublishAfterCloseDoesNotBlock(t *testing.T) {
	b := New(nil)
	b.Close()
	b.Close()

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Publish(ValidationFailedEvent{Message: "late"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after close")
	}
}

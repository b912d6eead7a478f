package metrics

import (
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booksearch/internal/eventbus"
)

func TestSubscribeCountsBusEvents(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	unsubscribe := Subscribe(bus)
	defer unsubscribe()

	results := testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeResults))
	failed := testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeFailed))
	invalid := testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeInvalid))
	stale := testutil.ToFloat64(StaleResultsTotal)
	extended := testutil.ToFloat64(WindowExtensionsTotal)
	linkErrors := testutil.ToFloat64(LinksOpenedTotal.WithLabelValues("error"))

	bus.Publish(eventbus.SearchCompletedEvent{Term: "dune", Results: 3, Seconds: 0.2})
	bus.Publish(eventbus.SearchFailedEvent{Term: "dune", Err: errors.New("boom"), Seconds: 0.1})
	bus.Publish(eventbus.ValidationFailedEvent{Message: "empty search term"})
	bus.Publish(eventbus.SearchDiscardedEvent{Term: "old"})
	bus.Publish(eventbus.WindowExtendedEvent{Visible: 24, Total: 30})
	bus.Publish(eventbus.LinkOpenedEvent{URL: "https://x", Err: errors.New("no browser")})

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(LinksOpenedTotal.WithLabelValues("error")) == linkErrors+1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, results+1, testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeResults)))
	assert.Equal(t, failed+1, testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, invalid+1, testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, stale+1, testutil.ToFloat64(StaleResultsTotal))
	assert.Equal(t, extended+1, testutil.ToFloat64(WindowExtensionsTotal))
}

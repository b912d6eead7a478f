package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Search outcomes used as the "outcome" label
const (
	OutcomeResults = "results"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_searches_total",
		Help: "Searches submitted, by outcome",
	}, []string{"outcome"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "booksearch_search_duration_seconds",
		Help:    "Duration of Open Library search requests in seconds",
		Buckets: prometheus.DefBuckets,
	})

	StaleResultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booksearch_stale_results_total",
		Help: "Search responses discarded because a newer search superseded them",
	})

	WindowExtensionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booksearch_window_extensions_total",
		Help: "Completed load-more window extensions",
	})

	LinksOpenedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_links_opened_total",
		Help: "Outbound URLs handed to the system opener",
	}, []string{"status"})
)

// Serve exposes /metrics on addr until ctx is cancelled
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("metrics: listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "serve metrics on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

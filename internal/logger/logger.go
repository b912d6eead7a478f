package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/sirupsen/logrus"
)

type ctxKey string

// SearchIDKey carries the correlation id of one search through its context
const SearchIDKey ctxKey = "searchId"

// SlowThreshold marks tracked calls that should be logged as slow
const SlowThreshold = 2 * time.Second

// Setup points the standard logger at path with the given level.
// The terminal belongs to the UI, so an empty path discards output.
// The returned closer releases the log file.
func Setup(path, level string) (io.Closer, error) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}
	logrus.SetLevel(lvl)

	if path == "" {
		logrus.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return nil, errors.Wrapf(err, "open log file %s", path)
	}
	logrus.SetOutput(f)
	return f, nil
}

// For returns an entry tagged with the search id found in ctx, if any
func For(ctx context.Context) *logrus.Entry {
	id, ok := ctx.Value(SearchIDKey).(string)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("search_id", id)
}

// ContextWithID attaches a search id to ctx
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SearchIDKey, id)
}

// IDFrom returns the search id stored in ctx, or ""
func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(SearchIDKey).(string)
	return id
}

// Track logs how long the call took once the returned func runs
func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())

		if dur > SlowThreshold {
			entry.Warnf("%s completed (SLOW)", msg)
		} else {
			entry.Debugf("%s completed", msg)
		}
	}
}

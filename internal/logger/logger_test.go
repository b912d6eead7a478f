package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCarriesSearchID(t *testing.T) {
	ctx := ContextWithID(context.Background(), "abc-123")

	assert.Equal(t, "abc-123", For(ctx).Data["search_id"])
	assert.Equal(t, "abc-123", IDFrom(ctx))
	assert.Empty(t, For(context.Background()).Data)
	assert.Empty(t, IDFrom(context.Background()))
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booksearch.log")
	closer, err := Setup(path, "debug")
	require.NoError(t, err)
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})

	For(ContextWithID(context.Background(), "s-1")).Info("search started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "search started")
	assert.Contains(t, string(data), "search_id=s-1")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup("", "chatty")
	require.Error(t, err)
}

package state

import (
	"fmt"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booksearch/internal/domain"
)

func records(n int) []domain.BookRecord {
	out := make([]domain.BookRecord, n)
	for i := range out {
		out[i] = domain.BookRecord{Title: fmt.Sprintf("Book %d", i+1)}
	}
	return out
}

func settled(t *testing.T, n int) *AppState {
	t.Helper()
	s := NewAppState(12)
	tok, err := s.BeginSearch("dune")
	require.NoError(t, err)
	require.True(t, s.CompleteSearch(tok, records(n)))
	return s
}

func TestNewAppStateIsIdle(t *testing.T) {
	s := NewAppState(0)
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, WindowNone, s.Window())
	assert.Empty(t, s.Visible())
	assert.False(t, s.CanLoadMore())
}

func TestBeginSearchRejectsBlankTerm(t *testing.T) {
	for _, term := range []string{"", "   ", "\t\n"} {
		s := NewAppState(12)
		s.SetQuery(term)
		before := *s

		_, err := s.BeginSearch(term)
		require.True(t, errors.Is(err, ErrEmptyTerm))
		assert.Equal(t, before, *s, "blank term must not mutate state")
	}
}

func TestCompleteSearchResetsWindow(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		wantVisible int
		wantPhase   Phase
		wantWindow  WindowState
	}{
		{"none", 0, 0, PhaseEmpty, WindowNone},
		{"fewer than a page", 5, 5, PhasePopulated, WindowFull},
		{"exactly a page", 12, 12, PhasePopulated, WindowFull},
		{"more than a page", 30, 12, PhasePopulated, WindowPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAppState(12)
			s.SetQuery("dune")
			tok, err := s.BeginSearch("dune")
			require.NoError(t, err)
			assert.Equal(t, PhaseSearching, s.Phase())

			require.True(t, s.CompleteSearch(tok, records(tt.n)))
			assert.Equal(t, tt.wantVisible, s.VisibleCount)
			assert.Equal(t, tt.wantPhase, s.Phase())
			assert.Equal(t, tt.wantWindow, s.Window())
			assert.Equal(t, "dune", s.LastSearchedTerm)
			assert.Empty(t, s.QueryText)
			assert.False(t, s.Searching)
		})
	}
}

func TestCompleteSearchNilRecordsIsEmpty(t *testing.T) {
	s := NewAppState(12)
	tok, _ := s.BeginSearch("zzqx")
	require.True(t, s.CompleteSearch(tok, nil))
	assert.NotNil(t, s.Results)
	assert.Equal(t, PhaseEmpty, s.Phase())
}

func TestStaleSearchIsDiscarded(t *testing.T) {
	s := NewAppState(12)
	first, _ := s.BeginSearch("a")
	second, _ := s.BeginSearch("b")

	assert.False(t, s.CompleteSearch(first, records(30)))
	assert.True(t, s.Searching)
	assert.Empty(t, s.Results)

	assert.True(t, s.CompleteSearch(second, records(3)))
	assert.Equal(t, "b", s.LastSearchedTerm)
	assert.Len(t, s.Results, 3)

	// A late failure of the superseded search changes nothing either
	assert.False(t, s.FailSearch(first))
	assert.Len(t, s.Results, 3)
}

func TestFailSearchKeepsQueryAndTerm(t *testing.T) {
	s := settled(t, 20)
	s.SetQuery("brokn")
	tok, _ := s.BeginSearch("brokn")

	require.True(t, s.FailSearch(tok))
	assert.Equal(t, PhaseEmpty, s.Phase())
	assert.Equal(t, 0, s.VisibleCount)
	assert.Equal(t, "brokn", s.QueryText)
	assert.Equal(t, "dune", s.LastSearchedTerm)
}

func TestExtendWindow(t *testing.T) {
	s := settled(t, 30)

	tok, ok := s.BeginExtend()
	require.True(t, ok)
	assert.Equal(t, WindowExtending, s.Window())

	_, again := s.BeginExtend()
	assert.False(t, again, "only one extension may be pending")

	require.True(t, s.CompleteExtend(tok))
	assert.Equal(t, 24, s.VisibleCount)
	assert.Equal(t, WindowPartial, s.Window())

	tok, ok = s.BeginExtend()
	require.True(t, ok)
	require.True(t, s.CompleteExtend(tok))
	assert.Equal(t, 30, s.VisibleCount)
	assert.Equal(t, WindowFull, s.Window())

	_, ok = s.BeginExtend()
	assert.False(t, ok, "nothing left to reveal")
}

func TestExtendNotAllowedOutsidePopulated(t *testing.T) {
	s := NewAppState(12)
	_, ok := s.BeginExtend()
	assert.False(t, ok)

	s = settled(t, 0)
	_, ok = s.BeginExtend()
	assert.False(t, ok)
}

func TestNewSearchInvalidatesPendingExtend(t *testing.T) {
	s := settled(t, 30)
	ext, ok := s.BeginExtend()
	require.True(t, ok)

	tok, err := s.BeginSearch("emma")
	require.NoError(t, err)
	assert.False(t, s.LoadingMore)

	require.True(t, s.CompleteSearch(tok, records(30)))
	assert.False(t, s.CompleteExtend(ext), "late timer must not land")
	assert.Equal(t, 12, s.VisibleCount)
}

func TestVisibleCountInvariant(t *testing.T) {
	s := settled(t, 25)
	for i := 0; i < 5; i++ {
		if tok, ok := s.BeginExtend(); ok {
			s.CompleteExtend(tok)
		}
		assert.GreaterOrEqual(t, s.VisibleCount, 0)
		assert.LessOrEqual(t, s.VisibleCount, len(s.Results))
		assert.Equal(t, s.VisibleCount == len(s.Results), !s.HasMore())
	}
	assert.Equal(t, 25, s.VisibleCount)
}

func TestSelection(t *testing.T) {
	s := settled(t, 5)
	s.SetSelected(10)
	assert.Equal(t, 4, s.SelectedIndex)
	s.SetSelected(-3)
	assert.Equal(t, 0, s.SelectedIndex)

	rec, ok := s.SelectedRecord()
	require.True(t, ok)
	assert.Equal(t, "Book 1", rec.Title)

	_, ok = NewAppState(12).SelectedRecord()
	assert.False(t, ok)
}

func TestNotice(t *testing.T) {
	s := NewAppState(12)
	assert.False(t, s.HasNotice())
	s.ShowNotice("Please fill the field")
	assert.True(t, s.HasNotice())
	s.DismissNotice()
	assert.False(t, s.HasNotice())
}

package state

import (
	"strings"

	"github.com/Laisky/errors/v2"

	"booksearch/internal/domain"
)

// DefaultPageSize is the window step used when none is configured
const DefaultPageSize = 12

// ErrEmptyTerm is returned when a search is submitted with a blank query
var ErrEmptyTerm = errors.New("empty search term")

// Token identifies the latest search or window extension.
// Tokens only ever increase; anything carrying an older token is stale.
type Token uint64

// Phase is the coarse search state
type Phase int

const (
	PhaseIdle      Phase = iota // nothing searched yet
	PhaseSearching              // request in flight
	PhasePopulated              // last search settled with results
	PhaseEmpty                  // last search settled with nothing to show
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSearching:
		return "searching"
	case PhasePopulated:
		return "populated"
	case PhaseEmpty:
		return "empty"
	}
	return "unknown"
}

// WindowState is the sub-state of a populated result set
type WindowState int

const (
	WindowNone      WindowState = iota // not populated
	WindowPartial                      // more results remain hidden
	WindowExtending                    // load-more timer pending
	WindowFull                         // every result is visible
)

// AppState contains all the application state
type AppState struct {
	QueryText        string // current contents of the search field
	LastSearchedTerm string // term whose results are displayed

	Results  []domain.BookRecord // full result set of the last settled search
	Searched bool                // whether any search has settled

	VisibleCount int // length of the rendered prefix of Results
	PageSize     int

	Searching   bool
	LoadingMore bool

	// Selection state
	SelectedIndex  int // index into the visible results
	ViewportOffset int // first grid row on screen

	// UI state
	Notice        string // blocking validation notice, "" when none
	StatusMessage string

	pendingTerm string
	searchToken Token
	extendToken Token
}

// NewAppState creates a new application state
func NewAppState(pageSize int) *AppState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &AppState{PageSize: pageSize}
}

// Query operations

// SetQuery replaces the search field contents
func (s *AppState) SetQuery(text string) {
	s.QueryText = text
}

// Search transitions

// BeginSearch starts a search for term. A blank term returns ErrEmptyTerm and
// leaves the state untouched. Any pending window extension is cancelled.
func (s *AppState) BeginSearch(term string) (Token, error) {
	if strings.TrimSpace(term) == "" {
		return 0, ErrEmptyTerm
	}

	s.CancelExtend()
	s.searchToken++
	s.Searching = true
	s.pendingTerm = term
	s.StatusMessage = ""
	return s.searchToken, nil
}

// CompleteSearch stores the records of a finished search. It returns false and
// changes nothing when token is not the latest search.
func (s *AppState) CompleteSearch(token Token, records []domain.BookRecord) bool {
	if !s.isCurrentSearch(token) {
		return false
	}

	if records == nil {
		records = []domain.BookRecord{}
	}
	s.Results = records
	s.Searched = true
	s.LastSearchedTerm = s.pendingTerm
	s.QueryText = ""
	s.Searching = false
	s.resetWindow()
	return true
}

// FailSearch settles the latest search as having no results. The query text
// and the last searched term are kept.
func (s *AppState) FailSearch(token Token) bool {
	if !s.isCurrentSearch(token) {
		return false
	}

	s.Results = []domain.BookRecord{}
	s.Searched = true
	s.Searching = false
	s.resetWindow()
	return true
}

func (s *AppState) isCurrentSearch(token Token) bool {
	return s.Searching && token == s.searchToken
}

// Window transitions

// resetWindow shows the first page of Results
func (s *AppState) resetWindow() {
	s.VisibleCount = min(s.PageSize, len(s.Results))
	s.LoadingMore = false
	s.SelectedIndex = 0
	s.ViewportOffset = 0
}

// BeginExtend marks a window extension as pending. It returns false when the
// window cannot grow or an extension is already pending.
func (s *AppState) BeginExtend() (Token, bool) {
	if !s.CanLoadMore() {
		return 0, false
	}

	s.extendToken++
	s.LoadingMore = true
	return s.extendToken, true
}

// CompleteExtend reveals up to PageSize more results. Stale tokens are ignored.
func (s *AppState) CompleteExtend(token Token) bool {
	if !s.LoadingMore || token != s.extendToken {
		return false
	}

	s.VisibleCount = min(s.VisibleCount+s.PageSize, len(s.Results))
	s.LoadingMore = false
	return true
}

// CancelExtend drops any pending extension and invalidates its token
func (s *AppState) CancelExtend() {
	s.extendToken++
	s.LoadingMore = false
}

// ExtendToken returns the token of the latest extension
func (s *AppState) ExtendToken() Token {
	return s.extendToken
}

// Queries

// Phase reports the coarse search state
func (s *AppState) Phase() Phase {
	switch {
	case s.Searching:
		return PhaseSearching
	case !s.Searched:
		return PhaseIdle
	case s.VisibleCount == 0:
		return PhaseEmpty
	default:
		return PhasePopulated
	}
}

// Window reports the window sub-state of a populated result set
func (s *AppState) Window() WindowState {
	if s.Phase() != PhasePopulated {
		return WindowNone
	}
	switch {
	case s.LoadingMore:
		return WindowExtending
	case s.VisibleCount < len(s.Results):
		return WindowPartial
	default:
		return WindowFull
	}
}

// Visible returns the rendered prefix of Results
func (s *AppState) Visible() []domain.BookRecord {
	return s.Results[:s.VisibleCount]
}

// HasMore reports whether results remain beyond the window
func (s *AppState) HasMore() bool {
	return s.VisibleCount < len(s.Results)
}

// CanLoadMore reports whether a window extension may start now
func (s *AppState) CanLoadMore() bool {
	return s.Phase() == PhasePopulated && !s.LoadingMore && s.HasMore()
}

// SelectedRecord returns the highlighted card, if any
func (s *AppState) SelectedRecord() (domain.BookRecord, bool) {
	if s.Phase() != PhasePopulated || s.SelectedIndex < 0 || s.SelectedIndex >= s.VisibleCount {
		return domain.BookRecord{}, false
	}
	return s.Results[s.SelectedIndex], true
}

// SetSelected moves the selection, clamped to the visible results
func (s *AppState) SetSelected(index int) {
	if s.VisibleCount == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex = max(0, min(index, s.VisibleCount-1))
}

// Notice operations

// ShowNotice raises a blocking notice
func (s *AppState) ShowNotice(msg string) {
	s.Notice = msg
}

// DismissNotice clears the blocking notice
func (s *AppState) DismissNotice() {
	s.Notice = ""
}

// HasNotice reports whether a blocking notice is shown
func (s *AppState) HasNotice() bool {
	return s.Notice != ""
}

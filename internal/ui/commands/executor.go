package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"booksearch/internal/eventbus"
	"booksearch/internal/logger"
)

// Executor handles command execution and owns the cancellation of
// in-flight searches and pending window extensions
type Executor struct {
	ctx    *CommandContext
	parent context.Context

	cancelSearch context.CancelFunc
	cancelExtend context.CancelFunc
}

// NewExecutor creates a new command executor. Requests and timers derive
// from parent, so cancelling it stops all of them.
func NewExecutor(parent context.Context, cctx *CommandContext) *Executor {
	if parent == nil {
		parent = context.Background()
	}
	return &Executor{ctx: cctx, parent: parent}
}

// ExecuteSearch starts a search for term. A blank term returns
// state.ErrEmptyTerm and no command.
func (e *Executor) ExecuteSearch(term string) (tea.Cmd, error) {
	token, err := e.ctx.State.BeginSearch(term)
	if err != nil {
		logrus.WithField("query", term).Debug("search rejected: empty term")
		e.ctx.publish(eventbus.ValidationFailedEvent{Message: err.Error()})
		return nil, err
	}

	// A new search supersedes both the previous request and any pending load-more
	e.stopExtend()
	e.stopSearch()

	id := uuid.NewString()
	reqCtx, cancel := context.WithCancel(logger.ContextWithID(e.parent, id))
	e.cancelSearch = cancel

	logger.For(reqCtx).WithFields(logrus.Fields{
		"term":  term,
		"token": token,
	}).Info("search submitted")
	e.ctx.publish(eventbus.SearchSubmittedEvent{SearchID: id, Term: term, Token: uint64(token)})

	return NewSearchCommand(e.ctx, reqCtx, token, term).Execute(), nil
}

// ApplySearchResult folds a search outcome into the state. It returns false
// when the result belongs to a superseded search and was discarded.
func (e *Executor) ApplySearchResult(msg SearchResultMsg) bool {
	entry := logger.For(logger.ContextWithID(context.Background(), msg.SearchID)).
		WithField("term", msg.Term)

	var applied bool
	if msg.Err != nil {
		applied = e.ctx.State.FailSearch(msg.Token)
	} else {
		applied = e.ctx.State.CompleteSearch(msg.Token, msg.Records)
	}

	if !applied {
		entry.WithField("token", msg.Token).Debug("discarding stale search result")
		e.ctx.publish(eventbus.SearchDiscardedEvent{SearchID: msg.SearchID, Term: msg.Term})
		return false
	}

	e.stopSearch()

	if msg.Err != nil {
		entry.WithError(msg.Err).Error("search failed")
		e.ctx.publish(eventbus.SearchFailedEvent{
			SearchID: msg.SearchID,
			Term:     msg.Term,
			Err:      msg.Err,
			Seconds:  msg.Elapsed.Seconds(),
		})
		return true
	}

	entry.WithFields(logrus.Fields{
		"results":  len(msg.Records),
		"duration": msg.Elapsed.String(),
	}).Info("search completed")
	e.ctx.publish(eventbus.SearchCompletedEvent{
		SearchID: msg.SearchID,
		Term:     msg.Term,
		Results:  len(msg.Records),
		Seconds:  msg.Elapsed.Seconds(),
	})
	return true
}

// ExecuteExtend starts the load-more timer, or returns nil when the window
// cannot grow right now
func (e *Executor) ExecuteExtend() tea.Cmd {
	token, ok := e.ctx.State.BeginExtend()
	if !ok {
		return nil
	}

	e.stopExtend()
	timerCtx, cancel := context.WithCancel(e.parent)
	e.cancelExtend = cancel

	logrus.WithField("token", token).Debug("window extension started")
	return NewExtendWindowCommand(timerCtx, token, e.ctx.LoadMoreDelay).Execute()
}

// ApplyWindowExtended reveals the next page unless the timer was superseded
func (e *Executor) ApplyWindowExtended(msg WindowExtendedMsg) bool {
	if !e.ctx.State.CompleteExtend(msg.Token) {
		logrus.WithField("token", msg.Token).Debug("discarding stale window extension")
		return false
	}

	e.stopExtend()
	s := e.ctx.State
	e.ctx.publish(eventbus.WindowExtendedEvent{Visible: s.VisibleCount, Total: len(s.Results)})
	return true
}

// ExecuteOpen hands url to the system opener
func (e *Executor) ExecuteOpen(url string) tea.Cmd {
	return NewOpenURLCommand(e.ctx, url).Execute()
}

// ApplyLinkOpened records the outcome of an open
func (e *Executor) ApplyLinkOpened(msg LinkOpenedMsg) {
	entry := logrus.WithField("url", msg.URL)
	if msg.Err != nil {
		entry.WithError(msg.Err).Warn("failed to open link")
	} else {
		entry.Info("opened link")
	}
	e.ctx.publish(eventbus.LinkOpenedEvent{URL: msg.URL, Err: msg.Err})
}

// Shutdown cancels every in-flight request and timer
func (e *Executor) Shutdown() {
	e.stopSearch()
	e.stopExtend()
}

func (e *Executor) stopSearch() {
	if e.cancelSearch != nil {
		e.cancelSearch()
		e.cancelSearch = nil
	}
}

func (e *Executor) stopExtend() {
	if e.cancelExtend != nil {
		e.cancelExtend()
		e.cancelExtend = nil
	}
}

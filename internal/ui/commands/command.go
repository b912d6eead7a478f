package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"booksearch/internal/domain"
	"booksearch/internal/eventbus"
	"booksearch/internal/logger"
	"booksearch/internal/ui/state"
)

// Searcher fetches the records matching a term
type Searcher interface {
	Search(ctx context.Context, term string) ([]domain.BookRecord, error)
}

// URLOpener hands a URL to the system browser
type URLOpener interface {
	Open(url string) error
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State         *state.AppState
	Bus           eventbus.EventBus
	Searcher      Searcher
	Opener        URLOpener
	LoadMoreDelay time.Duration
}

func (c *CommandContext) publish(e eventbus.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(e)
	}
}

// SearchResultMsg carries the outcome of one search request
type SearchResultMsg struct {
	Token    state.Token
	SearchID string
	Term     string
	Records  []domain.BookRecord
	Err      error
	Elapsed  time.Duration
}

// WindowExtendedMsg is delivered when the load-more delay elapses
type WindowExtendedMsg struct {
	Token state.Token
}

// LinkOpenedMsg reports the result of handing a URL to the opener
type LinkOpenedMsg struct {
	URL string
	Err error
}

// SearchCommand runs one request against the Searcher
type SearchCommand struct {
	ctx      *CommandContext
	reqCtx   context.Context
	token    state.Token
	searchID string
	term     string
}

// NewSearchCommand creates a search command bound to reqCtx.
// reqCtx should carry the search id for log correlation.
func NewSearchCommand(ctx *CommandContext, reqCtx context.Context, token state.Token, term string) *SearchCommand {
	return &SearchCommand{
		ctx:      ctx,
		reqCtx:   reqCtx,
		token:    token,
		searchID: logger.IDFrom(reqCtx),
		term:     term,
	}
}

// Execute returns the tea.Cmd performing the request
func (c *SearchCommand) Execute() tea.Cmd {
	searcher := c.ctx.Searcher
	reqCtx, token, id, term := c.reqCtx, c.token, c.searchID, c.term

	return func() tea.Msg {
		start := time.Now()
		records, err := searcher.Search(reqCtx, term)
		return SearchResultMsg{
			Token:    token,
			SearchID: id,
			Term:     term,
			Records:  records,
			Err:      err,
			Elapsed:  time.Since(start),
		}
	}
}

// ExtendWindowCommand waits out the load-more delay
type ExtendWindowCommand struct {
	timerCtx context.Context
	token    state.Token
	delay    time.Duration
}

// NewExtendWindowCommand creates a timer that fires unless timerCtx is cancelled first
func NewExtendWindowCommand(timerCtx context.Context, token state.Token, delay time.Duration) *ExtendWindowCommand {
	return &ExtendWindowCommand{timerCtx: timerCtx, token: token, delay: delay}
}

// Execute returns the tea.Cmd running the timer. A cancelled timer yields no message.
func (c *ExtendWindowCommand) Execute() tea.Cmd {
	timerCtx, token, delay := c.timerCtx, c.token, c.delay

	return func() tea.Msg {
		t := time.NewTimer(delay)
		defer t.Stop()

		select {
		case <-t.C:
			return WindowExtendedMsg{Token: token}
		case <-timerCtx.Done():
			return nil
		}
	}
}

// OpenURLCommand hands one URL to the opener
type OpenURLCommand struct {
	ctx *CommandContext
	url string
}

// NewOpenURLCommand creates an open command
func NewOpenURLCommand(ctx *CommandContext, url string) *OpenURLCommand {
	return &OpenURLCommand{ctx: ctx, url: url}
}

// Execute returns the tea.Cmd launching the opener
func (c *OpenURLCommand) Execute() tea.Cmd {
	if c.url == "" || c.ctx.Opener == nil {
		return nil
	}
	opener, u := c.ctx.Opener, c.url

	return func() tea.Msg {
		return LinkOpenedMsg{URL: u, Err: opener.Open(u)}
	}
}

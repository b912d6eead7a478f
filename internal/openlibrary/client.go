package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"booksearch/internal/domain"
	"booksearch/internal/logger"
)

// DefaultSearchURL is the public Open Library search endpoint
const DefaultSearchURL = "https://openlibrary.org/search.json"

// maxBody caps how much of a response is read
const maxBody = 32 << 20

// Kind classifies a failed search
type Kind string

const (
	KindNetwork Kind = "network"
	KindStatus  Kind = "status"
	KindDecode  Kind = "decode"
)

// TransportError reports why a search produced no usable payload
type TransportError struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("openlibrary: unexpected status code %d", e.StatusCode)
	default:
		return fmt.Sprintf("openlibrary: %s error: %v", e.Kind, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Searcher fetches the records matching a term
type Searcher interface {
	Search(ctx context.Context, term string) ([]domain.BookRecord, error)
}

// Options configures a Client
type Options struct {
	SearchURL         string
	UserAgent         string
	RequestsPerSecond float64 // <= 0 disables limiting
	Timeout           time.Duration
	HTTPClient        *http.Client
}

// Client talks to the search.json endpoint
type Client struct {
	httpClient *http.Client
	searchURL  string
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a search client. Zero options fall back to defaults.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	searchURL := opts.SearchURL
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}

	return &Client{
		httpClient: hc,
		searchURL:  searchURL,
		userAgent:  opts.UserAgent,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// searchResponse matches the subset of search.json we read.
// Docs is a pointer so a missing field can be told apart from an empty list.
type searchResponse struct {
	NumFound int    `json:"numFound"`
	Docs     *[]doc `json:"docs"`
}

type doc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	CoverI     *int     `json:"cover_i"`
}

// Search issues one GET <search_url>?q=<term>. It never retries.
func (c *Client) Search(ctx context.Context, term string) ([]domain.BookRecord, error) {
	defer logger.Track(ctx, "openlibrary search")()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Kind: KindNetwork, Err: errors.Wrap(err, "wait for rate limiter")}
	}

	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, &TransportError{Kind: KindNetwork, Err: errors.Wrapf(err, "parse search url %q", c.searchURL)}
	}
	q := u.Query()
	q.Set("q", term)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Kind: KindNetwork, Err: errors.Wrap(err, "build request")}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	logger.For(ctx).WithField("url", u.String()).Debug("openlibrary: GET")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Kind: KindNetwork, Err: errors.Wrap(err, "do request")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &TransportError{Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	var res searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&res); err != nil {
		return nil, &TransportError{Kind: KindDecode, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode search response")}
	}
	if res.Docs == nil {
		return nil, &TransportError{Kind: KindDecode, StatusCode: resp.StatusCode, Err: errors.New("response has no docs field")}
	}

	records := make([]domain.BookRecord, 0, len(*res.Docs))
	for _, d := range *res.Docs {
		records = append(records, domain.BookRecord{
			Title:   d.Title,
			Authors: d.AuthorName,
			CoverID: d.CoverI,
		})
	}

	logger.For(ctx).WithFields(logrus.Fields{
		"num_found": res.NumFound,
		"docs":      len(records),
	}).Debug("openlibrary: decoded")

	return records, nil
}

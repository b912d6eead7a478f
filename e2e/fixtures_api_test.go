//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
)

// stubDoc mirrors one entry of search.json's docs array
type stubDoc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name,omitempty"`
	CoverI     *int     `json:"cover_i,omitempty"`
}

// StubAPI is an in-process stand-in for the Open Library search endpoint
type StubAPI struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
	results map[string][]stubDoc
}

// NewStubAPI serves results keyed by the q parameter; unknown terms get no docs.
// The term "fail" answers with a 500.
func NewStubAPI(t *testing.T) *StubAPI {
	t.Helper()
	s := &StubAPI{results: map[string][]stubDoc{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		s.mu.Lock()
		s.queries = append(s.queries, q)
		docs := s.results[q]
		s.mu.Unlock()

		if q == "fail" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if docs == nil {
			docs = []stubDoc{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"numFound": len(docs), "docs": docs})
	}))
	t.Cleanup(s.Close)
	return s
}

// SetBooks registers n numbered books for term, every third one without a cover
func (s *StubAPI) SetBooks(term string, n int) {
	docs := make([]stubDoc, n)
	for i := range docs {
		docs[i] = stubDoc{
			Title:      fmt.Sprintf("Stub Book %02d", i+1),
			AuthorName: []string{"Ann Author"},
		}
		if i%3 != 2 {
			id := 1000 + i
			docs[i].CoverI = &id
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[term] = docs
}

// Queries returns the q values received so far
func (s *StubAPI) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// SearchURL is the endpoint to pass as --api-url
func (s *StubAPI) SearchURL() string {
	return s.URL + "/search.json"
}

// CreateTestWorkspace creates an isolated home and working directory
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir, err := os.MkdirTemp("", "booksearch-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = tmpDir
	return tmpDir, nil
}

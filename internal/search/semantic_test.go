// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/research-hunter/internal/httputil"
	"github.com/pdiddy/research-hunter/pkg/types"
)

func init() {
	// Keep 429 backoff waits out of test runtime.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults:        25,
		RequestsPerSecond: 1000, // no throttling in tests
		CacheTTL:          time.Minute,
	}
}

func withTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	t.Cleanup(func() { semanticAPIBase = old })

	c := NewClient(testCfg())
	c.httpClient = ts.Client()
	return c
}

const emptyResponse = `{"total":0,"offset":0,"data":[]}`

// --- Request construction ---

func TestSearchRequestParams(t *testing.T) {
	var captured *http.Request
	c := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, emptyResponse)
	})

	_, err := c.Search(context.Background(), "emotion regulation", Options{
		Limit:    15,
		YearFrom: 2020,
		YearTo:   2023,
	}, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := captured.URL.Query()
	if got := q.Get("query"); got != "emotion regulation" {
		t.Errorf("query param = %q", got)
	}
	if got := q.Get("limit"); got != "15" {
		t.Errorf("limit param = %q, want 15", got)
	}
	if got := q.Get("year"); got != "2020-2023" {
		t.Errorf("year param = %q, want 2020-2023", got)
	}
	fields := q.Get("fields")
	for _, f := range []string{"title", "abstract", "venue", "year", "citationCount", "url", "authors", "externalIds"} {
		if !strings.Contains(fields, f) {
			t.Errorf("fields param %q missing %q", fields, f)
		}
	}
	if got := captured.Header.Get("User-Agent"); got != "test/0.1" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestSearchAPIKeyHeader(t *testing.T) {
	var gotKey string
	c := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, emptyResponse)
	})
	c.apiKey = "sk_test"

	if _, err := c.Search(context.Background(), "x", Options{}, nil); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotKey != "sk_test" {
		t.Errorf("x-api-key = %q, want sk_test", gotKey)
	}
}

// --- Response mapping ---

func TestSearchMapsPapers(t *testing.T) {
	c := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total":2,"offset":0,"data":[
			{"paperId":"p1","title":"Paper One","abstract":"About things.","venue":"CHI",
			 "year":2023,"citationCount":42,"url":"https://example.org/p1",
			 "authors":[{"authorId":"a1","name":"Ada Lovelace"},{"authorId":"a2","name":"Alan Turing"}],
			 "externalIds":{"ArXiv":"2301.07041","DOI":"10.1/abc"}},
			{"paperId":"p2","title":"Paper Two","externalIds":{"DOI":"10.2/def"}}
		]}`)
	})

	papers, err := c.Search(context.Background(), "x", Options{Limit: 10}, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	p := papers[0]
	if p.ID != "2301.07041" {
		t.Errorf("ID = %q, want arXiv ID preferred", p.ID)
	}
	if p.Title != "Paper One" || p.Venue != "CHI" || p.Year != 2023 || p.CitationCount != 42 {
		t.Errorf("mapped paper = %+v", p)
	}
	if p.AuthorsLine() != "Ada Lovelace, Alan Turing" {
		t.Errorf("authors = %q", p.AuthorsLine())
	}
	if p.Source != "semantic_scholar" {
		t.Errorf("source = %q", p.Source)
	}
	if papers[1].ID != "10.2/def" {
		t.Errorf("second ID = %q, want DOI fallback", papers[1].ID)
	}
	if papers[1].Year != 0 || papers[1].CitationCount != 0 {
		t.Errorf("missing fields should load as zero: %+v", papers[1])
	}
}

// --- Paging ---

func TestSearchPagesUntilLimit(t *testing.T) {
	var offsets []string
	c := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("offset"))
		offset := r.URL.Query().Get("offset")
		var rows []string
		start := 0
		if offset == "100" {
			start = 100
		}
		for i := start; i < start+100 && i < 150; i++ {
			rows = append(rows, fmt.Sprintf(`{"paperId":"p%d","title":"t%d"}`, i, i))
		}
		fmt.Fprintf(w, `{"total":150,"offset":%s,"data":[%s]}`, offset, strings.Join(rows, ","))
	})

	papers, err := c.Search(context.Background(), "x", Options{Limit: 150}, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 150 {
		t.Errorf("len(papers) = %d, want 150", len(papers))
	}
	if len(offsets) != 2 || offsets[0] != "0" || offsets[1] != "100" {
		t.Errorf("offsets = %v, want [0 100]", offsets)
	}
}

// --- Caching ---

func TestSearchCachesIdenticalQueries(t *testing.T) {
	var calls int32
	c := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"total":1,"offset":0,"data":[{"paperId":"p1","title":"t"}]}`)
	})

	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), "cached", Options{Limit: 5}, nil); err != nil {
			t.Fatalf("Search: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("API calls = %d, want 1 (served from cache)", got)
	}

	// A different query misses the cache.
	if _, err := c.Search(context.Background(), "other", Options{Limit: 5}, nil); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("API calls = %d, want 2", got)
	}
}

// --- Errors ---

func TestSearchEmptyQuery(t *testing.T) {
	c := NewClient(testCfg())
	if _, err := c.Search(context.Background(), "   ", Options{}, nil); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestSearchRateLimitMessage(t *testing.T) {
	c := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "x", Options{}, nil)
	if err == nil || !strings.Contains(err.Error(), "SEMANTIC_SCHOLAR_API_KEY") {
		t.Errorf("err = %v, want guidance to set SEMANTIC_SCHOLAR_API_KEY", err)
	}
}

func TestSearchServerError(t *testing.T) {
	c := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.Search(context.Background(), "x", Options{}, nil); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestYearRange(t *testing.T) {
	tests := []struct {
		from, to int
		want     string
	}{
		{2020, 2023, "2020-2023"},
		{2020, 0, "2020-"},
		{0, 2023, "-2023"},
		{0, 0, ""},
	}
	for _, tt := range tests {
		if got := yearRange(tt.from, tt.to); got != tt.want {
			t.Errorf("yearRange(%d,%d) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}

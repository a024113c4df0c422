// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the Semantic Scholar Graph API and materializes
// candidate papers. It owns all network concerns — paging, rate limiting,
// retry on 429 — and hands fully-populated Paper records to the scorer,
// which never touches the network.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/pdiddy/research-hunter/internal/httputil"
	"github.com/pdiddy/research-hunter/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,venue,year,citationCount,url,authors,externalIds"

// pageSize is the Graph API's maximum page size for paper search.
const pageSize = 100

// Options narrows a search beyond the free-text query.
type Options struct {
	// Limit caps the number of papers fetched; 0 means the configured
	// default.
	Limit int

	// YearFrom/YearTo restrict the publication year range; 0 means open.
	YearFrom int
	YearTo   int
}

// Client queries the Semantic Scholar Graph API.
type Client struct {
	httpClient *http.Client
	userAgent  string
	apiKey     string
	limiter    *rate.Limiter
	cache      *gocache.Cache
}

// NewClient builds a Client from the search config. Without an API key the
// public Graph API allows roughly one request per second, so requests are
// throttled; identical queries within the cache TTL are served from memory.
func NewClient(cfg types.SearchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cache:      gocache.New(ttl, 2*ttl),
	}
}

// Search fetches up to opts.Limit papers matching the free-text query,
// paging through the API as needed. Warnings and retry progress go to w.
func (c *Client) Search(ctx context.Context, query string, opts Options, w io.Writer) ([]types.Paper, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if w == nil {
		w = io.Discard
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 25
	}

	cacheKey := fmt.Sprintf("%s|%d|%d|%d", query, limit, opts.YearFrom, opts.YearTo)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]types.Paper), nil
	}

	var papers []types.Paper
	for offset := 0; len(papers) < limit; {
		page, total, err := c.fetchPage(ctx, query, opts, offset, min(pageSize, limit-len(papers)), w)
		if err != nil {
			return nil, err
		}
		papers = append(papers, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
	}
	if len(papers) > limit {
		papers = papers[:limit]
	}

	c.cache.Set(cacheKey, papers, gocache.DefaultExpiration)
	return papers, nil
}

func (c *Client) fetchPage(ctx context.Context, query string, opts Options, offset, limit int, w io.Writer) ([]types.Paper, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	params := url.Values{
		"query":  {query},
		"offset": {fmt.Sprintf("%d", offset)},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {semanticFields},
	}
	if yr := yearRange(opts.YearFrom, opts.YearTo); yr != "" {
		params.Set("year", yr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0, w)
	if err != nil {
		return nil, 0, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, 0, fmt.Errorf("Semantic Scholar rate limit hit (HTTP 429): set SEMANTIC_SCHOLAR_API_KEY to increase limits, or retry later")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, 0, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	papers := make([]types.Paper, 0, len(sr.Data))
	for _, sp := range sr.Data {
		papers = append(papers, sp.toPaper())
	}
	return papers, sr.Total, nil
}

// yearRange returns a Graph API year filter string (e.g. "2020-2023").
func yearRange(from, to int) string {
	switch {
	case from > 0 && to > 0:
		return fmt.Sprintf("%d-%d", from, to)
	case from > 0:
		return fmt.Sprintf("%d-", from)
	case to > 0:
		return fmt.Sprintf("-%d", to)
	default:
		return ""
	}
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Abstract      string              `json:"abstract"`
	Venue         string              `json:"venue"`
	Year          int                 `json:"year"`
	CitationCount int                 `json:"citationCount"`
	URL           string              `json:"url"`
	Authors       []semanticAuthor    `json:"authors"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}

func (sp semanticPaper) toPaper() types.Paper {
	p := types.Paper{
		Title:         sp.Title,
		Abstract:      sp.Abstract,
		Venue:         sp.Venue,
		Year:          sp.Year,
		CitationCount: sp.CitationCount,
		URL:           sp.URL,
		Source:        "semantic_scholar",
	}
	for _, a := range sp.Authors {
		p.Authors = append(p.Authors, a.Name)
	}

	// Canonical ID: prefer arXiv ID, then DOI, then the provider's own ID.
	switch {
	case sp.ExternalIDs.ArXiv != "":
		p.ID = sp.ExternalIDs.ArXiv
	case sp.ExternalIDs.DOI != "":
		p.ID = sp.ExternalIDs.DOI
	default:
		p.ID = sp.PaperID
	}
	return p
}

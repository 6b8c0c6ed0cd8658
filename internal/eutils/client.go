// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils is a thin client for the NCBI E-utilities endpoints the
// gateway depends on: esearch (count and history session), esummary (summary
// documents scoped by a history session), and efetch (full records as XML).
package eutils

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-gateway/internal/httputil"
)

// DefaultBaseURL is the public E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Operation names reported in upstream errors.
const (
	OpSearch      = "ESearch"
	OpSearchCount = "ESearch (count only)"
	OpSummary     = "ESummary"
	OpFetch       = "EFetch"
)

// Client issues E-utilities requests. It holds no per-search state: history
// sessions are identified solely by the WebEnv/query_key pair the caller
// passes in.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	email      string
	tool       string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAPIKey sends api_key with every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithContact sends the email and tool parameters NCBI asks callers to set.
func WithContact(email, tool string) ClientOption {
	return func(c *Client) {
		c.email = email
		c.tool = tool
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new E-utilities client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchParams selects either a fresh search (Term set) or a count refresh of
// an existing history session (WebEnv and QueryKey set).
type SearchParams struct {
	Database string
	Term     string
	WebEnv   string
	QueryKey string
}

// Search runs esearch with retmax=0, so only the count and the history
// session come back. A fresh search enables usehistory; a session replay
// passes WebEnv/query_key through untouched.
func (c *Client) Search(ctx context.Context, p SearchParams) (SearchResult, error) {
	params := url.Values{}
	params.Set("db", p.Database)
	op := OpSearch
	if p.WebEnv != "" && p.QueryKey != "" {
		op = OpSearchCount
		params.Set("WebEnv", p.WebEnv)
		params.Set("query_key", p.QueryKey)
	} else {
		params.Set("term", p.Term)
		params.Set("usehistory", "y")
	}
	params.Set("retmax", "0")
	params.Set("retmode", "json")

	body, err := c.get(ctx, op, "esearch.fcgi", params)
	if err != nil {
		return SearchResult{}, err
	}
	return decodeSearch(body)
}

// SummaryParams addresses a window of a history session.
type SummaryParams struct {
	Database string
	WebEnv   string
	QueryKey string
	RetStart int
	RetMax   int
}

// Summary runs esummary over the session window [RetStart, RetStart+RetMax).
func (c *Client) Summary(ctx context.Context, p SummaryParams) (SummaryResult, error) {
	params := url.Values{}
	params.Set("db", p.Database)
	params.Set("WebEnv", p.WebEnv)
	params.Set("query_key", p.QueryKey)
	params.Set("retstart", strconv.Itoa(p.RetStart))
	params.Set("retmax", strconv.Itoa(p.RetMax))
	params.Set("retmode", "json")

	body, err := c.get(ctx, OpSummary, "esummary.fcgi", params)
	if err != nil {
		return SummaryResult{}, err
	}
	return decodeSummary(body)
}

// Fetch runs efetch for ids and returns the raw XML document. efetch has no
// JSON mode for PubMed records.
func (c *Client) Fetch(ctx context.Context, database string, ids []string) ([]byte, error) {
	params := url.Values{}
	params.Set("db", database)
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	return c.get(ctx, OpFetch, "efetch.fcgi", params)
}

func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.email != "" {
		params.Set("email", c.email)
	}
	if c.tool != "" {
		params.Set("tool", c.tool)
	}
	return httputil.Get(ctx, c.httpClient, op, c.baseURL+"/"+endpoint, params, c.userAgent)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-gateway:
// page requests and responses for the paginated search, resume parameters,
// summary and detail records, configuration, and the error taxonomy.
package types

import (
	"net/url"
	"strconv"
)

// DefaultDatabase is the E-utilities database queried when the caller names none.
const DefaultDatabase = "pubmed"

// Literal fallbacks substituted for absent upstream fields. Callers rely on
// these exact strings.
const (
	FallbackSummaryTitle   = "No title available"
	FallbackSummaryYear    = "Unknown"
	FallbackSummaryAuthors = "Author information not available"
	FallbackAbstract       = "No abstract available"
	NotAvailable           = "Not available"
)

// PageRequest asks for one page of a search. Either Term is set (fresh
// search) or both SessionToken and QueryKey are set (resumed search).
type PageRequest struct {
	Database     string
	Term         string
	SessionToken string
	QueryKey     string
	Limit        int
	Offset       int
}

// Resumed reports whether the request replays an existing upstream session.
func (r PageRequest) Resumed() bool {
	return r.SessionToken != "" && r.QueryKey != ""
}

// SummaryRecord is the lightweight metadata shown for one search hit.
type SummaryRecord struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Year    string `json:"year" yaml:"year"`
	Authors string `json:"authors" yaml:"authors"`
	URL     string `json:"url" yaml:"url"`
}

// ResumeParams carries everything needed to replay a page: the upstream
// session pair, the window, the count observed with the page, and the
// original term when there was one. It round-trips through a URL query.
type ResumeParams struct {
	Database     string `json:"db" yaml:"db"`
	Term         string `json:"term,omitempty" yaml:"term,omitempty"`
	SessionToken string `json:"webenv" yaml:"webenv"`
	QueryKey     string `json:"query_key" yaml:"query_key"`
	Limit        int    `json:"limit" yaml:"limit"`
	Offset       int    `json:"offset" yaml:"offset"`
	Total        int    `json:"total" yaml:"total"`
}

// Values encodes the parameters under the inbound query names.
func (p ResumeParams) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(p.Limit))
	v.Set("offset", strconv.Itoa(p.Offset))
	v.Set("webenv", p.SessionToken)
	v.Set("query_key", p.QueryKey)
	v.Set("total", strconv.Itoa(p.Total))
	if p.Database != "" {
		v.Set("db", p.Database)
	}
	if p.Term != "" {
		v.Set("term", p.Term)
	}
	return v
}

// PageRequest converts the parameters back into a request for the page they
// describe.
func (p ResumeParams) PageRequest() PageRequest {
	return PageRequest{
		Database:     p.Database,
		Term:         p.Term,
		SessionToken: p.SessionToken,
		QueryKey:     p.QueryKey,
		Limit:        p.Limit,
		Offset:       p.Offset,
	}
}

// PageResponse is one page of summary records plus continuation state.
// Count is always the count returned by the upstream with this page.
type PageResponse struct {
	Results  []SummaryRecord `json:"results" yaml:"results"`
	Count    int             `json:"count" yaml:"count"`
	WebEnv   string          `json:"webenv" yaml:"webenv"`
	QueryKey string          `json:"query_key" yaml:"query_key"`
	Next     *ResumeParams   `json:"next_params" yaml:"next_params"`
	Previous *ResumeParams   `json:"previous_params" yaml:"previous_params"`
}

// DetailRecord is the normalized metadata of one article. Every field has a
// fallback, so no field is ever empty.
type DetailRecord struct {
	PMID            string   `json:"pmid" yaml:"pmid"`
	Title           string   `json:"title" yaml:"title"`
	Abstract        string   `json:"abstract" yaml:"abstract"`
	Authors         []string `json:"authors" yaml:"authors"`
	Journal         string   `json:"journal" yaml:"journal"`
	PublicationYear string   `json:"publication_year" yaml:"publication_year"`
	MeshTerms       []string `json:"mesh_terms" yaml:"mesh_terms"`
}

// DetailResult holds either a normalized record or the reason the article
// could not be normalized. In JSON it renders as the bare record or as
// {"error": "..."}.
type DetailResult struct {
	*DetailRecord
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the result carries a record.
func (r DetailResult) OK() bool { return r.DetailRecord != nil }

// MarshalYAML renders the result the same way it renders in JSON.
func (r DetailResult) MarshalYAML() (any, error) {
	if r.DetailRecord == nil {
		return map[string]string{"error": r.Error}, nil
	}
	return r.DetailRecord, nil
}

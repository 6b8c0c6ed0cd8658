// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paginate pages through an E-utilities search using the upstream
// history server. A fresh search is executed once with usehistory enabled;
// the WebEnv/query_key pair it returns is handed back to the caller inside
// resume parameters and replayed verbatim for every later page. The gateway
// keeps no state of its own between pages.
package paginate

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-gateway/internal/eutils"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// PubMedURLBase is the prefix of the public link built for every record.
const PubMedURLBase = "https://pubmed.ncbi.nlm.nih.gov/"

// DefaultLimit is the page size when a request sets none.
const DefaultLimit = 5

// Upstream is the subset of the E-utilities client used for paging.
type Upstream interface {
	Search(ctx context.Context, p eutils.SearchParams) (eutils.SearchResult, error)
	Summary(ctx context.Context, p eutils.SummaryParams) (eutils.SummaryResult, error)
}

// Validate checks the invariants of a page request: a term or a complete
// session pair, a positive limit, and a non-negative offset.
func Validate(req types.PageRequest) error {
	if req.Limit <= 0 || req.Offset < 0 {
		return types.Validationf("Invalid 'limit' or 'offset'")
	}
	if !req.Resumed() && strings.TrimSpace(req.Term) == "" {
		return types.Validationf("Missing 'term' parameter")
	}
	return nil
}

// Paginate returns one page of summary records. It always issues a count
// call first (a fresh search, or a count refresh of the session) because the
// upstream index is live and the count can change between pages, then a
// summary call over [Offset, Offset+Limit) of the session. The summary call
// is skipped only when the upstream returned no session to scope it by.
func Paginate(ctx context.Context, up Upstream, req types.PageRequest) (types.PageResponse, error) {
	if err := Validate(req); err != nil {
		return types.PageResponse{}, err
	}
	if req.Database == "" {
		req.Database = types.DefaultDatabase
	}

	webEnv, queryKey := req.SessionToken, req.QueryKey
	search := eutils.SearchParams{Database: req.Database}
	if req.Resumed() {
		search.WebEnv, search.QueryKey = webEnv, queryKey
	} else {
		search.Term = req.Term
	}

	sr, err := up.Search(ctx, search)
	if err != nil {
		return types.PageResponse{}, err
	}
	total := sr.Count
	if !req.Resumed() {
		webEnv, queryKey = sr.WebEnv, sr.QueryKey
	}

	resp := types.PageResponse{
		Results:  []types.SummaryRecord{},
		Count:    total,
		WebEnv:   webEnv,
		QueryKey: queryKey,
	}
	resp.Next, resp.Previous = resumeParams(req, total, webEnv, queryKey)

	// Without a session there is nothing to summarize.
	if webEnv == "" || queryKey == "" {
		return resp, nil
	}

	sum, err := up.Summary(ctx, eutils.SummaryParams{
		Database: req.Database,
		WebEnv:   webEnv,
		QueryKey: queryKey,
		RetStart: req.Offset,
		RetMax:   req.Limit,
	})
	if err != nil {
		return types.PageResponse{}, err
	}

	for _, uid := range sum.UIDs {
		doc, ok := sum.Docs[uid]
		if !ok {
			continue
		}
		resp.Results = append(resp.Results, toSummaryRecord(uid, doc))
	}
	return resp, nil
}

// resumeParams computes the next and previous page parameters. Next exists
// while the window has not reached total; previous exists for any page past
// the first and never goes below offset zero.
func resumeParams(req types.PageRequest, total int, webEnv, queryKey string) (next, prev *types.ResumeParams) {
	base := types.ResumeParams{
		Database:     req.Database,
		Term:         req.Term,
		SessionToken: webEnv,
		QueryKey:     queryKey,
		Limit:        req.Limit,
		Total:        total,
	}
	if req.Offset+req.Limit < total {
		p := base
		p.Offset = req.Offset + req.Limit
		next = &p
	}
	if req.Offset > 0 {
		p := base
		p.Offset = max(req.Offset-req.Limit, 0)
		prev = &p
	}
	return next, prev
}

// toSummaryRecord maps an esummary document to a SummaryRecord, replacing
// blank fields with their fallback text.
func toSummaryRecord(uid string, doc eutils.SummaryDoc) types.SummaryRecord {
	rec := types.SummaryRecord{
		ID:      uid,
		Title:   strings.TrimSpace(doc.Title),
		Year:    types.FallbackSummaryYear,
		Authors: types.FallbackSummaryAuthors,
		URL:     PubMedURLBase + uid + "/",
	}
	if rec.Title == "" {
		rec.Title = types.FallbackSummaryTitle
	}
	if f := strings.Fields(doc.PubDate); len(f) > 0 {
		rec.Year = f[0]
	}

	var names []string
	for _, a := range doc.Authors {
		if n := strings.TrimSpace(a.Name); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		rec.Authors = strings.Join(names, ", ")
	}
	return rec
}

// ParseRequest reads a page request from inbound query parameters: db, term,
// webenv, query_key, limit and offset. A total parameter, as echoed in resume
// links, is ignored; the count is always refreshed from the upstream.
func ParseRequest(q url.Values, defaultDB string, defaultLimit int) (types.PageRequest, error) {
	if defaultDB == "" {
		defaultDB = types.DefaultDatabase
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	req := types.PageRequest{
		Database:     q.Get("db"),
		Term:         q.Get("term"),
		SessionToken: q.Get("webenv"),
		QueryKey:     q.Get("query_key"),
		Limit:        defaultLimit,
	}
	if req.Database == "" {
		req.Database = defaultDB
	}

	var err error
	if q.Has("limit") {
		if req.Limit, err = strconv.Atoi(q.Get("limit")); err != nil {
			return req, types.Validationf("Invalid 'limit' or 'offset'")
		}
	}
	if q.Has("offset") {
		if req.Offset, err = strconv.Atoi(q.Get("offset")); err != nil {
			return req, types.Validationf("Invalid 'limit' or 'offset'")
		}
	}
	return req, Validate(req)
}

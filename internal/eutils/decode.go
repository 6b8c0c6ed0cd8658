// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// SearchResult is the part of an esearch response the gateway uses.
type SearchResult struct {
	Count    int
	WebEnv   string
	QueryKey string
}

// SummaryResult holds the ordered uid list and the summary documents keyed
// by uid. The two are not guaranteed to agree.
type SummaryResult struct {
	UIDs []string
	Docs map[string]SummaryDoc
}

// SummaryDoc is one esummary document.
type SummaryDoc struct {
	UID     string          `json:"uid"`
	Title   string          `json:"title"`
	PubDate string          `json:"pubdate"`
	Authors []SummaryAuthor `json:"authors"`
}

// SummaryAuthor is one entry of an esummary author list.
type SummaryAuthor struct {
	Name     string `json:"name"`
	AuthType string `json:"authtype"`
}

type esearchEnvelope struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count    string `json:"count"`
	QueryKey string `json:"querykey"`
	WebEnv   string `json:"webenv"`
	Error    string `json:"ERROR"`
}

// decodeSearch reads an esearch JSON body. A missing envelope or count
// decodes as zero.
func decodeSearch(body []byte) (SearchResult, error) {
	var env esearchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return SearchResult{}, &types.ParseError{Doc: "esearch response", Err: err}
	}
	if env.Result.Error != "" {
		log.Warn().Str("error", env.Result.Error).Msg("esearch reported an error")
	}

	count := 0
	if s := strings.TrimSpace(env.Result.Count); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return SearchResult{}, &types.ParseError{Doc: "esearch response", Err: fmt.Errorf("invalid count %q", s)}
		}
		count = n
	}

	return SearchResult{
		Count:    count,
		WebEnv:   env.Result.WebEnv,
		QueryKey: env.Result.QueryKey,
	}, nil
}

// decodeSummary reads an esummary JSON body. The "result" object mixes the
// "uids" list with one document per uid; documents that do not decode are
// dropped rather than failing the page.
func decodeSummary(body []byte) (SummaryResult, error) {
	var env struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return SummaryResult{}, &types.ParseError{Doc: "esummary response", Err: err}
	}

	out := SummaryResult{Docs: make(map[string]SummaryDoc, len(env.Result))}
	for key, raw := range env.Result {
		if key == "uids" {
			if err := json.Unmarshal(raw, &out.UIDs); err != nil {
				return SummaryResult{}, &types.ParseError{Doc: "esummary response", Err: fmt.Errorf("uids: %w", err)}
			}
			continue
		}
		var doc SummaryDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Debug().Str("uid", key).Err(err).Msg("skipping undecodable summary document")
			continue
		}
		out.Docs[key] = doc
	}
	return out, nil
}

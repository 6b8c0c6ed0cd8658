// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-gateway/internal/eutils"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// --- fake upstream ---

// fakeUpstream simulates a history session over total records with uids
// "1".."total".
type fakeUpstream struct {
	total      int
	webEnv     string
	queryKey   string
	searchErr  error
	summaryErr error
	// dropDocs lists uids whose summary document is missing from the payload.
	dropDocs map[string]bool

	searches  []eutils.SearchParams
	summaries []eutils.SummaryParams
}

func newFakeUpstream(total int) *fakeUpstream {
	return &fakeUpstream{total: total, webEnv: "MCID_test", queryKey: "1"}
}

func (f *fakeUpstream) Search(_ context.Context, p eutils.SearchParams) (eutils.SearchResult, error) {
	f.searches = append(f.searches, p)
	if f.searchErr != nil {
		return eutils.SearchResult{}, f.searchErr
	}
	return eutils.SearchResult{Count: f.total, WebEnv: f.webEnv, QueryKey: f.queryKey}, nil
}

func (f *fakeUpstream) Summary(_ context.Context, p eutils.SummaryParams) (eutils.SummaryResult, error) {
	f.summaries = append(f.summaries, p)
	if f.summaryErr != nil {
		return eutils.SummaryResult{}, f.summaryErr
	}
	res := eutils.SummaryResult{Docs: map[string]eutils.SummaryDoc{}}
	for i := p.RetStart; i < p.RetStart+p.RetMax && i < f.total; i++ {
		uid := strconv.Itoa(i + 1)
		res.UIDs = append(res.UIDs, uid)
		if f.dropDocs[uid] {
			continue
		}
		res.Docs[uid] = eutils.SummaryDoc{
			UID:     uid,
			Title:   "Title " + uid,
			PubDate: "2021 Mar 4",
			Authors: []eutils.SummaryAuthor{{Name: "Smith J"}, {Name: ""}, {Name: "Doe A"}},
		}
	}
	return res, nil
}

// --- Validate / ParseRequest ---

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    types.PageRequest
		wantErr string
	}{
		{
			name:  "fresh with defaults",
			query: "term=asthma",
			want:  types.PageRequest{Database: "pubmed", Term: "asthma", Limit: 5},
		},
		{
			name:  "resumed",
			query: "webenv=W&query_key=1&limit=10&offset=20&total=99&db=pmc",
			want:  types.PageRequest{Database: "pmc", SessionToken: "W", QueryKey: "1", Limit: 10, Offset: 20},
		},
		{name: "non-numeric limit", query: "term=x&limit=abc", wantErr: "Invalid 'limit' or 'offset'"},
		{name: "non-numeric offset", query: "term=x&offset=1.5", wantErr: "Invalid 'limit' or 'offset'"},
		{name: "empty limit", query: "term=x&limit=", wantErr: "Invalid 'limit' or 'offset'"},
		{name: "zero limit", query: "term=x&limit=0", wantErr: "Invalid 'limit' or 'offset'"},
		{name: "negative offset", query: "term=x&offset=-5", wantErr: "Invalid 'limit' or 'offset'"},
		{name: "missing term", query: "limit=5", wantErr: "Missing 'term' parameter"},
		{name: "half a session", query: "webenv=W", wantErr: "Missing 'term' parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseRequest(q, "", 0)
			if tt.wantErr != "" {
				var ve *types.ValidationError
				require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
				assert.Equal(t, tt.wantErr, ve.Msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginate_InvalidRequestMakesNoCall(t *testing.T) {
	tests := []struct {
		name string
		req  types.PageRequest
	}{
		{"missing term", types.PageRequest{Limit: 5}},
		{"zero limit", types.PageRequest{Term: "x"}},
		{"negative offset", types.PageRequest{Term: "x", Limit: 5, Offset: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newFakeUpstream(10)
			_, err := Paginate(context.Background(), up, tt.req)

			assert.Equal(t, http.StatusBadRequest, types.StatusCode(err))
			assert.Empty(t, up.searches)
			assert.Empty(t, up.summaries)
		})
	}
}

// --- Paginate ---

func TestPaginate_FreshSearch(t *testing.T) {
	up := newFakeUpstream(12)
	resp, err := Paginate(context.Background(), up, types.PageRequest{Term: "asthma", Limit: 5})
	require.NoError(t, err)

	require.Len(t, up.searches, 1)
	assert.Equal(t, eutils.SearchParams{Database: "pubmed", Term: "asthma"}, up.searches[0])
	require.Len(t, up.summaries, 1)
	assert.Equal(t, eutils.SummaryParams{
		Database: "pubmed", WebEnv: "MCID_test", QueryKey: "1", RetStart: 0, RetMax: 5,
	}, up.summaries[0])

	assert.Equal(t, 12, resp.Count)
	assert.Equal(t, "MCID_test", resp.WebEnv)
	assert.Equal(t, "1", resp.QueryKey)
	require.Len(t, resp.Results, 5)

	first := resp.Results[0]
	assert.Equal(t, types.SummaryRecord{
		ID:      "1",
		Title:   "Title 1",
		Year:    "2021",
		Authors: "Smith J, Doe A",
		URL:     "https://pubmed.ncbi.nlm.nih.gov/1/",
	}, first)

	assert.Nil(t, resp.Previous)
	require.NotNil(t, resp.Next)
	assert.Equal(t, types.ResumeParams{
		Database: "pubmed", Term: "asthma", SessionToken: "MCID_test", QueryKey: "1",
		Limit: 5, Offset: 5, Total: 12,
	}, *resp.Next)
}

func TestPaginate_ResumedRefreshesCount(t *testing.T) {
	up := newFakeUpstream(12)
	req := types.PageRequest{SessionToken: "MCID_test", QueryKey: "1", Limit: 5, Offset: 5}
	resp, err := Paginate(context.Background(), up, req)
	require.NoError(t, err)

	require.Len(t, up.searches, 1)
	assert.Equal(t, eutils.SearchParams{Database: "pubmed", WebEnv: "MCID_test", QueryKey: "1"}, up.searches[0])
	assert.Equal(t, 5, up.summaries[0].RetStart)

	// The upstream index grew between pages; the fresh count wins.
	up.total = 20
	resp, err = Paginate(context.Background(), up, req)
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Count)
	assert.Equal(t, 20, resp.Next.Total)
	assert.Empty(t, resp.Next.Term)
}

func TestPaginate_ResumedKeepsSessionEvenIfUpstreamEchoesAnother(t *testing.T) {
	up := newFakeUpstream(12)
	up.webEnv, up.queryKey = "MCID_other", "9"

	resp, err := Paginate(context.Background(), up, types.PageRequest{
		SessionToken: "MCID_test", QueryKey: "1", Limit: 5, Offset: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, "MCID_test", resp.WebEnv)
	assert.Equal(t, "1", resp.QueryKey)
	assert.Equal(t, "MCID_test", up.summaries[0].WebEnv)
}

func TestPaginate_WalkCoversAllRecords(t *testing.T) {
	for _, tc := range []struct{ total, limit int }{{12, 5}, {10, 5}, {1, 5}, {7, 1}, {3, 10}} {
		t.Run(strconv.Itoa(tc.total)+"/"+strconv.Itoa(tc.limit), func(t *testing.T) {
			up := newFakeUpstream(tc.total)

			req := types.PageRequest{Term: "asthma", Limit: tc.limit}
			seen := map[string]bool{}
			pages := 0
			for {
				resp, err := Paginate(context.Background(), up, req)
				require.NoError(t, err)
				pages++

				assert.Equal(t, req.Offset == 0, resp.Previous == nil)
				assert.Equal(t, "MCID_test", resp.WebEnv)
				assert.Equal(t, "1", resp.QueryKey)
				for _, r := range resp.Results {
					assert.False(t, seen[r.ID], "record %s returned twice", r.ID)
					seen[r.ID] = true
				}

				if resp.Next == nil {
					break
				}
				// Next parameters replay the same session.
				assert.Equal(t, resp.WebEnv, resp.Next.SessionToken)
				assert.Equal(t, resp.QueryKey, resp.Next.QueryKey)
				req = resp.Next.PageRequest()
			}

			assert.Len(t, seen, tc.total)
			assert.Equal(t, (tc.total+tc.limit-1)/tc.limit, pages)
			// Only the first page issued a fresh search.
			assert.Equal(t, "asthma", up.searches[0].Term)
			for _, s := range up.searches[1:] {
				assert.Equal(t, "MCID_test", s.WebEnv)
			}
		})
	}
}

func TestPaginate_PreviousNeverNegative(t *testing.T) {
	up := newFakeUpstream(50)
	resp, err := Paginate(context.Background(), up, types.PageRequest{Term: "x", Limit: 10, Offset: 3})
	require.NoError(t, err)

	require.NotNil(t, resp.Previous)
	assert.Equal(t, 0, resp.Previous.Offset)
	require.NotNil(t, resp.Next)
	assert.Equal(t, 13, resp.Next.Offset)
}

func TestPaginate_SkipsMissingDocuments(t *testing.T) {
	up := newFakeUpstream(3)
	up.dropDocs = map[string]bool{"2": true}

	resp, err := Paginate(context.Background(), up, types.PageRequest{Term: "x", Limit: 5})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "1", resp.Results[0].ID)
	assert.Equal(t, "3", resp.Results[1].ID)
}

func TestPaginate_EmptyEnvelope(t *testing.T) {
	up := newFakeUpstream(0)
	up.webEnv, up.queryKey = "", ""

	resp, err := Paginate(context.Background(), up, types.PageRequest{Term: "nothing", Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Results)
	assert.NotNil(t, resp.Results)
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
	assert.Empty(t, up.summaries)
}

func TestPaginate_ResumedEmptyCountKeepsPrevious(t *testing.T) {
	up := newFakeUpstream(0)

	resp, err := Paginate(context.Background(), up, types.PageRequest{
		SessionToken: "W", QueryKey: "1", Limit: 5, Offset: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Results)
	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, 5, resp.Previous.Offset)
	assert.Equal(t, "W", resp.Previous.SessionToken)
	assert.Equal(t, "1", resp.Previous.QueryKey)

	// The session is still valid, so the summary call is made.
	require.Len(t, up.summaries, 1)
	assert.Equal(t, 10, up.summaries[0].RetStart)
}

func TestPaginate_UpstreamErrors(t *testing.T) {
	searchFail := newFakeUpstream(10)
	searchFail.searchErr = &types.UpstreamError{Op: eutils.OpSearch, StatusCode: http.StatusServiceUnavailable}

	summaryFail := newFakeUpstream(10)
	summaryFail.summaryErr = &types.UpstreamError{Op: eutils.OpSummary, StatusCode: http.StatusTooManyRequests}

	tests := []struct {
		name   string
		up     *fakeUpstream
		status int
	}{
		{"search", searchFail, http.StatusServiceUnavailable},
		{"summary", summaryFail, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Paginate(context.Background(), tt.up, types.PageRequest{Term: "x", Limit: 5})
			require.Error(t, err)
			assert.Equal(t, tt.status, types.StatusCode(err))
		})
	}
	assert.Empty(t, searchFail.summaries)
}

// --- toSummaryRecord ---

func TestToSummaryRecordFallbacks(t *testing.T) {
	tests := []struct {
		name string
		doc  eutils.SummaryDoc
		want types.SummaryRecord
	}{
		{
			name: "all blank",
			doc:  eutils.SummaryDoc{Title: "  ", Authors: []eutils.SummaryAuthor{{Name: ""}}},
			want: types.SummaryRecord{
				ID: "7", Title: types.FallbackSummaryTitle, Year: types.FallbackSummaryYear,
				Authors: types.FallbackSummaryAuthors, URL: "https://pubmed.ncbi.nlm.nih.gov/7/",
			},
		},
		{
			name: "year only",
			doc:  eutils.SummaryDoc{Title: "T", PubDate: "1999", Authors: []eutils.SummaryAuthor{{Name: "Solo H"}}},
			want: types.SummaryRecord{
				ID: "7", Title: "T", Year: "1999", Authors: "Solo H", URL: "https://pubmed.ncbi.nlm.nih.gov/7/",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toSummaryRecord("7", tt.doc))
		})
	}
}

// --- formatting ---

func TestFormatTable(t *testing.T) {
	up := newFakeUpstream(12)
	resp, err := Paginate(context.Background(), up, types.PageRequest{Term: "asthma", Limit: 5, Offset: 5})
	require.NoError(t, err)

	var buf bytes.Buffer
	FormatTable(resp, &buf)
	s := buf.String()

	assert.Contains(t, s, "Title 6")
	assert.Contains(t, s, "5 of 12 results")
	assert.Contains(t, s, "next:     db=pubmed&limit=5&offset=10")
	assert.Contains(t, s, "previous: db=pubmed&limit=5&offset=0")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"abcdefghijk", 10, "abcdefg..."},
		{"Müller-Lüdenscheidt", 10, "Müller-..."},
		{"αβγδεζηθικλ", 8, "αβγδε..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		assert.Equal(t, tt.want, got)
		assert.True(t, utf8.ValidString(got), "invalid UTF-8 in %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	up := newFakeUpstream(3)
	resp, err := Paginate(context.Background(), up, types.PageRequest{Term: "asthma", Limit: 5})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(resp, &buf))
	assert.Contains(t, buf.String(), `"next_params": null`)
	assert.Contains(t, buf.String(), `"webenv": "MCID_test"`)
}

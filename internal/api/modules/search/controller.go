// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/pubmed-gateway/internal/api/response"
	"github.com/pdiddy/pubmed-gateway/internal/paginate"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

type controller struct {
	upstream     paginate.Upstream
	cfg          types.SearchConfig
	trustedProxy func(remoteIP string) bool
}

// pageBody adds absolute next/previous links to the page.
type pageBody struct {
	types.PageResponse
	NextURL     *string `json:"next"`
	PreviousURL *string `json:"previous"`
}

// getPage handles GET requests for one page of a search
func (ctl *controller) getPage(c *gin.Context) {
	req, err := paginate.ParseRequest(c.Request.URL.Query(), ctl.cfg.DefaultDatabase, ctl.cfg.DefaultLimit)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := paginate.Paginate(c.Request.Context(), ctl.upstream, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pageBody{
		PageResponse: page,
		NextURL:      ctl.pageURL(c, page.Next),
		PreviousURL:  ctl.pageURL(c, page.Previous),
	})
}

// pageURL renders p as an absolute link to this endpoint, or nil.
func (ctl *controller) pageURL(c *gin.Context, p *types.ResumeParams) *string {
	if p == nil {
		return nil
	}
	u := url.URL{
		Scheme:   ctl.scheme(c),
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: p.Values().Encode(),
	}
	s := u.String()
	return &s
}

// scheme is the scheme the client used. X-Forwarded-Proto is honoured only
// from a trusted proxy and only for http or https.
func (ctl *controller) scheme(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if ctl.trustedProxy == nil || !ctl.trustedProxy(c.RemoteIP()) {
		return scheme
	}
	switch proto := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto"))); proto {
	case "http", "https":
		return proto
	}
	return scheme
}

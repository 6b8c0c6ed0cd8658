// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/pubmed-gateway/internal/paginate"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// RegisterRoutes registers the paginated search endpoint. trustedProxy
// reports whether a remote IP may set X-Forwarded-Proto; nil trusts none.
func RegisterRoutes(g *gin.RouterGroup, up paginate.Upstream, cfg types.SearchConfig, trustedProxy func(remoteIP string) bool) {
	ctl := &controller{upstream: up, cfg: cfg, trustedProxy: trustedProxy}
	g.GET("/esearch-summary-history/", ctl.getPage)
}

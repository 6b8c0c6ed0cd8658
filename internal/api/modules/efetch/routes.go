// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package efetch

import (
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/pubmed-gateway/internal/details"
)

// RegisterRoutes registers the detail endpoint.
func RegisterRoutes(g *gin.RouterGroup, f details.Fetcher, defaultDB string) {
	ctl := &controller{fetcher: f, defaultDB: defaultDB}
	g.GET("/efetch/", ctl.getDetails)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package efetch

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/pubmed-gateway/internal/api/response"
	"github.com/pdiddy/pubmed-gateway/internal/details"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

type controller struct {
	fetcher   details.Fetcher
	defaultDB string
}

// getDetails handles GET requests for normalized records of one or more ids
func (ctl *controller) getDetails(c *gin.Context) {
	var ids []string
	for _, id := range c.QueryArray("ids") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	db := c.Query("db")
	if db == "" {
		db = ctl.defaultDB
	}
	if db == "" {
		db = types.DefaultDatabase
	}

	results, err := details.Fetch(c.Request.Context(), ctl.fetcher, db, ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

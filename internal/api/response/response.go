// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package response holds the JSON envelopes shared by the API modules.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// Error writes {"error": msg} with the status mapped from err.
func Error(c *gin.Context, err error) {
	c.JSON(types.StatusCode(err), gin.H{"error": err.Error()})
}

// NoRoute answers unknown paths with a JSON 404.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogVersionHeader carries the catalog snapshot a response was computed
// against.
const CatalogVersionHeader = "X-Catalog-Version"

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created JSON response.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}

// WithCatalogVersion sets CatalogVersionHeader when version is known.
func WithCatalogVersion(c *gin.Context, version string) {
	if version != "" {
		c.Header(CatalogVersionHeader, version)
	}
}

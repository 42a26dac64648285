package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery-storefront/internal/shopify"
)

type catalogHandlers struct {
	client CatalogClient
	logger *log.Logger
}

func (h *catalogHandlers) listCollections(c *gin.Context) {
	collections, err := h.client.Collections(c.Request.Context())
	if err != nil {
		h.logger.Printf("list collections: %v", err)
		writeClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// listProducts returns the catalog page, optionally narrowed to one
// collection handle. An unknown handle yields an empty list, not an error.
func (h *catalogHandlers) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	handle := c.Query("collection")

	var (
		products []shopify.Product
		err      error
	)
	if handle != "" {
		products, err = h.client.ProductsByCollection(ctx, handle)
	} else {
		products, err = h.client.Products(ctx)
	}
	if err != nil {
		h.logger.Printf("list products (collection=%q): %v", handle, err)
		writeClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

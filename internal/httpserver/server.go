package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bakery-storefront/internal/cartsession"
	"bakery-storefront/internal/shopify"
)

// CatalogClient is the slice of the storefront client the catalog routes use.
type CatalogClient interface {
	Collections(ctx context.Context) ([]shopify.Collection, error)
	Products(ctx context.Context) ([]shopify.Product, error)
	ProductsByCollection(ctx context.Context, handle string) ([]shopify.Product, error)
}

// Deps carries the dependencies the router needs.
type Deps struct {
	Catalog    CatalogClient
	Carts      cartsession.Client
	Configured bool
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the storefront routes.
func New(addr string, logger *log.Logger, deps Deps, allowedOrigins []string) *Server {
	router := buildRouter(logger, deps, allowedOrigins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(configured bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !configured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "storefront api not configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), requestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Configured))

	catalog := &catalogHandlers{client: deps.Catalog, logger: logger}
	carts := &cartHandlers{sessions: newSessionRegistry(deps.Carts, logger), logger: logger}

	api := router.Group("/api")
	api.GET("/collections", catalog.listCollections)
	api.GET("/products", catalog.listProducts)
	api.GET("/cart", carts.getCart)
	api.POST("/cart/lines", carts.addLine)
	api.DELETE("/cart/lines", carts.removeLine)
	api.POST("/checkout/complete", carts.completeCheckout)

	return router
}

package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery-storefront/internal/cartsession"
	"bakery-storefront/internal/shopify"
)

type cartHandlers struct {
	sessions *sessionRegistry
	logger   *log.Logger
}

type cartResponse struct {
	Cart      *shopify.Cart `json:"cart"`
	ItemCount int           `json:"itemCount"`
}

type addLineRequest struct {
	VariantID string `json:"variantId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// session restores the shopper's manager from the cart cookie.
func (h *cartHandlers) session(c *gin.Context) *cartsession.Manager {
	id, _ := c.Cookie(cartCookieName)
	return h.sessions.manager(c.Request.Context(), id)
}

// syncCartCookie writes the manager's persisted identifier back to the
// browser: set after creation, replaced after an expired-cart fallback,
// expired after checkout hand-off.
func syncCartCookie(c *gin.Context, m *cartsession.Manager) {
	id := m.CartID()
	current, _ := c.Cookie(cartCookieName)
	if id == current {
		return
	}
	if id == "" {
		c.SetCookie(cartCookieName, "", -1, "/", "", false, true)
		return
	}
	c.SetCookie(cartCookieName, id, cartCookieMaxAge, "/", "", false, true)
}

func (h *cartHandlers) getCart(c *gin.Context) {
	m := h.session(c)
	syncCartCookie(c, m)
	c.JSON(http.StatusOK, cartResponse{Cart: m.Cart(), ItemCount: m.ItemCount()})
}

func (h *cartHandlers) addLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variantId required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	m := h.session(c)
	cart, err := m.AddLine(c.Request.Context(), req.VariantID, req.Quantity)
	if err != nil {
		writeClientError(c, err)
		return
	}
	syncCartCookie(c, m)
	c.JSON(http.StatusOK, cartResponse{Cart: cart, ItemCount: cart.ItemCount()})
}

func (h *cartHandlers) removeLine(c *gin.Context) {
	lineID := c.Query("id")
	if lineID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "line id required"})
		return
	}

	m := h.session(c)
	if _, err := m.RemoveLine(c.Request.Context(), lineID); err != nil {
		writeClientError(c, err)
		return
	}
	syncCartCookie(c, m)
	c.JSON(http.StatusOK, cartResponse{Cart: m.Cart(), ItemCount: m.ItemCount()})
}

// completeCheckout is called by the success page after the platform's
// checkout flow finishes: the session forgets its cart and the cookie is
// expired, so the next visit starts a fresh session.
func (h *cartHandlers) completeCheckout(c *gin.Context) {
	id, _ := c.Cookie(cartCookieName)
	if id != "" {
		if m, ok := h.sessions.lookup(id); ok {
			m.CompleteCheckout()
		}
		h.sessions.drop(id)
		c.SetCookie(cartCookieName, "", -1, "/", "", false, true)
	}
	c.Status(http.StatusNoContent)
}

// writeClientError maps classified storefront failures onto HTTP statuses.
func writeClientError(c *gin.Context, err error) {
	var transportErr *shopify.TransportError
	var apiErr *shopify.APIError
	switch {
	case errors.Is(err, shopify.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storefront api not configured"})
	case errors.As(err, &transportErr), errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/cart"
)

// CartHandler serves per-session cart and wishlist state. A nil store means
// Redis was not configured; the endpoints answer 503 instead of crashing.
type CartHandler struct {
	store  *cart.Store
	logger *zap.Logger
}

func NewCartHandler(store *cart.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{store: store, logger: logger}
}

func (h *CartHandler) available(c *gin.Context) bool {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart storage disabled"})
		return false
	}
	return true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	if !h.available(c) {
		return
	}
	out, err := h.store.GetCart(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.logger.Error("Cart read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CartHandler) PutCart(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var body cart.Cart
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	body.SessionID = c.Param("session")
	if err := h.store.SaveCart(c.Request.Context(), body); err != nil {
		h.logger.Error("Cart write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if !h.available(c) {
		return
	}
	if err := h.store.ClearCart(c.Request.Context(), c.Param("session")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) GetWishlist(c *gin.Context) {
	if !h.available(c) {
		return
	}
	out, err := h.store.GetWishlist(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.logger.Error("Wishlist read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CartHandler) PutWishlist(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var body cart.Wishlist
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	body.SessionID = c.Param("session")
	if err := h.store.SaveWishlist(c.Request.Context(), body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save wishlist"})
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *CartHandler) ClearWishlist(c *gin.Context) {
	if !h.available(c) {
		return
	}
	if err := h.store.ClearWishlist(c.Request.Context(), c.Param("session")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear wishlist"})
		return
	}
	c.Status(http.StatusNoContent)
}

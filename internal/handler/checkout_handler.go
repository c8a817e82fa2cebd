package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/pricing"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
)

type CheckoutHandler struct {
	submit *service.SubmitService
	logger *zap.Logger
}

func NewCheckoutHandler(submit *service.SubmitService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{submit: submit, logger: logger}
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid checkout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	requestID := c.GetString("request_id")

	result := h.submit.Submit(c.Request.Context(), req, requestID)
	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Draft captures a partially filled checkout form for lead recovery. The
// payload is whatever the visitor has typed so far.
func (h *CheckoutHandler) Draft(c *gin.Context) {
	var req domain.DraftCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.submit.Submit(c.Request.Context(), domain.CheckoutRequest{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		Note:         req.Note,
		Items:        req.Items,
		TotalAmount:  req.TotalAmount,
		Status:       domain.OrderStatusIncomplete,
	}, c.GetString("request_id"))

	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

type quoteRequest struct {
	Items          []domain.CheckoutItem `json:"items" binding:"required,min=1"`
	DeliveryCharge float64               `json:"delivery_charge"`
	PromoCode      string                `json:"promo_code"`
}

type quoteResponse struct {
	pricing.Quote
	PromoValid bool   `json:"promo_valid"`
	Message    string `json:"message,omitempty"`
}

// Quote prices a cart and validates the promo code. An unknown code leaves
// the discount at zero and the checkout completable.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	quote, err := pricing.ComputeQuote(req.Items, req.DeliveryCharge, req.PromoCode)
	resp := quoteResponse{Quote: quote, PromoValid: err == nil}
	if errors.Is(err, pricing.ErrInvalidPromo) {
		resp.Message = "Invalid promo code"
	}
	c.JSON(http.StatusOK, resp)
}

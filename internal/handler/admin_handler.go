package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/courier"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
)

type AdminHandler struct {
	read      *service.ReadService
	status    *service.StatusService
	dashboard *service.DashboardService
	logger    *zap.Logger
}

func NewAdminHandler(read *service.ReadService, status *service.StatusService, dashboard *service.DashboardService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		read:      read,
		status:    status,
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.read.ListOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("Order listing failed on all tiers",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.status.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// DispatchOrder hands the parcel to the courier; the order only becomes
// shipped when the courier accepts.
func (h *AdminHandler) DispatchOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.status.DispatchToCourier(c.Request.Context(), id)
	if err != nil {
		var rejected *courier.RejectedError
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, courier.ErrDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "courier integration disabled"})
		case errors.As(err, &rejected):
			c.JSON(http.StatusBadGateway, gin.H{"error": "courier rejected dispatch", "message": rejected.Message})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "courier dispatch failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             id,
		"status":         domain.OrderStatusShipped,
		"consignment_id": result.ConsignmentID,
		"tracking_code":  result.TrackingCode,
	})
}

func (h *AdminHandler) ListCustomers(c *gin.Context) {
	customers, err := h.read.ListCustomers(c.Request.Context())
	if err != nil {
		h.logger.Error("Customer aggregation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load customers"})
		return
	}
	if customers == nil {
		customers = []domain.CustomerSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Dashboard stats failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportOrders streams the current order view as a CSV download.
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "1000"))

	result, err := h.read.ListOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load orders"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(service.OrdersCSV(result.Orders)))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/courier"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
)

var ErrInvalidStatus = errors.New("invalid order status")

// StatusService handles admin order-status mutations, including the
// courier-gated transition to shipped.
type StatusService struct {
	store    StatusStore
	courier  Dispatcher
	producer Publisher
	logger   *zap.Logger
}

func NewStatusService(store StatusStore, dispatcher Dispatcher, producer Publisher, logger *zap.Logger) *StatusService {
	return &StatusService{
		store:    store,
		courier:  dispatcher,
		producer: producer,
		logger:   logger,
	}
}

// UpdateStatus is the plain dropdown path: no courier involved.
func (s *StatusService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.store.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}
	s.publishStatusChanged(id, status)
	return nil
}

// DispatchToCourier hands the order's parcel to the courier and, only on
// courier success, transitions the order to shipped with the consignment
// details recorded. On courier failure the stored status is untouched.
func (s *StatusService) DispatchToCourier(ctx context.Context, id int64) (*courier.DispatchResult, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice := fmt.Sprintf("INV-%d", order.ID)
	if order.ID == 0 {
		invoice = "INV-" + uuid.New().String()
	}

	result, err := s.courier.Dispatch(ctx, courier.DispatchRequest{
		Invoice:          invoice,
		RecipientName:    order.CustomerName,
		RecipientPhone:   order.Phone,
		RecipientAddress: order.Address,
		CODAmount:        order.TotalAmount,
		Note:             order.Note,
	})
	if err != nil {
		s.logger.Warn("Courier dispatch failed, order status unchanged",
			zap.Int64("order_id", id),
			zap.Error(err))
		return nil, err
	}

	if err := s.store.SetDispatchInfo(ctx, id, result.ConsignmentID, result.TrackingCode); err != nil {
		// Parcel is with the courier but the transition didn't persist.
		// Surface it: the admin retries the status update by hand.
		s.logger.Error("Dispatch succeeded but status update failed",
			zap.Int64("order_id", id),
			zap.String("consignment_id", result.ConsignmentID),
			zap.Error(err))
		return result, err
	}

	s.publishStatusChanged(id, domain.OrderStatusShipped)
	return result, nil
}

func (s *StatusService) publishStatusChanged(id int64, status domain.OrderStatus) {
	if s.producer == nil {
		return
	}
	err := s.producer.PublishStatusChanged(events.OrderStatusChangedEvent{
		EventID:   uuid.New().String(),
		OrderID:   id,
		Status:    string(status),
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to publish status-changed event",
			zap.Int64("order_id", id),
			zap.Error(err))
	}
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/courier"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

func TestUpdateStatus_Plain(t *testing.T) {
	var gotStatus domain.OrderStatus
	store := &fakeStore{
		updateStatus: func(_ context.Context, id int64, status domain.OrderStatus) error {
			assert.Equal(t, int64(5), id)
			gotStatus = status
			return nil
		},
	}
	pub := &capturePublisher{}
	svc := NewStatusService(store, &fakeDispatcher{}, pub, zap.NewNop())

	err := svc.UpdateStatus(context.Background(), 5, domain.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, gotStatus)
	assert.Len(t, pub.changed, 1)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewStatusService(&fakeStore{}, &fakeDispatcher{}, nil, zap.NewNop())

	err := svc.UpdateStatus(context.Background(), 5, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDispatch_SuccessTransitionsToShipped(t *testing.T) {
	order := &domain.Order{
		ID:           21,
		CustomerName: "Rahim",
		Phone:        "017",
		Address:      "Dhanmondi, Dhaka",
		TotalAmount:  1862,
		Status:       domain.OrderStatusProcessing,
	}
	var dispatched bool
	store := &fakeStore{
		getOrder: func(_ context.Context, id int64) (*domain.Order, error) {
			return order, nil
		},
		setDispatch: func(_ context.Context, id int64, consignmentID, trackingCode string) error {
			dispatched = true
			assert.Equal(t, int64(21), id)
			assert.Equal(t, "CN-1", consignmentID)
			assert.Equal(t, "TRK-1", trackingCode)
			return nil
		},
	}
	dispatcher := &fakeDispatcher{
		enabled: true,
		result:  &courier.DispatchResult{ConsignmentID: "CN-1", TrackingCode: "TRK-1"},
	}
	svc := NewStatusService(store, dispatcher, nil, zap.NewNop())

	result, err := svc.DispatchToCourier(context.Background(), 21)
	require.NoError(t, err)
	assert.True(t, dispatched)
	assert.Equal(t, "CN-1", result.ConsignmentID)

	require.Len(t, dispatcher.calls, 1)
	req := dispatcher.calls[0]
	assert.Equal(t, "INV-21", req.Invoice)
	assert.Equal(t, "Rahim", req.RecipientName)
	assert.Equal(t, float64(1862), req.CODAmount)
}

func TestDispatch_CourierFailureLeavesStatusUnchanged(t *testing.T) {
	store := &fakeStore{
		getOrder: func(_ context.Context, id int64) (*domain.Order, error) {
			return &domain.Order{ID: 21, Status: domain.OrderStatusProcessing}, nil
		},
		setDispatch: func(_ context.Context, _ int64, _, _ string) error {
			t.Fatal("status must not change when the courier rejects")
			return nil
		},
	}
	dispatcher := &fakeDispatcher{
		enabled: true,
		err:     &courier.RejectedError{Status: 400, Message: "invalid phone"},
	}
	svc := NewStatusService(store, dispatcher, nil, zap.NewNop())

	_, err := svc.DispatchToCourier(context.Background(), 21)
	var rejected *courier.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "invalid phone", rejected.Message)
}

func TestDispatch_DisabledCourier(t *testing.T) {
	store := &fakeStore{
		getOrder: func(_ context.Context, id int64) (*domain.Order, error) {
			return &domain.Order{ID: 3}, nil
		},
	}
	dispatcher := &fakeDispatcher{err: courier.ErrDisabled}
	svc := NewStatusService(store, dispatcher, nil, zap.NewNop())

	_, err := svc.DispatchToCourier(context.Background(), 3)
	assert.ErrorIs(t, err, courier.ErrDisabled)
}

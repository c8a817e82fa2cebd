package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

func checkoutFixture() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		CustomerName: "Rahim Uddin",
		Phone:        "01712345678",
		Address:      "House 12, Road 5, Dhanmondi, Dhaka",
		Items: []domain.CheckoutItem{
			{ProductID: 1, ProductName: "Premium Panjabi", Quantity: 2, Price: 990},
		},
		DeliveryCharge: 80,
		Discount:       198,
		TotalAmount:    1862,
		Status:         domain.OrderStatusPending,
	}
}

func TestSubmit_AtomicPathPreferred(t *testing.T) {
	var atomicOrders []domain.Order
	store := &fakeStore{
		placeAtomic: func(_ context.Context, order domain.Order) (int64, error) {
			atomicOrders = append(atomicOrders, order)
			return 42, nil
		},
		insertOrder: func(_ context.Context, _ *domain.Order) (int64, error) {
			t.Fatal("direct insert must not run when the atomic path succeeds")
			return 0, nil
		},
	}
	pub := &capturePublisher{}
	svc := NewSubmitService(store, &memLedger{}, pub, zap.NewNop())

	result := svc.Submit(context.Background(), checkoutFixture(), "req-1")

	require.True(t, result.Success)
	assert.Equal(t, int64(42), result.OrderID)
	assert.False(t, result.IsLocal)

	require.Len(t, atomicOrders, 1)
	require.Len(t, atomicOrders[0].Items, 1)
	assert.Equal(t, "Premium Panjabi", atomicOrders[0].Items[0].ProductName)
	assert.Equal(t, float64(990), atomicOrders[0].Items[0].Price)
	assert.Equal(t, 2, atomicOrders[0].Items[0].Quantity)

	require.Len(t, pub.placed, 1)
	assert.True(t, pub.placed[0].StockChecked)
	assert.Equal(t, "req-1", pub.placed[0].RequestID)
}

func TestSubmit_FallsBackToDirectInsert(t *testing.T) {
	var insertedItems []domain.OrderItem
	store := &fakeStore{
		placeAtomic: func(_ context.Context, _ domain.Order) (int64, error) {
			return 0, repository.ErrInsufficientStock
		},
		insertOrder: func(_ context.Context, _ *domain.Order) (int64, error) {
			return 7, nil
		},
		insertItems: func(_ context.Context, orderID int64, items []domain.OrderItem) error {
			require.Equal(t, int64(7), orderID)
			insertedItems = items
			return nil
		},
	}
	pub := &capturePublisher{}
	svc := NewSubmitService(store, &memLedger{}, pub, zap.NewNop())

	result := svc.Submit(context.Background(), checkoutFixture(), "req-2")

	require.True(t, result.Success)
	assert.Equal(t, int64(7), result.OrderID)
	assert.False(t, result.IsLocal)
	assert.Len(t, insertedItems, 1)

	// Stock was not decremented on this path; the event says so.
	require.Len(t, pub.placed, 1)
	assert.False(t, pub.placed[0].StockChecked)
}

func TestSubmit_ItemInsertFailureDoesNotRollBack(t *testing.T) {
	store := &fakeStore{
		insertOrder: func(_ context.Context, _ *domain.Order) (int64, error) {
			return 9, nil
		},
		insertItems: func(_ context.Context, _ int64, _ []domain.OrderItem) error {
			return errRemoteDown
		},
	}
	svc := NewSubmitService(store, &memLedger{}, nil, zap.NewNop())

	result := svc.Submit(context.Background(), checkoutFixture(), "req-3")

	require.True(t, result.Success)
	assert.Equal(t, int64(9), result.OrderID)
}

func TestSubmit_IncompleteSkipsAtomicPath(t *testing.T) {
	store := &fakeStore{
		placeAtomic: func(_ context.Context, _ domain.Order) (int64, error) {
			t.Fatal("atomic path must not run for incomplete checkouts")
			return 0, nil
		},
		insertOrder: func(_ context.Context, order *domain.Order) (int64, error) {
			assert.Equal(t, domain.OrderStatusIncomplete, order.Status)
			return 11, nil
		},
		insertItems: func(_ context.Context, _ int64, _ []domain.OrderItem) error {
			return nil
		},
	}
	pub := &capturePublisher{}
	svc := NewSubmitService(store, &memLedger{}, pub, zap.NewNop())

	req := checkoutFixture()
	req.Status = domain.OrderStatusIncomplete
	result := svc.Submit(context.Background(), req, "req-4")

	require.True(t, result.Success)
	assert.Equal(t, int64(11), result.OrderID)
	// Draft captures are not announced downstream.
	assert.Empty(t, pub.placed)
}

func TestSubmit_LedgerIsLastResort(t *testing.T) {
	led := &memLedger{}
	pub := &capturePublisher{}
	svc := NewSubmitService(&fakeStore{}, led, pub, zap.NewNop())

	result := svc.Submit(context.Background(), checkoutFixture(), "req-5")

	require.True(t, result.Success)
	assert.True(t, result.IsLocal)
	assert.NotZero(t, result.OrderID)

	require.Len(t, led.appended, 1)
	assert.Equal(t, "Rahim Uddin", led.appended[0].CustomerName)
	// Local placements never reached the backend, so no event.
	assert.Empty(t, pub.placed)
}

func TestSubmit_AllTiersExhausted(t *testing.T) {
	led := &memLedger{appendErr: errRemoteDown}
	svc := NewSubmitService(&fakeStore{}, led, nil, zap.NewNop())

	result := svc.Submit(context.Background(), checkoutFixture(), "req-6")

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Zero(t, result.OrderID)
}

func TestSubmit_InvalidStatusDefaultsToPending(t *testing.T) {
	store := &fakeStore{
		placeAtomic: func(_ context.Context, order domain.Order) (int64, error) {
			assert.Equal(t, domain.OrderStatusPending, order.Status)
			return 1, nil
		},
	}
	svc := NewSubmitService(store, &memLedger{}, nil, zap.NewNop())

	req := checkoutFixture()
	req.Status = "bogus"
	result := svc.Submit(context.Background(), req, "req-7")
	require.True(t, result.Success)
}

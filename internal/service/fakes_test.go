package service

import (
	"context"
	"errors"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/courier"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
)

var errRemoteDown = errors.New("remote store unreachable")

// fakeStore implements the store interfaces with overridable behavior per
// test. Zero-value methods fail, so every test states what works.
type fakeStore struct {
	placeAtomic func(ctx context.Context, order domain.Order) (int64, error)
	insertOrder func(ctx context.Context, order *domain.Order) (int64, error)
	insertItems func(ctx context.Context, orderID int64, items []domain.OrderItem) error

	listJoined  func(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error)
	listFlat    func(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error)
	projections func(ctx context.Context) ([]domain.OrderProjection, error)
	profiles    func(ctx context.Context) ([]domain.CustomerProfile, error)

	getOrder     func(ctx context.Context, id int64) (*domain.Order, error)
	updateStatus func(ctx context.Context, id int64, status domain.OrderStatus) error
	setDispatch  func(ctx context.Context, id int64, consignmentID, trackingCode string) error
}

func (f *fakeStore) PlaceOrderWithStockCheck(ctx context.Context, order domain.Order) (int64, error) {
	if f.placeAtomic == nil {
		return 0, errRemoteDown
	}
	return f.placeAtomic(ctx, order)
}

func (f *fakeStore) InsertOrder(ctx context.Context, order *domain.Order) (int64, error) {
	if f.insertOrder == nil {
		return 0, errRemoteDown
	}
	return f.insertOrder(ctx, order)
}

func (f *fakeStore) InsertOrderItems(ctx context.Context, orderID int64, items []domain.OrderItem) error {
	if f.insertItems == nil {
		return errRemoteDown
	}
	return f.insertItems(ctx, orderID, items)
}

func (f *fakeStore) ListOrdersJoined(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	if f.listJoined == nil {
		return nil, 0, errRemoteDown
	}
	return f.listJoined(ctx, page, pageSize)
}

func (f *fakeStore) ListOrdersFlat(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	if f.listFlat == nil {
		return nil, 0, errRemoteDown
	}
	return f.listFlat(ctx, page, pageSize)
}

func (f *fakeStore) ListOrderProjections(ctx context.Context) ([]domain.OrderProjection, error) {
	if f.projections == nil {
		return nil, errRemoteDown
	}
	return f.projections(ctx)
}

func (f *fakeStore) ListProfiles(ctx context.Context) ([]domain.CustomerProfile, error) {
	if f.profiles == nil {
		return nil, errRemoteDown
	}
	return f.profiles(ctx)
}

func (f *fakeStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if f.getOrder == nil {
		return nil, errRemoteDown
	}
	return f.getOrder(ctx, id)
}

func (f *fakeStore) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if f.updateStatus == nil {
		return errRemoteDown
	}
	return f.updateStatus(ctx, id, status)
}

func (f *fakeStore) SetDispatchInfo(ctx context.Context, id int64, consignmentID, trackingCode string) error {
	if f.setDispatch == nil {
		return errRemoteDown
	}
	return f.setDispatch(ctx, id, consignmentID, trackingCode)
}

// memLedger is an in-memory Ledger.
type memLedger struct {
	records   []map[string]any
	appendErr error
	appended  []domain.Order
}

func (l *memLedger) Append(order domain.Order) (int64, error) {
	if l.appendErr != nil {
		return 0, l.appendErr
	}
	if order.ID == 0 {
		order.ID = time.Now().UnixMilli()
	}
	order.IsLocal = true
	l.appended = append(l.appended, order)
	l.records = append(l.records, map[string]any{
		"id":            float64(order.ID),
		"customer_name": order.CustomerName,
		"phone":         order.Phone,
		"total_amount":  order.TotalAmount,
		"status":        string(order.Status),
		"is_local":      true,
	})
	return order.ID, nil
}

func (l *memLedger) List() []map[string]any {
	if l.records == nil {
		return []map[string]any{}
	}
	return l.records
}

// fakeDispatcher scripts the courier.
type fakeDispatcher struct {
	enabled bool
	result  *courier.DispatchResult
	err     error
	calls   []courier.DispatchRequest
}

func (f *fakeDispatcher) Enabled() bool { return f.enabled }

func (f *fakeDispatcher) Dispatch(_ context.Context, req courier.DispatchRequest) (*courier.DispatchResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// capturePublisher records published events.
type capturePublisher struct {
	placed  []events.OrderPlacedEvent
	changed []events.OrderStatusChangedEvent
}

func (p *capturePublisher) PublishOrderPlaced(e events.OrderPlacedEvent) error {
	p.placed = append(p.placed, e)
	return nil
}

func (p *capturePublisher) PublishStatusChanged(e events.OrderStatusChangedEvent) error {
	p.changed = append(p.changed, e)
	return nil
}

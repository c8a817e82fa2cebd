package service

import (
	"context"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/courier"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
)

// Store interfaces are defined where they are consumed; *repository.Store
// satisfies all of them.

type SubmitStore interface {
	PlaceOrderWithStockCheck(ctx context.Context, order domain.Order) (int64, error)
	InsertOrder(ctx context.Context, order *domain.Order) (int64, error)
	InsertOrderItems(ctx context.Context, orderID int64, items []domain.OrderItem) error
}

type ReadStore interface {
	ListOrdersJoined(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error)
	ListOrdersFlat(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error)
	ListOrderProjections(ctx context.Context) ([]domain.OrderProjection, error)
	ListProfiles(ctx context.Context) ([]domain.CustomerProfile, error)
}

type StatusStore interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	SetDispatchInfo(ctx context.Context, id int64, consignmentID, trackingCode string) error
}

type DashboardStore interface {
	CountOrders(ctx context.Context) (total, pending int64, err error)
	SumOrderTotals(ctx context.Context) (float64, error)
	ListLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error)
}

type CatalogStore interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, updates map[string]any) error
	DeleteProduct(ctx context.Context, id int64) error
}

type Dispatcher interface {
	Enabled() bool
	Dispatch(ctx context.Context, req courier.DispatchRequest) (*courier.DispatchResult, error)
}

// Publisher is satisfied by *events.Producer; nil means Kafka is disabled.
type Publisher interface {
	PublishOrderPlaced(event events.OrderPlacedEvent) error
	PublishStatusChanged(event events.OrderStatusChangedEvent) error
}
